package environment

import (
	"context"
	"os"
)

type OsEnvProvider struct{}

func NewOsEnvProvider() *OsEnvProvider {
	return &OsEnvProvider{}
}

func (p *OsEnvProvider) Get(_ context.Context, name string) (string, bool) {
	return os.LookupEnv(name)
}

// KeyValueProvider serves variables from a fixed map.
type KeyValueProvider struct {
	values map[string]string
}

func NewKeyValueProvider(values map[string]string) *KeyValueProvider {
	return &KeyValueProvider{values: values}
}

func (p *KeyValueProvider) Get(_ context.Context, name string) (string, bool) {
	value, ok := p.values[name]
	return value, ok
}
