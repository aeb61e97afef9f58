// Package schema ties the telemetry record versions together and exposes the
// migrations the config store runs when forge is upgraded.
package schema

import (
	"encoding/json"

	"github.com/forge-dev/forge/pkg/confstore"
	"github.com/forge-dev/forge/pkg/telemetry/schema/latest"
	"github.com/forge-dev/forge/pkg/telemetry/schema/types"
	v1 "github.com/forge-dev/forge/pkg/telemetry/schema/v1"
	v2 "github.com/forge-dev/forge/pkg/telemetry/schema/v2"
)

// Key is the config store key holding the telemetry value.
const Key = "telemetry"

// Version is the schema version of the config document. The store is opened
// at this version, so the upgrade chain runs for every build of forge, and
// a document marked below a migration's range gets that migration once.
const Version = "3.0.0"

func Parsers() map[string]func([]byte) (any, error) {
	return map[string]func([]byte) (any, error){
		v1.Version: func(d []byte) (any, error) { return v1.Parse(d) },
		v2.Version: func(d []byte) (any, error) { return v2.Parse(d) },

		latest.Version: func(d []byte) (any, error) { return latest.Parse(d) },
	}
}

func Upgrades() []func(any) any {
	return []func(any) any{
		v2.UpgradeIfNeeded,

		latest.UpgradeIfNeeded,
	}
}

// Migrate applies every upgrade in order. Values that are not a record of a
// known version, including nil and false, come back unchanged.
func Migrate(c any) any {
	for _, upgrade := range Upgrades() {
		c = upgrade(c)
	}
	return c
}

// Migrations returns the config store migrations, keyed by the schema
// version each record shape was introduced in. A document without a marker
// is treated as the legacy shape and runs the whole chain.
func Migrations() []confstore.Migration {
	return []confstore.Migration{
		{Range: ">=2.0.0", Apply: upgradeStored(v1.Version, v2.UpgradeIfNeeded)},
		{Range: ">=3.0.0", Apply: upgradeStored(v2.Version, latest.UpgradeIfNeeded)},
	}
}

// upgradeStored reads the stored telemetry value as version from, upgrades it
// one step and writes it back when it changed. Unset and opted-out values are
// never touched, and a value that cannot be read is left as is.
func upgradeStored(from string, upgrade func(any) any) func(*confstore.Store) error {
	return func(s *confstore.Store) error {
		raw, found := s.Raw(Key)
		if types.Classify(raw, found) != types.Configured {
			return nil
		}

		old, err := Parsers()[from](raw)
		if err != nil {
			return nil
		}

		data, err := json.Marshal(upgrade(old))
		if err != nil {
			return nil
		}
		if types.Equal(raw, data) {
			return nil
		}
		return s.Set(Key, json.RawMessage(data))
	}
}

// Reader is the read side of the config store.
type Reader interface {
	Raw(key string) (json.RawMessage, bool)
}

// Load returns the current telemetry value.
func Load(r Reader) latest.Value {
	raw, found := r.Raw(Key)
	return latest.ParseValue(raw, found)
}
