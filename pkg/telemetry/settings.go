package telemetry

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/forge-dev/forge/pkg/environment"
)

const (
	// DefaultEndpoint is the collection service events are posted to.
	DefaultEndpoint = "https://telemetry.forge.dev"
	// DefaultTimeout bounds a single delivery attempt.
	DefaultTimeout = 5 * time.Second
)

// Settings are the environment-level telemetry switches.
type Settings struct {
	// Disabled is set by FORGE_TELEMETRY_DISABLED=1.
	Disabled bool
	// Production is set by FORGE_ENV=production.
	Production bool
	// CI is set when a continuous integration environment is detected.
	CI bool
	// Debug is set by FORGE_TELEMETRY_DEBUG=1 and logs telemetry to stderr.
	Debug bool
	// Endpoint is FORGE_TELEMETRY_ENDPOINT or DefaultEndpoint.
	Endpoint string
	// Timeout is FORGE_TELEMETRY_TIMEOUT or DefaultTimeout.
	Timeout time.Duration
}

// LoadSettings reads the settings from the process environment.
// Telemetry is always disabled when running under go test.
func LoadSettings(ctx context.Context) Settings {
	settings := loadSettingsFromEnv(ctx, environment.NewOsEnvProvider())
	if flag.Lookup("test.v") != nil {
		settings.Disabled = true
	}
	return settings
}

// settingKeys are read from FORGE_<KEY> with dots replaced by underscores,
// e.g. telemetry.debug from FORGE_TELEMETRY_DEBUG.
var settingKeys = []string{
	"env",
	"telemetry.disabled",
	"telemetry.debug",
	"telemetry.endpoint",
	"telemetry.timeout",
}

func envName(key string) string {
	return "FORGE_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// loadSettingsFromEnv reads every setting, and the CI detection, from env.
// It skips the go test bypass so the environment handling can be tested.
func loadSettingsFromEnv(ctx context.Context, env environment.Provider) Settings {
	v := viper.New()
	v.SetDefault("telemetry.endpoint", DefaultEndpoint)
	v.SetDefault("telemetry.timeout", DefaultTimeout)
	for _, key := range settingKeys {
		if value, found := env.Get(ctx, envName(key)); found {
			v.Set(key, value)
		}
	}

	timeout := v.GetDuration("telemetry.timeout")
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return Settings{
		Disabled:   v.GetString("telemetry.disabled") == "1",
		Production: v.GetString("env") == "production",
		CI:         environment.IsCI(ctx, env),
		Debug:      v.GetString("telemetry.debug") == "1",
		Endpoint:   strings.TrimRight(v.GetString("telemetry.endpoint"), "/"),
		Timeout:    timeout,
	}
}

// Enabled reports whether telemetry may run at all in this environment. When
// it is false nothing, including the config store, should be touched.
func (s Settings) Enabled() bool {
	return s.skipReason() == ""
}

// skipReason returns why telemetry must not run in this environment, or "".
func (s Settings) skipReason() string {
	switch {
	case s.CI:
		return "running in CI"
	case s.Production:
		return "running in production"
	case s.Disabled:
		return "disabled by environment"
	default:
		return ""
	}
}
