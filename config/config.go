// Package config resolves the application's analytics configuration
// once, at process start. It answers two questions: which optional
// features are switched on, and is there a real tracking destination
// configured. Both answers are data, never errors: a missing key means
// off, a placeholder tracking ID means no destination.
package config

import (
	"os"
	"strings"

	"github.com/funnelkit/funnelkit/flags/static"

	"gopkg.in/yaml.v3"
)

// featureKeys maps each known feature name to its configuration key.
// The set is closed at build time; keys for features that don't exist
// are never consulted.
var featureKeys = map[string]string{
	"marketIntelligence":   "ENABLE_MARKET_INTELLIGENCE",
	"liveChat":             "ENABLE_LIVE_CHAT",
	"investmentCalculator": "ENABLE_INVESTMENT_CALCULATOR",
}

// placeholder tracking IDs shipped in example configs; any of these
// means "not configured".
var placeholders = map[string]bool{
	"":             true,
	"G-XXXXXXXXXX": true,
}

// Config is the resolved analytics configuration.
type Config struct {
	TrackingID string            `yaml:"tracking_id"`
	APISecret  string            `yaml:"api_secret"`
	Features   map[string]string `yaml:"features"`
}

// FromValues resolves a Config from a flat key-value mapping, e.g. one
// built from the process environment. Recognized keys: GA_TRACKING_ID,
// GA_API_SECRET, and the ENABLE_* feature switches.
func FromValues(values map[string]string) Config {
	features := make(map[string]string, len(featureKeys))
	for name, key := range featureKeys {
		if v, ok := values[key]; ok {
			features[name] = v
		}
	}
	return Config{
		TrackingID: values["GA_TRACKING_ID"],
		APISecret:  values["GA_API_SECRET"],
		Features:   features,
	}
}

// FromEnviron resolves a Config from environ-style "KEY=value" strings,
// as returned by os.Environ.
func FromEnviron(environ []string) Config {
	values := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i > 0 {
			values[kv[:i]] = kv[i+1:]
		}
	}
	return FromValues(values)
}

// FromEnv resolves a Config from the process environment.
func FromEnv() Config {
	return FromEnviron(os.Environ())
}

// FromYAML resolves a Config from YAML, e.g.
//
//	tracking_id: G-ABC123
//	api_secret: s3cr3t
//	features:
//	  liveChat: "true"
func FromYAML(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// FromFile resolves a Config from a YAML file on disk.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return FromYAML(data)
}

// Configured reports whether a real tracking destination is set up.
// Absent and placeholder tracking IDs mean no: the application runs
// exactly as usual and telemetry lands nowhere.
func (c Config) Configured() bool {
	return !placeholders[c.TrackingID]
}

// Snapshot builds the immutable feature flag snapshot from the resolved
// feature switches. Build it once, at startup, and pass it down.
func (c Config) Snapshot() static.Snapshot {
	names := make(map[string]string, len(featureKeys))
	for name := range featureKeys {
		names[name] = name
	}
	return static.NewSnapshot(c.Features, names)
}
