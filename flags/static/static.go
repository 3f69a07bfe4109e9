// Package static provides feature flags resolved once, at process start,
// from a plain string configuration mapping. The resulting Snapshot never
// changes for the lifetime of the process: there is no hot reload, and no
// flag evaluation ever fails.
package static

import (
	"context"

	"github.com/funnelkit/funnelkit/flags"
)

// Snapshot is an immutable mapping from feature name to enablement,
// constructed exactly once. Lookups are total: a name the Snapshot has
// never heard of is simply disabled.
type Snapshot struct {
	enabled map[string]bool
}

// NewSnapshot builds a Snapshot from a configuration mapping. keys maps
// each known feature name to its configuration key; a feature is enabled
// iff the value under its key is exactly "true". Absent, empty, "false"
// and malformed values all mean disabled. That's data, not an error.
func NewSnapshot(values map[string]string, keys map[string]string) Snapshot {
	enabled := make(map[string]bool, len(keys))
	for name, key := range keys {
		enabled[name] = values[key] == "true"
	}
	return Snapshot{enabled: enabled}
}

// Enabled reports whether the named feature is on. Unknown names are off.
func (s Snapshot) Enabled(name string) bool {
	return s.enabled[name]
}

// Booler returns a flags.Booler view of a single feature, suitable for
// passing to the components that depend on it.
func (s Snapshot) Booler(name string) flags.Booler {
	v := s.enabled[name] // resolved once, like everything else here
	return flags.BoolerFunc(func(context.Context) bool { return v })
}
