// Package random provides feature flags whose response is drawn at random,
// useful for simple A/B splits and percentage rollouts.
package random

import (
	"context"
	"math/rand"

	"github.com/funnelkit/funnelkit/flags"
)

// NewBooler builds a Booler that returns one of a discrete set of options.
// At least one option is required; evaluating a Booler built with none
// panics.
func NewBooler(r *rand.Rand, opts ...bool) flags.Booler {
	return flags.BoolerFunc(func(context.Context) bool {
		return opts[r.Intn(len(opts))]
	})
}

// NewRollout builds a Booler that answers true for roughly the given
// fraction of evaluations, in [0, 1]. Fractions at or below 0 are always
// false; at or above 1, always true.
func NewRollout(r *rand.Rand, fraction float64) flags.Booler {
	return flags.BoolerFunc(func(context.Context) bool {
		return r.Float64() < fraction
	})
}
