package flags

import "context"

// Booler describes a feature flag that returns a simple boolean response.
type Booler interface {
	Bool(c context.Context) bool
}

// BoolerFunc is an adapter to use a stand-alone function as a Booler.
type BoolerFunc func(c context.Context) bool

// Bool conforms to the Booler interface.
func (fn BoolerFunc) Bool(c context.Context) bool {
	return fn(c)
}

// Constant returns a Booler with a fixed response, regardless of context.
// Useful as a default, and in tests.
func Constant(v bool) Booler {
	return BoolerFunc(func(context.Context) bool { return v })
}
