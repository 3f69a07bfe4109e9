package component

import (
	"context"
	"io"

	"github.com/funnelkit/funnelkit/flags"
)

// Component is a renderable unit of a page. It writes its output to w and
// reports any rendering failure; a Component that writes nothing and
// returns nil is a valid, empty contribution.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Func is an adapter to allow use of ordinary functions as Components.
type Func func(ctx context.Context, w io.Writer) error

// Render implements Component by calling f(ctx, w).
func (f Func) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

// Nothing is a Component that contributes no output. Useful as the
// resolution of a disabled feature, and in tests.
var Nothing Component = Func(func(context.Context, io.Writer) error { return nil })

// Middleware is a chainable behavior modifier for Components.
type Middleware func(Component) Component

// Chain is a helper function for composing middlewares. Renders will
// traverse them in the order they're declared. That is, the first middleware
// is treated as the outermost middleware.
func Chain(outer Middleware, others ...Middleware) Middleware {
	return func(next Component) Component {
		for i := len(others) - 1; i >= 0; i-- { // reverse
			next = others[i](next)
		}
		return outer(next)
	}
}

// Gate returns a Middleware that consults the flag on every render. When
// the flag is off, the gated Component contributes nothing: the wrapped
// Component is never invoked and no output is written. When the flag is
// on, the render delegates fully to the wrapped Component, inputs and
// output untouched. Composition, not inheritance: the wrapped Component
// needs no knowledge of the flag.
func Gate(flag flags.Booler) Middleware {
	return func(next Component) Component {
		return Func(func(ctx context.Context, w io.Writer) error {
			if !flag.Bool(ctx) {
				return nil
			}
			return next.Render(ctx, w)
		})
	}
}
