package component

import (
	"context"
	"io"

	"github.com/funnelkit/funnelkit/telemetry"
)

// Instrument returns a Middleware that measures each render through the
// funnel as a named interaction. Pairs naturally with Gate: gate the
// feature, instrument what actually renders.
func Instrument(f *telemetry.Funnel, name string) Middleware {
	return func(next Component) Component {
		return Func(func(ctx context.Context, w io.Writer) error {
			span := f.StartInteraction(name)
			defer span.Finish(ctx)
			return next.Render(ctx, w)
		})
	}
}
