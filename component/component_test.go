package component_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/funnelkit/funnelkit/component"
	"github.com/funnelkit/funnelkit/flags"
)

func banner(s string) component.Component {
	return component.Func(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestGateDisabled(t *testing.T) {
	var rendered bool
	inner := component.Func(func(_ context.Context, w io.Writer) error {
		rendered = true
		return io.EOF // must never be seen
	})

	var buf bytes.Buffer
	gated := component.Gate(flags.Constant(false))(inner)
	if err := gated.Render(context.Background(), &buf); err != nil {
		t.Fatalf("disabled gate must not error, have %v", err)
	}
	if rendered {
		t.Errorf("disabled gate must not invoke the component")
	}
	if buf.Len() != 0 {
		t.Errorf("disabled gate must contribute nothing, have %q", buf.String())
	}
}

func TestGateEnabledDelegatesFully(t *testing.T) {
	inner := banner("<div>live chat</div>")

	var bare, gated bytes.Buffer
	if err := inner.Render(context.Background(), &bare); err != nil {
		t.Fatal(err)
	}
	if err := component.Gate(flags.Constant(true))(inner).Render(context.Background(), &gated); err != nil {
		t.Fatal(err)
	}
	if want, have := bare.String(), gated.String(); want != have {
		t.Errorf("enabled gate must be transparent: want %q, have %q", want, have)
	}
}

func TestGateEnabledPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	inner := component.Func(func(context.Context, io.Writer) error { return boom })

	err := component.Gate(flags.Constant(true))(inner).Render(context.Background(), io.Discard)
	if !errors.Is(err, boom) {
		t.Errorf("want %v, have %v", boom, err)
	}
}

func TestNothing(t *testing.T) {
	var buf bytes.Buffer
	if err := component.Nothing.Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("Nothing must write nothing, have %q", buf.String())
	}
}

func TestChainOrder(t *testing.T) {
	annotate := func(s string) component.Middleware {
		return func(next component.Component) component.Component {
			return component.Func(func(ctx context.Context, w io.Writer) error {
				io.WriteString(w, s+"(")
				defer io.WriteString(w, ")")
				return next.Render(ctx, w)
			})
		}
	}

	var buf bytes.Buffer
	chained := component.Chain(annotate("first"), annotate("second"))(banner("x"))
	if err := chained.Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if want, have := "first(second(x))", buf.String(); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
}
