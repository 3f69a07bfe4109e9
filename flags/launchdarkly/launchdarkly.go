// Package launchdarkly provides feature flags based on the
// LaunchDarkly services.
package launchdarkly

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/funnelkit/funnelkit/flags"

	"github.com/go-kit/log"
	ld "gopkg.in/launchdarkly/go-client.v3"
)

// contextKey type is unexported, unique to this package
type contextKey int

// userKey is what marks the LaunchDarkly User struct in the context
const userKey contextKey = 0

// WithUser enables clients to set the User object that will be used to
// calculate the feature flag output.
func WithUser(ctx context.Context, user ld.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ldUser finds the assigned User struct from the context, or returns
// an anonymous user with a random (16-byte) key
func ldUser(ctx context.Context) ld.User {
	user, ok := ctx.Value(userKey).(ld.User)
	if ok {
		return user
	}
	key := make([]byte, 16)
	io.ReadFull(rand.Reader, key)
	return ld.NewAnonymousUser(fmt.Sprintf("%x", key))
}

// NewBooler builds a Booler that returns a boolean, as per the configured
// LaunchDarkly client. Evaluation errors yield defaultVal and are logged,
// never returned: a flag that cannot be evaluated is disabled data, not a
// failure of the caller.
func NewBooler(client *ld.LDClient, key string, defaultVal bool, l log.Logger) flags.Booler {
	return flags.BoolerFunc(func(ctx context.Context) bool {
		user := ldUser(ctx)
		val, err := client.BoolVariation(key, user, defaultVal)
		if err != nil {
			l.Log("launchdarkly bool", err.Error(), "key", key)
		}
		return val
	})
}
