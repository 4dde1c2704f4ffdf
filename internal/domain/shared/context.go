package shared

import "context"

type silentKey struct{}

// WithSilent marks calls made with ctx as silent: failures are still
// returned and logged, but the operator is not notified.
func WithSilent(ctx context.Context) context.Context {
	return context.WithValue(ctx, silentKey{}, true)
}

// IsSilent reports whether ctx was marked by WithSilent.
func IsSilent(ctx context.Context) bool {
	silent, _ := ctx.Value(silentKey{}).(bool)
	return silent
}
