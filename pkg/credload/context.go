package credload

import "context"

type loadIDKey struct{}

// WithLoadID returns a context carrying the load ID, so stores that persist
// provenance can tag committed rows with it.
func WithLoadID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, loadIDKey{}, id)
}

// LoadIDFromContext returns the load ID set by WithLoadID, or "".
func LoadIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(loadIDKey{}).(string)
	return id
}
