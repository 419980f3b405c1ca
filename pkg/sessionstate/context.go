package sessionstate

import "context"

type storeContextKey struct{}

// WithStore attaches the store to the context.
func WithStore(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, storeContextKey{}, store)
}

// FromContext retrieves the store from the context.
func FromContext(ctx context.Context) (*Store, bool) {
	store, ok := ctx.Value(storeContextKey{}).(*Store)
	return store, ok
}

// MustFromContext retrieves the store from the context or panics.
// A consumer running without a provider can never learn about session
// loss, so that misconfiguration must fail loudly.
func MustFromContext(ctx context.Context) *Store {
	store, ok := FromContext(ctx)
	if !ok {
		panic("sessionstate: store not found in context")
	}
	return store
}
