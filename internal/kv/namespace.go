package kv

import "context"

type namespaced struct {
	inner  Store
	prefix string
}

// Namespace scopes every key of inner under prefix.
func Namespace(inner Store, prefix string) Store {
	return &namespaced{inner: inner, prefix: prefix}
}

// VisitorPrefix is the namespace of one browser's data.
func VisitorPrefix(visitorID string) string {
	return "visitor:" + visitorID + ":"
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}
