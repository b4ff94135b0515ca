// Package mapper defines the lookup capability used by translators and filters
// to read domain data.
package mapper

import "context"

// DomainMapper looks up a value by key. Batch lookups are mappers keyed by a
// slice and returning a slice or map.
type DomainMapper[K, V any] interface {
	Execute(ctx context.Context, key K) (V, error)
}

// NoKey is the key type of mappers that take no argument, such as the lookup of
// all system administrator ids.
type NoKey = struct{}

// Func adapts an ordinary function to a DomainMapper.
type Func[K, V any] func(ctx context.Context, key K) (V, error)

func (f Func[K, V]) Execute(ctx context.Context, key K) (V, error) {
	return f(ctx, key)
}
