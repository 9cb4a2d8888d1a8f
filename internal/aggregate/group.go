package aggregate

import (
	"iter"
	"slices"
)

// Groups is the result of partitioning records by key. Keys are iterated in
// the order they were first seen; members keep their input order. A Groups
// value is never modified after GroupBy returns.
type Groups[K comparable, R any] struct {
	keys    []K
	members map[K][]R
}

// GroupBy partitions records by the key selector. key must be a pure function.
// Every record lands in exactly one group and no group is ever empty.
func GroupBy[R any, K comparable](records []R, key func(R) K) *Groups[K, R] {
	g := &Groups[K, R]{members: make(map[K][]R)}
	for _, rec := range records {
		k := key(rec)
		if _, ok := g.members[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.members[k] = append(g.members[k], rec)
	}
	return g
}

// Len returns the number of distinct keys.
func (g *Groups[K, R]) Len() int {
	return len(g.keys)
}

// Keys returns the group keys in discovery order.
func (g *Groups[K, R]) Keys() []K {
	return slices.Clone(g.keys)
}

// Get returns a copy of the members of the group with the given key.
func (g *Groups[K, R]) Get(key K) ([]R, bool) {
	members, ok := g.members[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(members), true
}

// All iterates groups in discovery order. The yielded slices must not be modified.
func (g *Groups[K, R]) All() iter.Seq2[K, []R] {
	return func(yield func(K, []R) bool) {
		for _, k := range g.keys {
			if !yield(k, g.members[k]) {
				return
			}
		}
	}
}
