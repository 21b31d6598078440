// Package credential holds the provider key pool the relay draws from.
package credential

import (
	"fmt"
	"math/rand/v2"

	relayerrors "github.com/sweetpotato0/deadchat/errors"
)

// Source yields a uniformly distributed int in [0, n).
type Source interface {
	IntN(n int) int
}

// SourceFunc adapts a function to Source.
type SourceFunc func(n int) int

// IntN implements Source.
func (f SourceFunc) IntN(n int) int { return f(n) }

// Default draws from the process-wide math/rand/v2 generator, which is safe
// for concurrent use.
var Default Source = SourceFunc(rand.IntN)

// Fixed always picks slot i, clamped into range. Used to pin selection.
func Fixed(i int) Source {
	return SourceFunc(func(n int) int {
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	})
}

// Pool is an immutable, ordered set of API keys.
type Pool struct {
	keys []string
}

// NewPool copies keys into a pool. An empty pool is rejected.
func NewPool(keys []string) (*Pool, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("credential: %w", relayerrors.ErrNoCredentials)
	}
	for i, k := range keys {
		if k == "" {
			return nil, fmt.Errorf("credential: key %d is empty: %w", i, relayerrors.ErrInvalidInput)
		}
	}
	cp := make([]string, len(keys))
	copy(cp, keys)
	return &Pool{keys: cp}, nil
}

// Len returns the number of keys.
func (p *Pool) Len() int {
	return len(p.keys)
}

// Pick selects one key uniformly at random. Selection carries no state:
// there is no rotation, affinity or exclusion of failing keys.
func (p *Pool) Pick(src Source) (slot int, key string) {
	if src == nil {
		src = Default
	}
	slot = src.IntN(len(p.keys))
	return slot, p.keys[slot]
}

// Contains reports whether key is a pool member.
func (p *Pool) Contains(key string) bool {
	for _, k := range p.keys {
		if k == key {
			return true
		}
	}
	return false
}
