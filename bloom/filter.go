// Package bloom provides a probabilistic set of cached page keys.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/sbmb"
)

// DefaultFalsePositiveRate is the rate used by NewKeySet callers that do
// not care.
const DefaultFalsePositiveRate = 0.01

// KeySet records page keys. A negative answer is definite; a positive one
// must be confirmed against the cache.
type KeySet struct {
	f *bloom.BloomFilter
}

// NewKeySet creates a KeySet sized for n expected keys with the given false
// positive rate.
func NewKeySet(n uint, fpRate float64) *KeySet {
	if n == 0 {
		n = 1
	}
	return &KeySet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewKeySetFrom creates a KeySet holding keys.
func NewKeySetFrom(keys []sbmb.PageKey) *KeySet {
	s := NewKeySet(uint(len(keys)), DefaultFalsePositiveRate)
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add adds a key to the set.
func (s *KeySet) Add(key sbmb.PageKey) {
	s.f.AddString(key.URL())
}

// MayContain returns false if the key was certainly never added.
func (s *KeySet) MayContain(key sbmb.PageKey) bool {
	return s.f.TestString(key.URL())
}

// EstimatedCount returns the approximate number of keys in the set.
func (s *KeySet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
