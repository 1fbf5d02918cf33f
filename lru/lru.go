// Package lru implements a block store that acts as a least-recently-used cache for a nested block store.
package lru

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
	"github.com/multiformats/go-multicodec"

	"github.com/bobg/cas"
)

var _ cas.Store = &Store{}

// Store implements a memory-based least-recently-used cache for a block store.
// Writes pass through to the nested store.
// Reads are served from the cache when possible
// and fill it when not.
//
// Cache entries are keyed by the canonical binary form of a ref,
// so a blob cached under one ref never answers for another.
type Store struct {
	c *lru.Cache // ref key -> cas.Blob
	s cas.Store
}

// New produces a new Store backed by `s` and caching up to `size` blobs.
func New(s cas.Store, size int) (*Store, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Store{s: s, c: c}, nil
}

// Get gets the blob whose ref has the given canonical binary form.
//
// Malformed ref bytes are never cached:
// they fall through to the nested store,
// which rejects them with a DecodeError.
func (s *Store) Get(ctx context.Context, refBytes []byte) (cas.Blob, error) {
	if got, ok := s.c.Get(string(refBytes)); ok {
		return got.(cas.Blob), nil
	}
	b, err := s.s.Get(ctx, refBytes)
	if err != nil {
		return nil, err
	}
	s.c.Add(string(refBytes), b)
	return b, nil
}

// Put adds a blob to the nested store if it wasn't already present,
// and caches it.
func (s *Store) Put(ctx context.Context, b cas.Blob, code multicodec.Code) (cas.Ref, bool, error) {
	ref, added, err := s.s.Put(ctx, b, code)
	if err != nil {
		return ref, added, err
	}
	s.c.Add(ref.Key(), b)
	return ref, added, nil
}
