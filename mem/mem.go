// Package mem implements an in-memory block store.
//
// It is a single-process stand-in for a networked
// content-addressed storage backend.
// The context parameters on its methods exist for interface uniformity
// with such a backend; no operation here ever blocks on one.
package mem

import (
	"context"
	"sync"

	"github.com/multiformats/go-multicodec"

	"github.com/bobg/cas"
)

var _ cas.Store = &Store{}

// Store is a memory-based implementation of a block store.
// It maps the canonical textual form of a ref to the blob stored there.
// Entries are only ever added, never removed or changed;
// the store dies with the process.
type Store struct {
	hasher cas.Hasher
	codec  cas.Codec

	mu    sync.Mutex // protects blobs
	blobs map[string]cas.Blob
}

// New produces a new, empty Store
// using sha2-256 hashing and version-1 CIDs.
func New() *Store {
	return NewWith(cas.SHA256{}, cas.V1{})
}

// NewWith produces a new, empty Store
// with the given hasher and ref codec.
func NewWith(h cas.Hasher, c cas.Codec) *Store {
	return &Store{
		hasher: h,
		codec:  c,
		blobs:  make(map[string]cas.Blob),
	}
}

// Get gets the blob whose ref has the given canonical binary form.
func (s *Store) Get(_ context.Context, refBytes []byte) (cas.Blob, error) {
	ref, err := s.codec.Decode(refBytes)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.blobs[ref.Key()]; ok {
		return b, nil
	}
	return nil, cas.ErrNotFound
}

// Put adds b to the store if it wasn't already present,
// deriving its ref from the given content-type code and the hash of b.
func (s *Store) Put(_ context.Context, b cas.Blob, code multicodec.Code) (cas.Ref, bool, error) {
	if len(b) > cas.MaxBlockSize {
		return cas.Zero, false, cas.ErrTooBig
	}

	mh, err := s.hasher.Hash(b)
	if err != nil {
		return cas.Zero, false, err
	}
	ref, err := s.codec.Encode(code, mh)
	if err != nil {
		return cas.Zero, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var added bool
	if _, ok := s.blobs[ref.Key()]; !ok {
		s.blobs[ref.Key()] = b
		added = true
	}
	return ref, added, nil
}
