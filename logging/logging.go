// Package logging implements a store that delegates everything to a nested store,
// logging operations as they happen.
//
// The nested store itself performs no logging;
// stack this wrapper on top when observability is wanted.
package logging

import (
	"context"
	"encoding/hex"

	"github.com/multiformats/go-multicodec"
	"go.uber.org/zap"

	"github.com/bobg/cas"
)

var _ cas.Store = &Store{}

// Store wraps a nested block store,
// logging each operation through a zap logger.
type Store struct {
	s   cas.Store
	log *zap.Logger
}

// New produces a new Store delegating to `s` and logging to `log`.
func New(s cas.Store, log *zap.Logger) *Store {
	return &Store{s: s, log: log}
}

// Get delegates to the nested store, logging the outcome.
func (s *Store) Get(ctx context.Context, refBytes []byte) (cas.Blob, error) {
	b, err := s.s.Get(ctx, refBytes)
	if err != nil {
		s.log.Error("get", zap.String("ref", hex.EncodeToString(refBytes)), zap.Error(err))
	} else {
		s.log.Info("get", zap.String("ref", hex.EncodeToString(refBytes)), zap.Int("len", len(b)))
	}
	return b, err
}

// Put delegates to the nested store, logging the outcome.
func (s *Store) Put(ctx context.Context, b cas.Blob, code multicodec.Code) (cas.Ref, bool, error) {
	ref, added, err := s.s.Put(ctx, b, code)
	if err != nil {
		s.log.Error("put", zap.Int("len", len(b)), zap.Uint64("code", uint64(code)), zap.Error(err))
	} else {
		s.log.Info("put", zap.Stringer("ref", ref), zap.Bool("added", added))
	}
	return ref, added, err
}
