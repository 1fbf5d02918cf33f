package cas

import "github.com/pkg/errors"

// ErrNotFound is the error returned
// when a Getter tries to access a non-existent ref.
// Requesting a blob that was never stored is a normal outcome,
// not a failure of the store.
var ErrNotFound = errors.New("not found")

// MaxBlockSize is the largest blob a store will accept.
const MaxBlockSize = 1 << 20

// ErrTooBig is the error returned by Put
// for a blob larger than MaxBlockSize.
var ErrTooBig = errors.New("blob exceeds maximum block size")

// DecodeError is the error produced
// when the binary form of a ref is malformed:
// wrong length, truncated digest, or an unsupported version marker.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e DecodeError) Error() string {
	return "decoding ref: " + e.Err.Error()
}

// Unwrap produces the underlying codec error.
func (e DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError is the error produced
// when a ref cannot be constructed from its components.
type EncodeError struct {
	Err error
}

// Error implements the error interface.
func (e EncodeError) Error() string {
	return "encoding ref: " + e.Err.Error()
}

// Unwrap produces the underlying codec error.
func (e EncodeError) Unwrap() error {
	return e.Err
}
