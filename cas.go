package cas

import (
	"github.com/ipfs/go-cid"
)

type (
	// Blob is the type of a blob.
	Blob []byte

	// Ref is the ref of a blob:
	// a version-1 CID combining a content-type code
	// with the sha2-256 hash of the blob's bytes.
	Ref struct {
		cid.Cid
	}
)

// Zero is the zero value of a Ref.
// It names no blob.
var Zero Ref

// Key is the canonical textual form of r,
// usable as a map key.
// Two refs with equal components have equal keys.
func (r Ref) Key() string {
	return r.KeyString()
}

// Less tells whether r is lexicographically less than other.
func (r Ref) Less(other Ref) bool {
	return r.KeyString() < other.KeyString()
}

// RefFromBytes parses the canonical binary form of a ref,
// as produced by Ref.Bytes.
// Malformed input produces a DecodeError.
func RefFromBytes(b []byte) (Ref, error) {
	return V1{}.Decode(b)
}
