package cas

import (
	"context"

	"github.com/multiformats/go-multicodec"
)

// Getter is a read-only Store (qv).
type Getter interface {
	// Get gets a blob by the canonical binary form of its ref,
	// as produced by Put.
	// The bytes are parsed back into a ref
	// (a malformed input produces a DecodeError)
	// and the blob stored under that ref is returned.
	// A ref with no stored blob produces ErrNotFound;
	// absence is not a decoding failure.
	Get(context.Context, []byte) (Blob, error)
}

// Store is a block store.
// It stores byte sequences - "blobs" - of arbitrary length
// up to MaxBlockSize.
// Each blob can be retrieved using its ref as a lookup key.
// A ref is derived by the store from the blob's own bytes
// and the caller's content-type code;
// callers never assign refs.
//
// Stores do not copy blobs on Put or Get.
// A caller that mutates a blob after storing it
// gets what it deserves.
type Store interface {
	Getter

	// Put adds b to the store if it was not already present,
	// naming it with a ref built from the given content-type code
	// and the hash of b.
	// It returns b's ref and a boolean that is true iff the blob had to be added.
	// Re-inserting the same blob with the same code is idempotent:
	// same ref, same stored bytes, added == false.
	Put(ctx context.Context, b Blob, code multicodec.Code) (ref Ref, added bool, err error)
}
