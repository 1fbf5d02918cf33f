package cas

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
)

// Hasher computes the digest that names a blob.
// Implementations must be deterministic:
// the same input always yields the same digest.
type Hasher interface {
	Hash(Blob) (multihash.Multihash, error)
}

// Codec converts between the components of a ref
// and its canonical binary form.
type Codec interface {
	// Encode combines a content-type code and a digest into a ref.
	// An invalid digest produces an EncodeError.
	Encode(multicodec.Code, multihash.Multihash) (Ref, error)

	// Decode parses the canonical binary form of a ref.
	// Malformed input produces a DecodeError.
	Decode([]byte) (Ref, error)
}

// SHA256 is the default Hasher.
// It produces sha2-256 multihash digests.
type SHA256 struct{}

var _ Hasher = SHA256{}

// Hash implements Hasher.
func (SHA256) Hash(b Blob) (multihash.Multihash, error) {
	return multihash.Sum(b, multihash.SHA2_256, -1)
}

// V1 is the default Codec.
// It produces version-1 CIDs
// and rejects binary refs of any other version.
type V1 struct{}

var _ Codec = V1{}

// Encode implements Codec.Encode.
func (V1) Encode(code multicodec.Code, mh multihash.Multihash) (Ref, error) {
	if _, err := multihash.Decode(mh); err != nil {
		return Zero, EncodeError{Err: err}
	}
	return Ref{Cid: cid.NewCidV1(uint64(code), mh)}, nil
}

// Decode implements Codec.Decode.
func (V1) Decode(b []byte) (Ref, error) {
	c, err := cid.Cast(b)
	if err != nil {
		return Zero, DecodeError{Err: err}
	}
	if c.Version() != 1 {
		return Zero, DecodeError{Err: fmt.Errorf("unsupported CID version %d", c.Version())}
	}
	return Ref{Cid: c}, nil
}
