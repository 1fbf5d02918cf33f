package cas

import (
	"context"

	"github.com/fxamacker/cbor/v2"
	"github.com/multiformats/go-multicodec"
	"github.com/pkg/errors"
)

// PutCBOR CBOR-encodes a value and stores it as a blob
// under the cbor content-type code.
// Values that encode identically share a ref.
func PutCBOR(ctx context.Context, s Store, v interface{}) (Ref, bool, error) {
	b, err := cbor.Marshal(v)
	if err != nil {
		return Zero, false, errors.Wrap(err, "marshaling cbor")
	}
	return s.Put(ctx, b, multicodec.Cbor)
}

// GetCBOR reads a blob from a block store and CBOR-decodes it into v,
// which must be a pointer.
func GetCBOR(ctx context.Context, g Getter, ref Ref, v interface{}) error {
	b, err := g.Get(ctx, ref.Bytes())
	if err != nil {
		return err
	}
	return errors.Wrap(cbor.Unmarshal(b, v), "unmarshaling cbor")
}
