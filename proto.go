package cas

import (
	"context"

	"github.com/multiformats/go-multicodec"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
)

// PutProto marshals a protocol buffer and stores it as a blob
// under the protobuf content-type code.
func PutProto(ctx context.Context, s Store, m proto.Message) (Ref, bool, error) {
	b, err := proto.Marshal(m)
	if err != nil {
		return Zero, false, errors.Wrap(err, "marshaling protobuf")
	}
	return s.Put(ctx, b, multicodec.Protobuf)
}

// GetProto reads a blob from a block store and parses it into the given protocol buffer.
func GetProto(ctx context.Context, g Getter, ref Ref, m proto.Message) error {
	b, err := g.Get(ctx, ref.Bytes())
	if err != nil {
		return err
	}
	return proto.Unmarshal(b, m)
}
