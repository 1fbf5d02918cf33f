package mem

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"

	"github.com/bobg/cas"
	"github.com/bobg/cas/testutil"
)

func TestRoundTrip(t *testing.T) {
	testutil.RoundTrip(context.Background(), t, func() cas.Store { return New() })
}

func TestReadWrite(t *testing.T) {
	data := make([]byte, 1<<20)
	rand.New(rand.NewSource(42)).Read(data)
	testutil.ReadWrite(context.Background(), t, New(), data)
}

func TestScenario(t *testing.T) {
	var (
		ctx = context.Background()
		s   = New()
	)

	ref, added, err := s.Put(ctx, cas.Blob("hello"), multicodec.Code(0x55))
	if err != nil {
		t.Fatal(err)
	}
	if !added {
		t.Error("got added=false storing to an empty store")
	}

	got, err := s.Get(ctx, ref.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Errorf(`got %q, want "hello"`, got)
	}

	// A ref computed for bytes never stored is absent, not an error.
	worldRef := refOf(t, cas.Blob("world"), multicodec.Code(0x55))
	_, err = s.Get(ctx, worldRef.Bytes())
	if !errors.Is(err, cas.ErrNotFound) {
		t.Errorf("got %v, want %s", err, cas.ErrNotFound)
	}
}

func TestEmptyBlob(t *testing.T) {
	var (
		ctx = context.Background()
		s   = New()
	)

	ref, added, err := s.Put(ctx, cas.Blob{}, multicodec.Raw)
	if err != nil {
		t.Fatal(err)
	}
	if !added {
		t.Error("got added=false storing the empty blob to an empty store")
	}
	got, err := s.Get(ctx, ref.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d bytes, want 0", len(got))
	}
}

func TestCodes(t *testing.T) {
	var (
		ctx = context.Background()
		s   = New()
		b   = cas.Blob("same bytes")
	)

	rawRef, _, err := s.Put(ctx, b, multicodec.Raw)
	if err != nil {
		t.Fatal(err)
	}
	cborRef, _, err := s.Put(ctx, b, multicodec.Cbor)
	if err != nil {
		t.Fatal(err)
	}

	// Same digest, different content-type code: different identifiers.
	if rawRef == cborRef {
		t.Errorf("got the same ref %s under two content-type codes", rawRef)
	}
	for _, ref := range []cas.Ref{rawRef, cborRef} {
		got, err := s.Get(ctx, ref.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, b) {
			t.Errorf("got %q, want %q", got, b)
		}
	}
}

func TestMalformedRef(t *testing.T) {
	var (
		ctx = context.Background()
		s   = New()
	)

	_, _, err := s.Put(ctx, cas.Blob("hello"), multicodec.Raw)
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string][]byte{
		"empty":     {},
		"junk":      {0xde, 0xad, 0xbe, 0xef},
		"truncated": truncatedRef(t),
		"version 0": v0Ref(t),
	}
	for name, refBytes := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, refBytes)
			var derr cas.DecodeError
			if !errors.As(err, &derr) {
				t.Errorf("got %v, want a DecodeError", err)
			}
		})
	}
}

func TestTooBig(t *testing.T) {
	var (
		ctx = context.Background()
		s   = New()
	)

	_, _, err := s.Put(ctx, make(cas.Blob, cas.MaxBlockSize+1), multicodec.Raw)
	if !errors.Is(err, cas.ErrTooBig) {
		t.Errorf("got %v, want %s", err, cas.ErrTooBig)
	}
	_, _, err = s.Put(ctx, make(cas.Blob, cas.MaxBlockSize), multicodec.Raw)
	if err != nil {
		t.Errorf("got %v storing a blob of exactly MaxBlockSize", err)
	}
}

// countingHasher and countingCodec delegate to the defaults,
// counting calls, to check that injected collaborators are the ones used.
type countingHasher struct {
	calls int
}

func (h *countingHasher) Hash(b cas.Blob) (multihash.Multihash, error) {
	h.calls++
	return cas.SHA256{}.Hash(b)
}

type countingCodec struct {
	encodes, decodes int
}

func (c *countingCodec) Encode(code multicodec.Code, mh multihash.Multihash) (cas.Ref, error) {
	c.encodes++
	return cas.V1{}.Encode(code, mh)
}

func (c *countingCodec) Decode(b []byte) (cas.Ref, error) {
	c.decodes++
	return cas.V1{}.Decode(b)
}

func TestInjectedCollaborators(t *testing.T) {
	var (
		ctx    = context.Background()
		hasher countingHasher
		codec  countingCodec
		s      = NewWith(&hasher, &codec)
	)

	ref, _, err := s.Put(ctx, cas.Blob("hello"), multicodec.Raw)
	if err != nil {
		t.Fatal(err)
	}
	if hasher.calls != 1 || codec.encodes != 1 {
		t.Errorf("got %d hash calls and %d encode calls after Put, want 1 and 1", hasher.calls, codec.encodes)
	}

	_, err = s.Get(ctx, ref.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if codec.decodes != 1 {
		t.Errorf("got %d decode calls after Get, want 1", codec.decodes)
	}
}

func refOf(t *testing.T, b cas.Blob, code multicodec.Code) cas.Ref {
	t.Helper()
	mh, err := cas.SHA256{}.Hash(b)
	if err != nil {
		t.Fatal(err)
	}
	ref, err := cas.V1{}.Encode(code, mh)
	if err != nil {
		t.Fatal(err)
	}
	return ref
}

func truncatedRef(t *testing.T) []byte {
	t.Helper()
	full := refOf(t, cas.Blob("hello"), multicodec.Raw).Bytes()
	return full[:len(full)-5]
}

// v0Ref produces the binary form of a version-0 CID:
// a bare sha2-256 multihash.
func v0Ref(t *testing.T) []byte {
	t.Helper()
	mh, err := multihash.Sum([]byte("hello"), multihash.SHA2_256, -1)
	if err != nil {
		t.Fatal(err)
	}
	return mh
}
