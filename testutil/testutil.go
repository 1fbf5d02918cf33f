// Package testutil provides helpers shared by the tests of the various store implementations.
package testutil

import (
	"bytes"
	"context"
	"testing"
	"testing/quick"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/multiformats/go-multicodec"

	"github.com/bobg/cas"
	"github.com/bobg/cas/split"
)

// RoundTrip checks, for arbitrary payloads,
// that a blob stored in an empty store comes back intact,
// that re-storing it yields the same ref with added == false,
// and that distinct payloads get distinct refs.
func RoundTrip(ctx context.Context, t *testing.T, storeFactory func() cas.Store) {
	f := func(b1, b2 []byte) bool {
		if bytes.Equal(b1, b2) {
			return true
		}
		store := storeFactory()

		ref1, added, err := store.Put(ctx, b1, multicodec.Raw)
		if err != nil {
			t.Log(err)
			return false
		}
		if !added {
			t.Logf("blob %x not added to an empty store", b1)
			return false
		}

		ref1again, added, err := store.Put(ctx, b1, multicodec.Raw)
		if err != nil {
			t.Log(err)
			return false
		}
		if added || ref1again != ref1 {
			t.Logf("re-storing blob %x: got (%s, %v), want (%s, false)", b1, ref1again, added, ref1)
			return false
		}

		ref2, _, err := store.Put(ctx, b2, multicodec.Raw)
		if err != nil {
			t.Log(err)
			return false
		}
		if ref2 == ref1 {
			t.Logf("distinct blobs %x and %x share ref %s", b1, b2, ref1)
			return false
		}

		got1, err := store.Get(ctx, ref1.Bytes())
		if err != nil {
			t.Log(err)
			return false
		}
		got2, err := store.Get(ctx, ref2.Bytes())
		if err != nil {
			t.Log(err)
			return false
		}
		if diff := cmp.Diff(cas.Blob(b1), got1); diff != "" {
			t.Logf("mismatch (-want +got):\n%s", diff)
			return false
		}
		if diff := cmp.Diff(cas.Blob(b2), got2); diff != "" {
			t.Logf("mismatch (-want +got):\n%s", diff)
			return false
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

// ReadWrite permits testing a Store implementation
// by split-writing some data to it,
// then reading it back out to make sure it's the same.
func ReadWrite(ctx context.Context, t *testing.T, store cas.Store, data []byte) {
	t1 := time.Now()
	w := split.NewWriter(ctx, store)
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	t.Logf("wrote %d bytes in %s", len(data), time.Since(t1))

	buf := new(bytes.Buffer)
	t2 := time.Now()
	if err := split.Read(ctx, store, w.Root, buf); err != nil {
		t.Fatal(err)
	}
	got := buf.Bytes()
	t.Logf("read %d bytes in %s", len(got), time.Since(t2))

	if len(got) != len(data) {
		t.Errorf("got length %d, want %d", len(got), len(data))
	} else if !bytes.Equal(got, data) {
		t.Error("mismatch")
	}
}
