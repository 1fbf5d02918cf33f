// Package split implements reading and writing of hashsplit trees in a block store.
// See github.com/bobg/hashsplit for more information.
//
// Blobs work best when they are not too big,
// so large byte streams should pass through a Writer on their way into a store.
// The stream is split into raw chunk blobs,
// and the chunks are organized into a tree
// whose interior nodes are stored as CBOR blobs.
// The ref of the root node stands for the whole stream.
package split

import (
	"context"
	"io"

	"github.com/bobg/hashsplit"
	"github.com/fxamacker/cbor/v2"
	"github.com/multiformats/go-multicodec"
	"github.com/pkg/errors"

	"github.com/bobg/cas"
)

// Node is a node of a hashsplit tree,
// stored as a CBOR blob.
// Exactly one of Leaves and Nodes is non-empty:
// Leaves holds the binary refs of raw chunk blobs,
// Nodes the binary refs of child Nodes.
// Size is the total byte size of the chunks under this node.
type Node struct {
	Size   uint64   `cbor:"size"`
	Leaves [][]byte `cbor:"leaves,omitempty"`
	Nodes  [][]byte `cbor:"nodes,omitempty"`
}

// Writer is an io.WriteCloser that splits its input with a hashsplit.Splitter,
// writing the chunks to a cas.Store as separate blobs.
// It additionally assembles those chunks into a tree,
// whose nodes are also written to the cas.Store as serialized Node objects.
// A chunk's split level, scaled down by the fanout factor,
// determines how many tree levels it closes.
// The assembly happens here rather than in a hashsplit.TreeBuilder
// because each stored child is represented in its parent
// by the ref the store assigned it.
// The ref of the tree root is available as Writer.Root after a call to Close.
type Writer struct {
	Ctx    context.Context
	Root   cas.Ref // populated by Close
	st     cas.Store
	spl    *hashsplit.Splitter
	levels []*Node // levels[0] collects chunk refs, higher levels collect child-node refs
	fanout uint
	closed bool
}

// NewWriter produces a new Writer writing to the given block store.
// The given context object is stored in the Writer and used in subsequent calls to Write and Close.
// This is an antipattern but acceptable when an object must adhere to a context-free stdlib interface
// (https://github.com/golang/go/wiki/CodeReviewComments#contexts).
// Callers may replace the context object during the lifetime of the Writer as needed.
func NewWriter(ctx context.Context, st cas.Store, opts ...Option) *Writer {
	w := &Writer{
		Ctx:    ctx,
		st:     st,
		fanout: 4,
	}
	spl := hashsplit.NewSplitter(func(bytes []byte, level uint) error {
		// A flushed-out empty final chunk carries nothing.
		if len(bytes) == 0 {
			return nil
		}
		ref, _, err := st.Put(w.Ctx, bytes, multicodec.Raw)
		if err != nil {
			return errors.Wrap(err, "writing split chunk to store")
		}
		return w.add(ref, len(bytes), level/w.fanout)
	})
	spl.MinSize = 1024
	spl.SplitBits = 14
	w.spl = spl
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements io.Writer.
func (w *Writer) Write(inp []byte) (int, error) {
	return w.spl.Write(inp)
}

// Close implements io.Closer.
// After Close, Writer.Root is the ref of the tree root,
// or the zero ref if nothing was written.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	err := w.spl.Close()
	if err != nil {
		return err
	}
	w.closed = true
	if len(w.levels) == 0 {
		return nil
	}
	for i := 0; i+1 < len(w.levels); i++ {
		if err = w.closeLevel(i); err != nil {
			return err
		}
	}
	top := w.levels[len(w.levels)-1]
	rootRef, _, err := cas.PutCBOR(w.Ctx, w.st, top)
	if err != nil {
		return err
	}
	w.Root = rootRef
	return nil
}

// add appends a stored chunk's ref to the leaf level of the tree in progress,
// then closes one tree level per level of the chunk's split boundary.
func (w *Writer) add(ref cas.Ref, size int, level uint) error {
	if len(w.levels) == 0 {
		w.levels = []*Node{new(Node)}
	}
	leaf := w.levels[0]
	leaf.Leaves = append(leaf.Leaves, ref.Bytes())
	leaf.Size += uint64(size)
	for i := uint(0); i < level; i++ {
		if err := w.closeLevel(int(i)); err != nil {
			return err
		}
	}
	return nil
}

// closeLevel stores the accumulated node at the given level
// and hands its ref to the level above,
// creating that level if necessary.
// An empty level is left alone.
func (w *Writer) closeLevel(i int) error {
	n := w.levels[i]
	if len(n.Leaves) == 0 && len(n.Nodes) == 0 {
		return nil
	}
	ref, _, err := cas.PutCBOR(w.Ctx, w.st, n)
	if err != nil {
		return errors.Wrap(err, "writing tree node to store")
	}
	if i+1 == len(w.levels) {
		w.levels = append(w.levels, new(Node))
	}
	parent := w.levels[i+1]
	parent.Nodes = append(parent.Nodes, ref.Bytes())
	parent.Size += n.Size
	w.levels[i] = new(Node)
	return nil
}

// Option adjusts the behavior of a Writer.
type Option func(*Writer)

// Bits sets the number of trailing rolling-hash zero bits that produce a chunk boundary.
func Bits(n uint) Option {
	return func(w *Writer) {
		w.spl.SplitBits = n
	}
}

// MinSize sets the minimum chunk size.
func MinSize(n int) Option {
	return func(w *Writer) {
		w.spl.MinSize = n
	}
}

// Fanout controls the tree's shape.
func Fanout(n uint) Option {
	return func(w *Writer) {
		w.fanout = n
	}
}

// Read reads blobs from `g`,
// reassembling the content of the blob tree created with a Writer
// and writing it to `w`.
// The ref of the root Node is given by `ref`.
func Read(ctx context.Context, g cas.Getter, ref cas.Ref, w io.Writer) error {
	var tn Node
	err := cas.GetCBOR(ctx, g, ref, &tn)
	if err != nil {
		return err
	}
	return splitRead(ctx, g, &tn, w)
}

func splitRead(ctx context.Context, g cas.Getter, n *Node, w io.Writer) error {
	if len(n.Leaves) > 0 {
		return splitReadHelper(ctx, g, n.Leaves, func(m []byte) error {
			_, err := w.Write(m)
			return err
		})
	}
	return splitReadHelper(ctx, g, n.Nodes, func(m []byte) error {
		var tn Node
		err := cbor.Unmarshal(m, &tn)
		if err != nil {
			return err
		}
		return splitRead(ctx, g, &tn, w)
	})
}

func splitReadHelper(ctx context.Context, g cas.Getter, subrefsBytes [][]byte, do func([]byte) error) error {
	for _, s := range subrefsBytes {
		b, err := g.Get(ctx, s)
		if err != nil {
			return errors.Wrapf(err, "getting %x", s)
		}
		err = do(b)
		if err != nil {
			return err
		}
	}
	return nil
}
