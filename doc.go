// Package cas is a content-addressed block store.
//
// A block store holds arbitrary byte sequences - "blobs" - and indexes
// each one by a content identifier, or _ref_, derived from the blob
// itself. A ref is a version-1 CID: a content-type code plus the
// sha2-256 hash of the blob's bytes
// (see https://github.com/multiformats/cid).
//
// Because the lookup key is computed from a blob's content rather than
// assigned by the caller, storing the same bytes twice under the same
// content-type code always yields the same ref, and two distinct blobs
// never share one (short of a sha2-256 collision, which you may safely
// plan your weekend around not happening).
//
// The mem subpackage provides the canonical in-memory store, a
// single-process stand-in for a networked content-addressed storage
// backend. The lru and logging subpackages wrap any store with a
// read-through cache and with operation logging. Large byte streams
// should be chunked with the split subpackage, which stores them as a
// tree of blobs and returns the root ref.
//
// CAS is a companion to, and a simplification of, github.com/bobg/bs.
package cas
