package objtree

import (
	"bytes"
	"io"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// HashedNodeWithEntries is a hashed node together with the entries it
// was hashed over — enough to independently recompute and verify its
// hash without consulting anything else.
type HashedNodeWithEntries[T Payload] struct {
	Kind    NodeKind
	Hash    hash.Hash
	Inner   T
	Entries []NodeEntry
}

// NewHashedNodeWithEntries pairs a HashedNode with the entries it was
// hashed over.
func NewHashedNodeWithEntries[T Payload](n HashedNode[T], entries []NodeEntry) HashedNodeWithEntries[T] {
	return HashedNodeWithEntries[T]{Kind: n.Kind, Hash: n.Hash, Inner: n.Inner, Entries: entries}
}

// HashedNodeWithEntriesFromRead pairs a deserialized NodeWithEntries
// with the hash the caller recorded for it (e.g. from a parent's
// entry line), for later verification against the recomputed value.
func HashedNodeWithEntriesFromRead[T Payload](n NodeWithEntries[T], h hash.Hash) HashedNodeWithEntries[T] {
	return HashedNodeWithEntries[T]{Kind: n.Kind, Hash: h, Inner: n.Inner, Entries: n.Entries}
}

// Split returns the HashedNode and its entries separately.
func (h HashedNodeWithEntries[T]) Split() (HashedNode[T], []NodeEntry) {
	return HashedNode[T]{Kind: h.Kind, Hash: h.Hash, Inner: h.Inner}, h.Entries
}

// WriteBytes writes h's canonical serialization — the same bytes its
// hash was computed over.
func (h HashedNodeWithEntries[T]) WriteBytes(w io.Writer) error {
	ref := nodeWithEntriesRef[T]{kind: h.Kind, inner: h.Inner, entries: h.Entries}
	return ref.WriteBytes(w)
}

// VerifyHash recomputes h's hash from its kind, payload, and entries
// and confirms it equals h.Hash.
func (h HashedNodeWithEntries[T]) VerifyHash() error {
	return VerifyHash[T](h.Kind, h.Inner, h.Entries, h.Hash)
}

// VerifyHash re-serializes a node from its kind, payload, and recorded
// child entries, recomputes its hash, and confirms it matches want. A
// mismatch means the payload, its entries, or the stored hash have
// diverged — tampering or a construction bug — and is reported as an
// ErrKindVerify error, never silently accepted.
func VerifyHash[T Payload](kind NodeKind, inner T, entries []NodeEntry, want hash.Hash) error {
	var buf bytes.Buffer
	ref := nodeWithEntriesRef[T]{kind: kind, inner: inner, entries: entries}
	if err := ref.WriteBytes(&buf); err != nil {
		return err
	}

	computed := hash.New(buf.Bytes())
	if computed != want {
		return errVerify(want, computed)
	}
	return nil
}
