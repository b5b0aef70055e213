package objtree

import (
	"io"

	"golang.org/x/text/unicode/norm"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// NodeEntry is a child descriptor embedded in a parent's serialized
// representation. It is the only thing a parent records about each
// child — the child's own bytes are never inlined.
type NodeEntry struct {
	Kind NodeKind
	Hash hash.Hash
	Name string
}

// WriteBytes writes the entry line form: "<kind> <hash> <name>\n".
func (e NodeEntry) WriteBytes(w io.Writer) error {
	return writeEntryLine(w, e)
}

// node is the internal, un-hashed representation of a single node:
// its kind and its payload, without children.
type node[T Payload] struct {
	kind  NodeKind
	inner T
}

// NodeConverter is satisfied by any type that can flatten itself into
// a NodeWithChildren[T]. This is how heterogeneous payload subtypes —
// distinct Go types that all erase into the same T — compose under a
// single children slice, the Go analogue of the generic N type
// parameter in the language-neutral spec.
type NodeConverter[T Payload] interface {
	IntoNodeWithChildren() NodeWithChildren[T]
}

// NodeWithChildren is the user-facing input form of a tree: a kind, a
// payload, and the (possibly heterogeneous) children beneath it.
type NodeWithChildren[T Payload] struct {
	Kind     NodeKind
	Inner    T
	Children []NodeConverter[T]
}

// IntoNodeWithChildren makes NodeWithChildren itself satisfy
// NodeConverter — the identity case.
func (n NodeWithChildren[T]) IntoNodeWithChildren() NodeWithChildren[T] {
	return n
}

// NewNodeWithChildren constructs a NodeWithChildren.
func NewNodeWithChildren[T Payload](kind NodeKind, inner T, children []NodeConverter[T]) NodeWithChildren[T] {
	return NodeWithChildren[T]{Kind: kind, Inner: inner, Children: children}
}

// HashedNode is a node whose hash has been computed and is final. It
// is the element type of an ObjectTree's internal graph.
type HashedNode[T Payload] struct {
	Kind  NodeKind
	Hash  hash.Hash
	Inner T
}

// Name returns the name of the node's inner payload.
func (h HashedNode[T]) Name() string {
	return h.Inner.Name()
}

// ToNodeEntry builds the NodeEntry a parent would record for this
// child. The name is NFC-normalized — the same normalization applied
// when this hash was originally computed (hashing.go) — so a caller
// reconstructing entries from an already-hashed tree reproduces
// exactly the bytes the parent's hash was taken over.
func (h HashedNode[T]) ToNodeEntry() NodeEntry {
	return NodeEntry{Kind: h.Kind, Hash: h.Hash, Name: norm.NFC.String(h.Inner.Name())}
}
