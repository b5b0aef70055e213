package objtree

import "github.com/Mindburn-Labs/objgraph/pkg/hash"

// ObjectTree is an immutable Merkle DAG: a directed graph of
// HashedNode[T] values with a distinguished root. It is the only
// thing this package ever hands back to a caller as "the result" —
// once built, it cannot be mutated in place; a different tree
// requires calling CreateFromRoot again from an unhashed form.
type ObjectTree[T Payload] struct {
	graph   *Graph[HashedNode[T]]
	rootIdx NodeIndex
}

// CreateFromRoot builds an ObjectTree from an unhashed root node and
// its children: it flattens the recursive input into a graph with a
// single root (C4), then walks that graph post-order computing each
// node's canonical hash and emitting the hashed result (C5).
func CreateFromRoot[T Payload](root NodeConverter[T]) (*ObjectTree[T], error) {
	ht, err := buildGraph(root)
	if err != nil {
		return nil, err
	}

	hashes, err := computeHashes(ht)
	if err != nil {
		return nil, err
	}

	return createHashedTree(ht, hashes)
}

// AsGraph returns the tree's internal graph of HashedNode[T] values
// and its root index, for callers that need to walk the structure
// directly (e.g. to build an inclusion proof or export a subtree).
func (t *ObjectTree[T]) AsGraph() (*Graph[HashedNode[T]], NodeIndex) {
	return t.graph, t.rootIdx
}

// Root returns the hashed root node.
func (t *ObjectTree[T]) Root() HashedNode[T] {
	return t.graph.Node(t.rootIdx)
}

// RootHash returns the root node's hash — the digest that identifies
// the entire tree.
func (t *ObjectTree[T]) RootHash() hash.Hash {
	return t.Root().Hash
}
