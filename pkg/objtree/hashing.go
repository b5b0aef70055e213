package objtree

import (
	"bytes"

	"golang.org/x/text/unicode/norm"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// postOrderFrame is one entry in the explicit post-order traversal
// stack: a node index, and whether its children have already been
// pushed for processing.
type postOrderFrame struct {
	idx      NodeIndex
	expanded bool
}

// postOrder returns the indices reachable from root in depth-first
// post-order — every child visited before its parent — computed with
// an explicit stack rather than recursion.
func postOrder[V any](g *Graph[V], root NodeIndex) []NodeIndex {
	var order []NodeIndex
	stack := []postOrderFrame{{idx: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if !top.expanded {
			stack[len(stack)-1].expanded = true
			children := g.Children(top.idx)
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, postOrderFrame{idx: children[i]})
			}
			continue
		}

		order = append(order, top.idx)
		stack = stack[:len(stack)-1]
	}

	return order
}

// computeHashes walks ht's graph in post order, computing each node's
// canonical hash from its own serialization plus its children's
// already-computed hashes. A child missing from hashes at this point
// indicates a post-order invariant violation, not caller error.
func computeHashes[T Payload](ht *hashingTree[T]) (map[NodeIndex]hash.Hash, error) {
	hashes := make(map[NodeIndex]hash.Hash, ht.graph.Len())

	for _, idx := range postOrder[node[T]](ht.graph, ht.rootIdx) {
		n := ht.graph.Node(idx)

		childIdxs := ht.graph.Children(idx)
		entries := make([]NodeEntry, 0, len(childIdxs))
		for _, childIdx := range childIdxs {
			child := ht.graph.Node(childIdx)
			childHash, ok := hashes[childIdx]
			if !ok {
				return nil, errUnhashedChild(n.inner.Name(), child.inner.Name())
			}
			entries = append(entries, NodeEntry{Kind: child.kind, Hash: childHash, Name: norm.NFC.String(child.inner.Name())})
		}

		var buf bytes.Buffer
		ref := nodeWithEntriesRef[T]{kind: n.kind, inner: n.inner, entries: entries}
		if err := ref.WriteBytes(&buf); err != nil {
			return nil, err
		}

		hashes[idx] = hash.New(buf.Bytes())
	}

	return hashes, nil
}

// hashedTreeStackEntry is one pending unit of work for
// createHashedTree: the index of the corresponding un-hashed node, and
// the index of the already-emitted parent it should be linked under.
type hashedTreeStackEntry struct {
	otherIdx  NodeIndex
	parentIdx NodeIndex
	hasParent bool
}

// createHashedTree rebuilds a graph of HashedNode[T] values mirroring
// ht's edges, via a second explicit-stack pass starting at the root.
// Sibling order is restored by pushing children in reverse, the same
// trick the unhashed builder uses.
func createHashedTree[T Payload](ht *hashingTree[T], hashes map[NodeIndex]hash.Hash) (*ObjectTree[T], error) {
	g := newGraph[HashedNode[T]]()
	var rootIdx NodeIndex
	haveRoot := false

	stack := []hashedTreeStackEntry{{otherIdx: ht.rootIdx}}

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		other := ht.graph.Node(entry.otherIdx)
		h, ok := hashes[entry.otherIdx]
		if !ok {
			return nil, errUnhashedNode(other.inner.Name())
		}

		nodeIdx := g.addNode(HashedNode[T]{Kind: other.kind, Hash: h, Inner: other.inner})

		if entry.hasParent {
			g.addEdge(entry.parentIdx, nodeIdx)
		} else if haveRoot {
			return nil, errMultipleRootNode()
		} else {
			rootIdx = nodeIdx
			haveRoot = true
		}

		children := ht.graph.Children(entry.otherIdx)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, hashedTreeStackEntry{
				otherIdx:  children[i],
				parentIdx: nodeIdx,
				hasParent: true,
			})
		}
	}

	if !haveRoot {
		return nil, errMissingRootNode()
	}

	return &ObjectTree[T]{graph: g, rootIdx: rootIdx}, nil
}
