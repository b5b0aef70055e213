// Package proof builds and verifies inclusion proofs: evidence that a
// named leaf belongs to a tree with a given root hash, without
// transmitting the whole tree.
//
// Unlike a balanced binary Merkle tree, where one sibling hash per
// level suffices, an object tree is n-ary: a node's hash commits to
// *all* of its children's entries at once, not to one sibling at a
// time. So each step of this proof carries an ancestor's full entry
// set rather than a single sibling hash — the generalization the
// n-ary shape requires.
package proof

import (
	"fmt"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
	"github.com/Mindburn-Labs/objgraph/pkg/objtree"
)

// AncestorStep is one node on the path from a leaf up to the root: its
// own kind and payload, and the full entry set it was hashed over.
type AncestorStep[T objtree.Payload] struct {
	Kind    objtree.NodeKind
	Inner   T
	Entries []objtree.NodeEntry
	Hash    hash.Hash
	// Name is the name by which this ancestor's own parent refers to
	// it — empty for the root, which is nobody's child.
	Name string
}

// InclusionProof demonstrates that a leaf named by Path belongs to a
// tree whose root hash is the final entry's Hash. Ancestors is ordered
// from the leaf's immediate parent to the root.
type InclusionProof[T objtree.Payload] struct {
	Path      []string
	LeafHash  hash.Hash
	Ancestors []AncestorStep[T]
}

// RootHash returns the root hash this proof ultimately chains to, or
// LeafHash if the proof has no ancestors (a one-node tree whose leaf
// is the root).
func (p InclusionProof[T]) RootHash() hash.Hash {
	if len(p.Ancestors) == 0 {
		return p.LeafHash
	}
	return p.Ancestors[len(p.Ancestors)-1].Hash
}

// Generate walks tree from its root along path (a sequence of child
// names) and returns an inclusion proof for the node at the end of
// that path.
func Generate[T objtree.Payload](tree *objtree.ObjectTree[T], path []string) (*InclusionProof[T], error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("proof: empty path")
	}

	g, rootIdx := tree.AsGraph()

	idx := rootIdx
	// chain accumulates the index and entry set of every node visited
	// before the leaf, root first.
	type visited struct {
		idx     objtree.NodeIndex
		entries []objtree.NodeEntry
	}
	var chain []visited

	for depth, name := range path {
		children := g.Children(idx)

		entries := make([]objtree.NodeEntry, 0, len(children))
		var nextIdx objtree.NodeIndex
		found := false
		for _, childIdx := range children {
			child := g.Node(childIdx)
			entries = append(entries, child.ToNodeEntry())
			if child.Name() == name {
				nextIdx = childIdx
				found = true
			}
		}

		if !found {
			return nil, fmt.Errorf("proof: no child named %q at depth %d", name, depth)
		}

		chain = append(chain, visited{idx: idx, entries: entries})
		idx = nextIdx
	}

	leaf := g.Node(idx)

	ancestors := make([]AncestorStep[T], len(chain))
	for i, v := range chain {
		n := g.Node(v.idx)
		name := ""
		if i >= 1 {
			name = path[i-1]
		}
		ancestors[len(chain)-1-i] = AncestorStep[T]{
			Kind:    n.Kind,
			Inner:   n.Inner,
			Entries: v.entries,
			Hash:    n.Hash,
			Name:    name,
		}
	}

	return &InclusionProof[T]{
		Path:      append([]string(nil), path...),
		LeafHash:  leaf.Hash,
		Ancestors: ancestors,
	}, nil
}

// Verify confirms that proof chains from its leaf hash to expectedRoot
// without trusting anything but expectedRoot itself: each ancestor's
// claimed hash is independently recomputed from its entries, and the
// entry naming the previous step must match that step's hash exactly.
func Verify[T objtree.Payload](proof *InclusionProof[T], expectedRoot hash.Hash) error {
	if len(proof.Path) == 0 {
		return fmt.Errorf("proof: empty path")
	}

	currentHash := proof.LeafHash
	currentName := proof.Path[len(proof.Path)-1]

	for _, step := range proof.Ancestors {
		if err := objtree.VerifyHash[T](step.Kind, step.Inner, step.Entries, step.Hash); err != nil {
			return fmt.Errorf("proof: ancestor hash verification failed: %w", err)
		}

		matched := false
		for _, e := range step.Entries {
			if e.Name == currentName {
				if e.Hash != currentHash {
					return fmt.Errorf("proof: entry %q hash mismatch: expected %s, got %s", currentName, currentHash, e.Hash)
				}
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf("proof: no entry named %q among ancestor's children", currentName)
		}

		currentHash = step.Hash
		currentName = step.Name
	}

	if currentHash != expectedRoot {
		return fmt.Errorf("proof: root hash mismatch: expected %s, got %s", expectedRoot, currentHash)
	}
	return nil
}
