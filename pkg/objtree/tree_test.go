package objtree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTree(t *testing.T, childOrder []int) *ObjectTree[strPayload] {
	t.Helper()

	all := []NodeConverter[strPayload]{
		leaf("a", "alpha"),
		leaf("b", "beta"),
		leaf("c", "gamma"),
	}
	var children []NodeConverter[strPayload]
	for _, i := range childOrder {
		children = append(children, all[i])
	}

	tree, err := CreateFromRoot[strPayload](branch("root", "r", children...))
	require.NoError(t, err)
	return tree
}

func TestCreateFromRootIsDeterministic(t *testing.T) {
	t1 := sampleTree(t, []int{0, 1, 2})
	t2 := sampleTree(t, []int{0, 1, 2})
	require.Equal(t, t1.RootHash(), t2.RootHash())
}

func TestCreateFromRootIsChildOrderInvariant(t *testing.T) {
	inOrder := sampleTree(t, []int{0, 1, 2})
	reversed := sampleTree(t, []int{2, 1, 0})
	shuffled := sampleTree(t, []int{1, 2, 0})

	require.Equal(t, inOrder.RootHash(), reversed.RootHash())
	require.Equal(t, inOrder.RootHash(), shuffled.RootHash())
}

func TestLeafAndEmptyTreeHashDiffer(t *testing.T) {
	leafTree, err := CreateFromRoot[strPayload](leaf("n", "same-value"))
	require.NoError(t, err)

	emptyTree, err := CreateFromRoot[strPayload](branch("n", "same-value"))
	require.NoError(t, err)

	require.NotEqual(t, leafTree.RootHash(), emptyTree.RootHash())
}

func TestRootHashChangesWithChildSet(t *testing.T) {
	withTwo := sampleTree(t, []int{0, 1})
	withThree := sampleTree(t, []int{0, 1, 2})
	require.NotEqual(t, withTwo.RootHash(), withThree.RootHash())
}

// walkAndVerify recomputes and verifies every node's hash in the tree,
// returning the number of nodes visited.
func walkAndVerify(t *testing.T, tree *ObjectTree[strPayload]) int {
	t.Helper()
	g, rootIdx := tree.AsGraph()

	count := 0
	stack := []NodeIndex{rootIdx}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := g.Node(idx)
		childIdxs := g.Children(idx)
		entries := make([]NodeEntry, 0, len(childIdxs))
		for _, cIdx := range childIdxs {
			entries = append(entries, g.Node(cIdx).ToNodeEntry())
		}

		err := VerifyHash[strPayload](n.Kind, n.Inner, entries, n.Hash)
		require.NoError(t, err)
		count++

		stack = append(stack, childIdxs...)
	}
	return count
}

func TestVerifyHashSucceedsForEveryNodeInTree(t *testing.T) {
	tree := sampleTree(t, []int{0, 1, 2})
	count := walkAndVerify(t, tree)
	require.Equal(t, 4, count) // root + 3 leaves
}

func TestVerifyHashDetectsTamperedPayload(t *testing.T) {
	tree, err := CreateFromRoot[strPayload](leaf("n", "original"))
	require.NoError(t, err)

	root := tree.Root()
	tampered := strPayload{name: root.Inner.Name(), objectKind: root.Inner.ObjectKind(), value: "tampered"}

	err = VerifyHash[strPayload](root.Kind, tampered, nil, root.Hash)
	require.Error(t, err)

	var ge *GraphError
	require.ErrorAs(t, err, &ge)
	require.Equal(t, ErrKindVerify, ge.Kind)
}

func TestVerifyHashDetectsTamperedEntrySet(t *testing.T) {
	tree := sampleTree(t, []int{0, 1, 2})
	root := tree.Root()
	g, rootIdx := tree.AsGraph()

	var entries []NodeEntry
	for _, cIdx := range g.Children(rootIdx) {
		entries = append(entries, g.Node(cIdx).ToNodeEntry())
	}
	// Drop one entry — the recorded set no longer matches what the
	// root hash actually commits to.
	entries = entries[:len(entries)-1]

	err := VerifyHash[strPayload](root.Kind, root.Inner, entries, root.Hash)
	require.Error(t, err)
	require.ErrorIs(t, err, &GraphError{Kind: ErrKindVerify})
}

func TestCreateFromRootHandlesDeepChainWithoutStackOverflow(t *testing.T) {
	const depth = 10000

	var chain NodeConverter[strPayload] = leaf(fmt.Sprintf("n%d", depth), "leaf-value")
	for i := depth - 1; i >= 0; i-- {
		chain = branch(fmt.Sprintf("n%d", i), "branch-value", chain)
	}

	tree, err := CreateFromRoot[strPayload](chain)
	require.NoError(t, err)
	require.False(t, tree.RootHash().IsZero())

	g, rootIdx := tree.AsGraph()
	require.Equal(t, depth+1, g.Len())

	count := 0
	idx := rootIdx
	for {
		count++
		children := g.Children(idx)
		if len(children) == 0 {
			break
		}
		idx = children[0]
	}
	require.Equal(t, depth+1, count)
}
