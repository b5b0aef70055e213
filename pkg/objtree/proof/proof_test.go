package proof

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/objgraph/pkg/objtree"
	"github.com/Mindburn-Labs/objgraph/pkg/objtree/jsonpayload"
)

type strNode = jsonpayload.JSON[string]

func leaf(name, value string) objtree.NodeConverter[strNode] {
	return objtree.NewNodeWithChildren[strNode](objtree.Leaf, jsonpayload.New(name, "leaf", value), nil)
}

func branch(name, value string, children ...objtree.NodeConverter[strNode]) objtree.NodeConverter[strNode] {
	return objtree.NewNodeWithChildren[strNode](objtree.Tree, jsonpayload.New(name, "tree", value), children)
}

func buildSampleTree(t *testing.T) *objtree.ObjectTree[strNode] {
	t.Helper()
	root := branch("root", "r",
		branch("docs", "d",
			leaf("readme", "hello"),
			leaf("license", "mit"),
		),
		leaf("config", "cfg"),
	)

	tree, err := objtree.CreateFromRoot[strNode](root)
	require.NoError(t, err)
	return tree
}

func TestGenerateAndVerifyInclusionProof(t *testing.T) {
	tree := buildSampleTree(t)

	p, err := Generate(tree, []string{"docs", "readme"})
	require.NoError(t, err)
	require.Len(t, p.Ancestors, 2)

	require.NoError(t, Verify(p, tree.RootHash()))
}

func TestGenerateAndVerifyShallowPath(t *testing.T) {
	tree := buildSampleTree(t)

	p, err := Generate(tree, []string{"config"})
	require.NoError(t, err)
	require.Len(t, p.Ancestors, 1)

	require.NoError(t, Verify(p, tree.RootHash()))
}

func TestVerifyRejectsWrongExpectedRoot(t *testing.T) {
	tree := buildSampleTree(t)

	p, err := Generate(tree, []string{"docs", "license"})
	require.NoError(t, err)

	other, err := objtree.CreateFromRoot[strNode](leaf("unrelated", "x"))
	require.NoError(t, err)

	require.Error(t, Verify(p, other.RootHash()))
}

func TestVerifyRejectsTamperedLeafHash(t *testing.T) {
	tree := buildSampleTree(t)

	p, err := Generate(tree, []string{"docs", "readme"})
	require.NoError(t, err)

	p.LeafHash[0] ^= 0xFF

	require.Error(t, Verify(p, tree.RootHash()))
}

func TestGenerateFailsForUnknownPath(t *testing.T) {
	tree := buildSampleTree(t)

	_, err := Generate(tree, []string{"docs", "missing"})
	require.Error(t, err)
}
