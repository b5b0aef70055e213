package objtree

import "fmt"

// NodeKind distinguishes a leaf (never has children) from a tree (may
// have zero or more children).
type NodeKind int

const (
	// Leaf is a node with no children.
	Leaf NodeKind = iota
	// Tree is a node that may have children, including zero.
	Tree
)

// String renders the NodeKind in its lowercase wire form.
func (k NodeKind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Tree:
		return "tree"
	default:
		return fmt.Sprintf("nodekind(%d)", int(k))
	}
}

// ParseNodeKind parses the lowercase wire form written by String.
func ParseNodeKind(s string) (NodeKind, error) {
	switch s {
	case "leaf":
		return Leaf, nil
	case "tree":
		return Tree, nil
	default:
		return 0, fmt.Errorf("%w: unknown node kind %q", ErrParse, s)
	}
}
