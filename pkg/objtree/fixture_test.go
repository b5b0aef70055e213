package objtree

import (
	"bufio"
	"fmt"
	"io"
	"testing"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// hashOf returns a deterministic hash for use in entry fixtures where
// the actual preimage doesn't matter.
func hashOf(t *testing.T, seed string) hash.Hash {
	t.Helper()
	return hash.New([]byte(seed))
}

// strPayload is a minimal Payload fixture for exercising the core
// engine in isolation, without reaching for a concrete payload type
// from another package.
type strPayload struct {
	name       string
	objectKind string
	value      string
}

func str(name, value string) strPayload {
	return strPayload{name: name, objectKind: "str", value: value}
}

func (p strPayload) Name() string       { return p.name }
func (p strPayload) ObjectKind() string { return p.objectKind }
func (p strPayload) WriteBytes(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n", p.value)
	return err
}

// leaf builds a leaf NodeConverter.
func leaf(name, value string) NodeConverter[strPayload] {
	return strLeaf{str(name, value)}
}

type strLeaf struct{ strPayload }

func (l strLeaf) IntoNodeWithChildren() NodeWithChildren[strPayload] {
	return NodeWithChildren[strPayload]{Kind: Leaf, Inner: l.strPayload}
}

// branch builds a tree NodeConverter with the given children.
func branch(name, value string, children ...NodeConverter[strPayload]) NodeConverter[strPayload] {
	return strBranch{inner: str(name, value), children: children}
}

type strBranch struct {
	inner    strPayload
	children []NodeConverter[strPayload]
}

func (b strBranch) IntoNodeWithChildren() NodeWithChildren[strPayload] {
	return NodeWithChildren[strPayload]{Kind: Tree, Inner: b.inner, Children: b.children}
}

func readStrPayload(r *bufio.Reader) (strPayload, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return strPayload{}, err
	}
	if len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	}
	return strPayload{objectKind: "str", value: line}, nil
}
