package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Mindburn-Labs/objgraph/pkg/objtree"
	"github.com/Mindburn-Labs/objgraph/pkg/objtree/jsonpayload"
	"github.com/Mindburn-Labs/objgraph/pkg/policy"
)

// node is the CLI's single concrete Payload type: a named, kind-tagged
// string value. A real embedding caller would parameterize objtree
// over its own domain payload; the CLI only needs one to be generally
// useful as a build/verify/export tool.
type node = jsonpayload.JSON[string]

// manifest is the on-disk JSON input to "build" and "import": a
// recursive description of an unhashed tree.
type manifest struct {
	Name       string     `json:"name"`
	Kind       string     `json:"kind"`
	ObjectKind string     `json:"object_kind"`
	Value      string     `json:"value"`
	Children   []manifest `json:"children,omitempty"`
}

func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

func (m manifest) toNodeConverter() (objtree.NodeConverter[node], error) {
	kind, err := objtree.ParseNodeKind(m.Kind)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", m.Name, err)
	}

	children := make([]objtree.NodeConverter[node], 0, len(m.Children))
	for _, c := range m.Children {
		cc, err := c.toNodeConverter()
		if err != nil {
			return nil, err
		}
		children = append(children, cc)
	}

	payload := jsonpayload.New(m.Name, m.ObjectKind, m.Value)
	return objtree.NewNodeWithChildren[node](kind, payload, children), nil
}

func (m manifest) buildTree() (*objtree.ObjectTree[node], error) {
	root, err := m.toNodeConverter()
	if err != nil {
		return nil, err
	}
	return objtree.CreateFromRoot[node](root)
}

// checkPolicy walks the manifest depth-first, submitting every node —
// root included — to evaluator before it is ever handed to
// objtree.CreateFromRoot. It fails closed on the first node any rule
// rejects.
func (m manifest) checkPolicy(evaluator *policy.Evaluator) error {
	return m.checkPolicyAt(evaluator, 0, true)
}

func (m manifest) checkPolicyAt(evaluator *policy.Evaluator, depth int, isRoot bool) error {
	candidate := policy.Candidate{
		ObjectKind: m.ObjectKind,
		Name:       m.Name,
		Depth:      depth,
		IsRoot:     isRoot,
	}

	if ok, err := evaluator.Allow(candidate); !ok {
		return err
	}

	for _, c := range m.Children {
		if err := c.checkPolicyAt(evaluator, depth+1, false); err != nil {
			return err
		}
	}

	return nil
}
