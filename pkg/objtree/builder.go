package objtree

// hashingTree is the builder's working graph: un-hashed node[T]
// values with their edges, not yet walked for hashing.
type hashingTree[T Payload] struct {
	graph   *Graph[node[T]]
	rootIdx NodeIndex
}

// builderStackEntry is one pending unit of work for buildGraph: a
// node still to be flattened, and the index of the parent it should
// be linked under (absent for the root).
type builderStackEntry[T Payload] struct {
	nwc       NodeWithChildren[T]
	parentIdx NodeIndex
	hasParent bool
}

// buildGraph flattens a recursive NodeWithChildren into a Graph with
// exactly one root, using an explicit stack so tree depth is bounded
// by heap, not call-stack depth. Children are pushed in reverse order
// so popping processes them in the caller's original order.
func buildGraph[T Payload](root NodeConverter[T]) (*hashingTree[T], error) {
	g := newGraph[node[T]]()
	var rootIdx NodeIndex
	haveRoot := false

	stack := []builderStackEntry[T]{{nwc: root.IntoNodeWithChildren()}}

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := node[T]{kind: entry.nwc.Kind, inner: entry.nwc.Inner}
		nodeIdx := g.addNode(n)

		if entry.hasParent {
			g.addEdge(entry.parentIdx, nodeIdx)
		} else if haveRoot {
			return nil, errMultipleRootNode()
		} else {
			rootIdx = nodeIdx
			haveRoot = true
		}

		children := entry.nwc.Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, builderStackEntry[T]{
				nwc:       children[i].IntoNodeWithChildren(),
				parentIdx: nodeIdx,
				hasParent: true,
			})
		}
	}

	if !haveRoot {
		return nil, errMissingRootNode()
	}

	return &hashingTree[T]{graph: g, rootIdx: rootIdx}, nil
}
