package objtree

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// nodeWithEntriesRef is the write-side view of a node: a kind, a
// payload, and its direct children as NodeEntry values — the input to
// the canonical serialization that every node's hash is computed
// over.
type nodeWithEntriesRef[T Payload] struct {
	kind    NodeKind
	inner   T
	entries []NodeEntry
}

// WriteBytes writes the canonical form: header, a blank line, the
// payload's own bytes, and — only for a Tree with at least one entry
// — a further blank line followed by entry lines sorted by name. A
// Tree with no children and a Leaf therefore both stop right after
// the payload, but remain distinguishable because node_kind differs.
func (n nodeWithEntriesRef[T]) WriteBytes(w io.Writer) error {
	if err := writeHeaderBytes(w, n.kind, n.inner.ObjectKind()); err != nil {
		return err
	}
	if err := writeSeparator(w); err != nil {
		return err
	}
	if err := n.inner.WriteBytes(w); err != nil {
		return err
	}

	if n.kind == Tree && len(n.entries) > 0 {
		if err := writeSeparator(w); err != nil {
			return err
		}

		sorted := make([]NodeEntry, len(n.entries))
		copy(sorted, n.entries)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

		for _, e := range sorted {
			if err := e.WriteBytes(w); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeHeaderBytes writes the three fixed-order header lines.
func writeHeaderBytes(w io.Writer, kind NodeKind, objectKind string) error {
	if err := writeKeyValueLine(w, keyVersion, valVersion); err != nil {
		return err
	}
	if err := writeKeyValueLine(w, keyNodeKind, kind.String()); err != nil {
		return err
	}
	return writeKeyValueLine(w, keyObjectKind, objectKind)
}

// NodeWithEntries is the read-side counterpart of nodeWithEntriesRef:
// a fully parsed node together with its direct-child entries,
// deserialized from the canonical wire form.
type NodeWithEntries[T Payload] struct {
	Kind    NodeKind
	Inner   T
	Entries []NodeEntry
}

// ReadNodeWithEntries reads one canonically-serialized node: the
// header, a blank line, the payload body via read, and — for a Tree —
// a further blank line and entry lines read until EOF. Passing a
// non-empty expectedObjectKind validates the header's object_kind
// field against it; pass "" to skip that check.
func ReadNodeWithEntries[T Payload](r *bufio.Reader, expectedObjectKind string, read PayloadReader[T]) (NodeWithEntries[T], error) {
	var zero NodeWithEntries[T]

	versionStr, err := readKeyValueLine(r, keyVersion)
	if err != nil {
		return zero, err
	}
	if versionStr != valVersion {
		return zero, errInvalidNodeVersion(versionStr)
	}

	kindStr, err := readKeyValueLine(r, keyNodeKind)
	if err != nil {
		return zero, err
	}
	kind, err := ParseNodeKind(kindStr)
	if err != nil {
		return zero, errParse(err)
	}

	objectKindStr, err := readKeyValueLine(r, keyObjectKind)
	if err != nil {
		return zero, err
	}
	if expectedObjectKind != "" && objectKindStr != expectedObjectKind {
		return zero, errParseCustom(fmt.Sprintf("expected object kind to be %q, got %q", expectedObjectKind, objectKindStr))
	}

	if err := readBlankLine(r); err != nil {
		return zero, err
	}

	inner, err := read(r)
	if err != nil {
		return zero, err
	}

	var entries []NodeEntry
	if kind == Tree {
		if err := readBlankLine(r); err != nil {
			return zero, err
		}
		entries, err = readNodeEntryLines(r)
		if err != nil {
			return zero, err
		}
	}

	return NodeWithEntries[T]{Kind: kind, Inner: inner, Entries: entries}, nil
}
