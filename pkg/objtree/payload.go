package objtree

import (
	"bufio"
	"bytes"
	"io"
)

// Payload is the contract a node's inner value T must satisfy to
// participate in an object tree. The engine never inspects a
// payload's internals beyond these three operations.
type Payload interface {
	// Name returns this node's name, used in its parent's child
	// entry. It must be stable for the node's lifetime.
	Name() string
	// ObjectKind returns a short tag written into the node header
	// (e.g. "prop").
	ObjectKind() string
	// WriteBytes writes the canonical serialization of the payload's
	// own fields only — no header, no children.
	WriteBytes(w io.Writer) error
}

// PayloadReader reconstructs a Payload of type T from its canonical
// byte representation. Go has no associated-constructor equivalent of
// a trait's Self::read_bytes, so deserialization is parameterized by a
// caller-supplied factory instead.
type PayloadReader[T Payload] func(r *bufio.Reader) (T, error)

// ToBytes serializes a Payload's own fields to a standalone byte
// slice, for callers that want the payload body without any header or
// entry block.
func ToBytes(p Payload) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.WriteBytes(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
