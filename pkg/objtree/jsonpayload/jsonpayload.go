// Package jsonpayload supplies Payload implementations backed by
// RFC 8785 canonical JSON, so that any Go value with a stable JSON
// encoding can become a tree node without writing a bespoke wire
// format for it.
package jsonpayload

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gowebpki/jcs"

	"github.com/Mindburn-Labs/objgraph/pkg/objtree"
)

// JSON is a Payload whose body is the JCS canonicalization of
// value's JSON encoding, written as a single line. JCS escapes every
// control character (including newline) inside string values, so the
// canonicalized document itself never contains a raw '\n' and can be
// read back with a single bufio.ReadLine-style read.
type JSON[V any] struct {
	name       string
	objectKind string
	Value      V
}

// New wraps value as a named, kind-tagged JSON payload.
func New[V any](name, objectKind string, value V) JSON[V] {
	return JSON[V]{name: name, objectKind: objectKind, Value: value}
}

func (j JSON[V]) Name() string       { return j.name }
func (j JSON[V]) ObjectKind() string { return j.objectKind }

func (j JSON[V]) WriteBytes(w io.Writer) error {
	raw, err := json.Marshal(j.Value)
	if err != nil {
		return fmt.Errorf("jsonpayload: marshal: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return fmt.Errorf("jsonpayload: canonicalize: %w", err)
	}
	if bytes.ContainsRune(canonical, '\n') {
		return fmt.Errorf("jsonpayload: canonical form unexpectedly contains a newline")
	}
	_, err = fmt.Fprintf(w, "%s\n", canonical)
	return err
}

// Reader builds a PayloadReader for JSON[V], reconstructing name and
// objectKind (neither of which travels in the payload body — name
// comes from the parent's entry, objectKind from the node header) from
// the caller, who already knows them from the surrounding read.
func Reader[V any](name, objectKind string) objtree.PayloadReader[JSON[V]] {
	return func(r *bufio.Reader) (JSON[V], error) {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return JSON[V]{}, fmt.Errorf("jsonpayload: read: %w", err)
		}
		line = trimTrailingNewline(line)

		var value V
		if err := json.Unmarshal([]byte(line), &value); err != nil {
			return JSON[V]{}, fmt.Errorf("jsonpayload: unmarshal: %w", err)
		}
		return JSON[V]{name: name, objectKind: objectKind, Value: value}, nil
	}
}

func trimTrailingNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}
