package jsonpayload

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Mindburn-Labs/objgraph/pkg/objtree"
)

// SchemaValidated wraps JSON[V] with a JSON Schema check: a value
// that doesn't conform is rejected at construction time (and again at
// read time), rather than being allowed into the tree only to fail
// some later, unrelated validation pass.
type SchemaValidated[V any] struct {
	JSON[V]
}

// NewSchemaValidated validates value against schema, then wraps it as
// a JSON payload. schema is typically loaded once via
// jsonschema.Compile and shared across every node of the same
// objectKind — see config.PolicySet.SchemaIDs for how a caller maps
// object kinds to schema identifiers.
func NewSchemaValidated[V any](name, objectKind string, value V, schema *jsonschema.Schema) (SchemaValidated[V], error) {
	if err := validateAgainstSchema(value, schema); err != nil {
		return SchemaValidated[V]{}, err
	}
	return SchemaValidated[V]{JSON: New(name, objectKind, value)}, nil
}

func validateAgainstSchema[V any](value V, schema *jsonschema.Schema) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("jsonpayload: marshal for validation: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("jsonpayload: unmarshal for validation: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("jsonpayload: schema validation failed: %w", err)
	}
	return nil
}

// SchemaReader builds a PayloadReader for SchemaValidated[V] that
// re-validates every value against schema as it is read back, so a
// tampered or hand-edited file fails fast rather than silently
// admitting data the schema no longer permits.
func SchemaReader[V any](name, objectKind string, schema *jsonschema.Schema) objtree.PayloadReader[SchemaValidated[V]] {
	inner := Reader[V](name, objectKind)
	return func(r *bufio.Reader) (SchemaValidated[V], error) {
		base, err := inner(r)
		if err != nil {
			return SchemaValidated[V]{}, err
		}
		if err := validateAgainstSchema(base.Value, schema); err != nil {
			return SchemaValidated[V]{}, err
		}
		return SchemaValidated[V]{JSON: base}, nil
	}
}

// CompileSchema compiles a JSON Schema document (draft 2020-12 or
// earlier, auto-detected by $schema) identified by id, for use with
// NewSchemaValidated and SchemaReader.
func CompileSchema(id string, schemaJSON []byte) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(id, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("jsonpayload: add schema resource: %w", err)
	}
	return c.Compile(id)
}
