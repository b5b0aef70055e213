package objtree

import (
	"errors"
	"fmt"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// ErrorKind enumerates the taxonomy of failures a GraphError can wrap.
// The codec, builder and hashing engine report their own failures as
// a *GraphError with one of these kinds — the engine never panics on
// malformed input. Two exceptions: ParseNodeKind returns an error
// wrapping ErrParse, and an error from a payload's own WriteBytes or
// PayloadReader is returned as it is, not wrapped in a GraphError.
type ErrorKind int

const (
	// ErrKindInvalidNodeVersion: a version= line was present but not "1".
	ErrKindInvalidNodeVersion ErrorKind = iota
	// ErrKindIoRead: the underlying reader failed.
	ErrKindIoRead
	// ErrKindIoWrite: the underlying writer failed.
	ErrKindIoWrite
	// ErrKindMissingRootNode: tree construction ended with no root.
	ErrKindMissingRootNode
	// ErrKindMultipleRootNode: more than one detached root was found.
	ErrKindMultipleRootNode
	// ErrKindParse: wraps a lower-level parse failure (kind, hash, ...).
	ErrKindParse
	// ErrKindParseCustom: a structural violation with a descriptive message.
	ErrKindParseCustom
	// ErrKindParseLineBlank: expected a blank line, got content.
	ErrKindParseLineBlank
	// ErrKindParseLineExpectedKey: a key/value line's key did not match.
	ErrKindParseLineExpectedKey
	// ErrKindParseLineKeyValueFormat: a line had no '='.
	ErrKindParseLineKeyValueFormat
	// ErrKindUnhashedChild: the post-order hashing invariant was violated.
	ErrKindUnhashedChild
	// ErrKindUnhashedNode: the emission pass found a node with no computed hash.
	ErrKindUnhashedNode
	// ErrKindVerify: a recomputed hash disagreed with the stored hash.
	ErrKindVerify
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindInvalidNodeVersion:
		return "InvalidNodeVersion"
	case ErrKindIoRead:
		return "IoRead"
	case ErrKindIoWrite:
		return "IoWrite"
	case ErrKindMissingRootNode:
		return "MissingRootNode"
	case ErrKindMultipleRootNode:
		return "MultipleRootNode"
	case ErrKindParse:
		return "Parse"
	case ErrKindParseCustom:
		return "ParseCustom"
	case ErrKindParseLineBlank:
		return "ParseLineBlank"
	case ErrKindParseLineExpectedKey:
		return "ParseLineExpectedKey"
	case ErrKindParseLineKeyValueFormat:
		return "ParseLineKeyValueFormat"
	case ErrKindUnhashedChild:
		return "UnhashedChild"
	case ErrKindUnhashedNode:
		return "UnhashedNode"
	case ErrKindVerify:
		return "Verify"
	default:
		return "Unknown"
	}
}

// GraphError is the error type of this package's own failures (see
// ErrorKind for the exceptions). Kind identifies the taxonomy row (spec §7); the
// wrapped error, when present, carries the underlying cause.
type GraphError struct {
	Kind ErrorKind
	msg  string
	err  error
}

func (e *GraphError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.err)
	}
	return e.msg
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *GraphError) Unwrap() error {
	return e.err
}

// Is reports whether target is a *GraphError with the same Kind,
// allowing callers to write
// errors.Is(err, &objtree.GraphError{Kind: objtree.ErrKindVerify}).
func (e *GraphError) Is(target error) bool {
	var other *GraphError
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func newErr(kind ErrorKind, msg string) *GraphError {
	return &GraphError{Kind: kind, msg: msg}
}

func wrapErr(kind ErrorKind, msg string, err error) *GraphError {
	return &GraphError{Kind: kind, msg: msg, err: err}
}

// ErrParse is a sentinel used by ParseNodeKind and hash parsing;
// wrapped into a *GraphError of kind ErrKindParse by callers.
var ErrParse = errors.New("objtree: parse error")

func errInvalidNodeVersion(got string) error {
	return newErr(ErrKindInvalidNodeVersion, fmt.Sprintf("invalid node version when parsing from bytes: %s", got))
}

func errIoRead(err error) error {
	return wrapErr(ErrKindIoRead, "error reading node representation from bytes", err)
}

func errIoWrite(err error) error {
	return wrapErr(ErrKindIoWrite, "error writing node representation as bytes", err)
}

func errMissingRootNode() error {
	return newErr(ErrKindMissingRootNode, "root node not set after traversing tree")
}

func errMultipleRootNode() error {
	return newErr(ErrKindMultipleRootNode, "root node already set, cannot have multiple roots in tree")
}

func errParse(err error) error {
	return wrapErr(ErrKindParse, "error parsing node from bytes", err)
}

func errParseCustom(msg string) error {
	return newErr(ErrKindParseCustom, fmt.Sprintf("error parsing node from bytes: %s", msg))
}

func errParseLineBlank(got string) error {
	return newErr(ErrKindParseLineBlank, fmt.Sprintf("parsing line was expected to be blank, but got %q", got))
}

func errParseLineExpectedKey(expected, got string) error {
	return newErr(ErrKindParseLineExpectedKey, fmt.Sprintf("parsing key/value line error, expected key %q, but got %q", expected, got))
}

func errParseLineKeyValueFormat(raw string) error {
	return newErr(ErrKindParseLineKeyValueFormat, fmt.Sprintf("could not parse line as 'key=value': %q", raw))
}

func errUnhashedChild(parentName, childName string) error {
	return newErr(ErrKindUnhashedChild, fmt.Sprintf("unhashed child node for %q with name: %s", parentName, childName))
}

func errUnhashedNode(name string) error {
	return newErr(ErrKindUnhashedNode, fmt.Sprintf("unhashed node with name: %s", name))
}

func errVerify(expected, computed hash.Hash) error {
	return newErr(ErrKindVerify, fmt.Sprintf("failed to verify hash; expected=%s, computed=%s", expected, computed))
}
