package objtree

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// nl is the canonical line terminator for the wire format.
const nl = "\n"

const (
	keyVersion    = "version"
	keyNodeKind   = "node_kind"
	keyObjectKind = "object_kind"
	valVersion    = "1"
)

// writeKeyValueLine writes "key=value\n" to w.
func writeKeyValueLine(w io.Writer, key, value string) error {
	if _, err := fmt.Fprintf(w, "%s=%s%s", key, value, nl); err != nil {
		return errIoWrite(err)
	}
	return nil
}

// writeSeparator writes a bare "\n" to w.
func writeSeparator(w io.Writer) error {
	if _, err := io.WriteString(w, nl); err != nil {
		return errIoWrite(err)
	}
	return nil
}

// writeEntryLine writes "<kind> <hash> <name>\n" to w.
func writeEntryLine(w io.Writer, e NodeEntry) error {
	if _, err := fmt.Fprintf(w, "%s %s %s%s", e.Kind, e.Hash, e.Name, nl); err != nil {
		return errIoWrite(err)
	}
	return nil
}

// readKeyValueLine reads one line, trims its trailing newline, splits
// on the first '=', and confirms the key matches.
func readKeyValueLine(r *bufio.Reader, key string) (string, error) {
	line, err := readLine(r)
	if err != nil {
		return "", err
	}
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", errParseLineKeyValueFormat(line)
	}
	lineKey, lineValue := line[:idx], line[idx+1:]
	if lineKey != key {
		return "", errParseLineExpectedKey(key, lineKey)
	}
	return lineValue, nil
}

// readBlankLine reads one line and fails unless it is empty once the
// trailing newline is trimmed.
func readBlankLine(r *bufio.Reader) error {
	line, err := readLine(r)
	if err != nil {
		return err
	}
	if line != "" {
		return errParseLineBlank(line)
	}
	return nil
}

// readNodeEntryLines reads entry lines until EOF or the first empty
// line, whichever comes first, parsing each as
// "<kind> <hash> <name>" via parseEntryLine.
func readNodeEntryLines(r *bufio.Reader) ([]NodeEntry, error) {
	var entries []NodeEntry
	for {
		line, err := r.ReadString('\n')
		if err == io.EOF {
			if line == "" {
				break
			}
		} else if err != nil {
			return nil, errIoRead(err)
		}
		line = strings.TrimSuffix(line, nl)
		if line == "" {
			break
		}

		entry, perr := parseEntryLine(line)
		if perr != nil {
			return nil, perr
		}
		entries = append(entries, entry)

		if err == io.EOF {
			break
		}
	}
	return entries, nil
}

// rsplitN splits s from the right on sep into at most n pieces. The
// first element is the rightmost piece; the last element is whatever
// remains once the limit is reached, unsplit even if it still
// contains sep.
func rsplitN(s string, sep byte, n int) []string {
	parts := make([]string, 0, n)
	for len(parts) < n-1 {
		idx := strings.LastIndexByte(s, sep)
		if idx < 0 {
			break
		}
		parts = append(parts, s[idx+1:])
		s = s[:idx]
	}
	return append(parts, s)
}

// parseEntryLine parses "<kind> <hash> <name>", splitting from the
// right at most twice: kind, hash, and name are taken from the
// resulting pieces back to front, so a name with no embedded spaces
// (invariant 6) parses cleanly and a malformed line with too few
// fields fails as a missing-field error rather than misattributing a
// field.
func parseEntryLine(line string) (NodeEntry, error) {
	parts := rsplitN(line, ' ', 3)

	i := len(parts) - 1
	if i < 0 {
		return NodeEntry{}, errParseCustom("missing kind field in entry line")
	}
	kindStr := parts[i]
	i--

	if i < 0 {
		return NodeEntry{}, errParseCustom("missing hash field in entry line")
	}
	hashStr := parts[i]
	i--

	if i < 0 {
		return NodeEntry{}, errParseCustom("missing name field in entry line")
	}
	name := parts[i]

	kind, err := ParseNodeKind(kindStr)
	if err != nil {
		return NodeEntry{}, errParse(err)
	}
	h, err := hash.FromString(hashStr)
	if err != nil {
		return NodeEntry{}, errParse(err)
	}

	return NodeEntry{Kind: kind, Hash: h, Name: name}, nil
}

// readLine reads one line from r and trims its trailing newline.
// Reaching EOF is not itself an error — consistent with the
// underlying reader's read-at-EOF contract, it yields an empty line,
// which readKeyValueLine and readBlankLine then interpret on their
// own terms (a format error for the former, success for the latter).
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errIoRead(err)
	}
	return strings.TrimSuffix(line, nl), nil
}
