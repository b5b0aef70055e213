package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "manifest.json")
	content := `{
		"name": "root", "kind": "tree", "object_kind": "tree", "value": "r",
		"children": [
			{"name": "a", "kind": "leaf", "object_kind": "leaf", "value": "alpha"},
			{"name": "b", "kind": "leaf", "object_kind": "leaf", "value": "beta"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildThenVerifyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeManifest(t, dir)
	storePath := filepath.Join(dir, "store.db")

	var buildOut, buildErr bytes.Buffer
	code := Run([]string{"objtreectl", "build", "--manifest", manifestPath, "--store", storePath}, &buildOut, &buildErr)
	require.Equal(t, 0, code, buildErr.String())

	root := strings.TrimSpace(buildOut.String())
	require.Len(t, root, 64)

	var verifyOut, verifyErr bytes.Buffer
	code = Run([]string{"objtreectl", "verify", "--store", storePath, "--root", root}, &verifyOut, &verifyErr)
	require.Equal(t, 0, code, verifyErr.String())
	require.Contains(t, verifyOut.String(), "OK: 3 nodes verified")
}

func TestVerifyFailsForUnknownRoot(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeManifest(t, dir)
	storePath := filepath.Join(dir, "store.db")

	var buildOut, buildErr bytes.Buffer
	code := Run([]string{"objtreectl", "build", "--manifest", manifestPath, "--store", storePath}, &buildOut, &buildErr)
	require.Equal(t, 0, code, buildErr.String())

	var verifyOut, verifyErr bytes.Buffer
	fakeRoot := strings.Repeat("00", 32)
	code = Run([]string{"objtreectl", "verify", "--store", storePath, "--root", fakeRoot}, &verifyOut, &verifyErr)
	require.Equal(t, 1, code)
}

func TestSignThenVerifySignRoundTrip(t *testing.T) {
	t.Setenv("OBJGRAPH_JWT_SIGNING_KEY", "test-secret")
	root := strings.Repeat("ab", 32)

	var signOut, signErr bytes.Buffer
	code := Run([]string{"objtreectl", "sign", "--root", root}, &signOut, &signErr)
	require.Equal(t, 0, code, signErr.String())
	token := strings.TrimSpace(signOut.String())
	require.NotEmpty(t, token)

	var vOut, vErr bytes.Buffer
	code = Run([]string{"objtreectl", "verify-sign", "--root", root, "--token", token}, &vOut, &vErr)
	require.Equal(t, 0, code, vErr.String())
	require.Contains(t, vOut.String(), "OK: signed by objtreectl")
}

func TestStorePutGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "store.db")

	in := bytes.NewBufferString("hello world")
	var putOut, putErr bytes.Buffer
	origStdin := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	go func() {
		_, _ = w.Write(in.Bytes())
		w.Close()
	}()
	code := Run([]string{"objtreectl", "store-put", "--store", storePath}, &putOut, &putErr)
	os.Stdin = origStdin
	require.Equal(t, 0, code, putErr.String())

	h := strings.TrimSpace(putOut.String())

	var getOut, getErr bytes.Buffer
	code = Run([]string{"objtreectl", "store-get", "--store", storePath, "--hash", h}, &getOut, &getErr)
	require.Equal(t, 0, code, getErr.String())
	require.Equal(t, "hello world", getOut.String())
}

func TestUnknownCommandReturnsUsageError(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"objtreectl", "bogus"}, &out, &errOut)
	require.Equal(t, 2, code)
	require.Contains(t, errOut.String(), "Unknown command")
}
