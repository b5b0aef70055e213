package signing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

func TestHMACSignAndVerifyRoundTrip(t *testing.T) {
	secret := []byte("test-signing-secret")
	signer := NewHMACSigner("ci-pipeline", secret)

	root := hash.New([]byte("tree root payload"))

	token, err := signer.Sign(root, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	signerID, err := Verify(token, secret, map[string]bool{"HS256": true}, root)
	require.NoError(t, err)
	require.Equal(t, "ci-pipeline", signerID)
}

func TestVerifyRejectsHashMismatch(t *testing.T) {
	secret := []byte("test-signing-secret")
	signer := NewHMACSigner("ci-pipeline", secret)

	root := hash.New([]byte("tree root payload"))
	other := hash.New([]byte("a different tree"))

	token, err := signer.Sign(root, time.Hour)
	require.NoError(t, err)

	_, err = Verify(token, secret, map[string]bool{"HS256": true}, other)
	require.Error(t, err)
}

func TestVerifyRejectsDisallowedAlgorithm(t *testing.T) {
	secret := []byte("test-signing-secret")
	signer := NewHMACSigner("ci-pipeline", secret)

	root := hash.New([]byte("tree root payload"))
	token, err := signer.Sign(root, time.Hour)
	require.NoError(t, err)

	_, err = Verify(token, secret, map[string]bool{"RS256": true}, root)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-signing-secret")
	signer := NewHMACSigner("ci-pipeline", secret)

	root := hash.New([]byte("tree root payload"))
	token, err := signer.Sign(root, time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = Verify(token, secret, map[string]bool{"HS256": true}, root)
	require.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer := NewHMACSigner("ci-pipeline", []byte("correct-secret"))
	root := hash.New([]byte("tree root payload"))

	token, err := signer.Sign(root, time.Hour)
	require.NoError(t, err)

	_, err = Verify(token, []byte("wrong-secret"), map[string]bool{"HS256": true}, root)
	require.Error(t, err)
}
