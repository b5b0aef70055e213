package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/Mindburn-Labs/objgraph/pkg/config"
	"github.com/Mindburn-Labs/objgraph/pkg/hash"
	"github.com/Mindburn-Labs/objgraph/pkg/signing"
)

func runSignCmd(args []string, stdout, stderr io.Writer, cfg *config.Config) int {
	cmd := flag.NewFlagSet("sign", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var rootHashStr, signerID string
	var ttl time.Duration
	cmd.StringVar(&rootHashStr, "root", "", "Root hash to sign (required)")
	cmd.StringVar(&signerID, "signer", "objtreectl", "Signer identity recorded in the token")
	cmd.DurationVar(&ttl, "ttl", time.Hour, "Token time-to-live (0 for no expiry)")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if rootHashStr == "" {
		fmt.Fprintln(stderr, "Error: --root is required")
		return 2
	}

	secret := cfg.JWTSigningKey
	if secret == "" {
		fmt.Fprintln(stderr, "Error: OBJGRAPH_JWT_SIGNING_KEY is not set")
		return 2
	}

	root, err := hash.FromString(rootHashStr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid root hash: %v\n", err)
		return 2
	}

	signer := signing.NewHMACSigner(signerID, []byte(secret))
	token, err := signer.Sign(root, ttl)
	if err != nil {
		fmt.Fprintf(stderr, "Error signing: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, token)
	return 0
}

func runVerifySignCmd(args []string, stdout, stderr io.Writer, cfg *config.Config) int {
	cmd := flag.NewFlagSet("verify-sign", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var rootHashStr, token string
	cmd.StringVar(&rootHashStr, "root", "", "Expected root hash (required)")
	cmd.StringVar(&token, "token", "", "Signed token (required)")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if rootHashStr == "" || token == "" {
		fmt.Fprintln(stderr, "Error: --root and --token are required")
		return 2
	}

	secret := cfg.JWTSigningKey
	if secret == "" {
		fmt.Fprintln(stderr, "Error: OBJGRAPH_JWT_SIGNING_KEY is not set")
		return 2
	}

	root, err := hash.FromString(rootHashStr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid root hash: %v\n", err)
		return 2
	}

	signerID, err := signing.Verify(token, []byte(secret), map[string]bool{"HS256": true}, root)
	if err != nil {
		fmt.Fprintf(stderr, "Verification failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "OK: signed by %s\n", signerID)
	return 0
}
