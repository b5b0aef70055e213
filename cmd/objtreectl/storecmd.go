package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Mindburn-Labs/objgraph/pkg/config"
	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

func runStorePutCmd(args []string, stdout, stderr io.Writer, cfg *config.Config) int {
	cmd := flag.NewFlagSet("store-put", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var storePath, file string
	cmd.StringVar(&storePath, "store", cfg.SQLiteStorePath, "SQLite content store path")
	cmd.StringVar(&file, "file", "", "File whose bytes to store (reads stdin if omitted)")

	if err := cmd.Parse(args); err != nil {
		return 2
	}

	var data []byte
	var err error
	if file != "" {
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}

	ctx := context.Background()
	store, err := openStore(ctx, storePath)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening store: %v\n", err)
		return 1
	}
	defer store.Close()

	h := hash.New(data)
	if err := store.Put(ctx, h, data); err != nil {
		fmt.Fprintf(stderr, "Error storing data: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, h.String())
	return 0
}

func runStoreGetCmd(args []string, stdout, stderr io.Writer, cfg *config.Config) int {
	cmd := flag.NewFlagSet("store-get", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var storePath, hashStr string
	cmd.StringVar(&storePath, "store", cfg.SQLiteStorePath, "SQLite content store path")
	cmd.StringVar(&hashStr, "hash", "", "Hash to fetch (required)")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if hashStr == "" {
		fmt.Fprintln(stderr, "Error: --hash is required")
		return 2
	}

	h, err := hash.FromString(hashStr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid hash: %v\n", err)
		return 2
	}

	ctx := context.Background()
	store, err := openStore(ctx, storePath)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening store: %v\n", err)
		return 1
	}
	defer store.Close()

	data, err := store.Get(ctx, h)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	_, _ = stdout.Write(data)
	return 0
}
