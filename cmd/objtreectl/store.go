package main

import (
	"context"

	"github.com/Mindburn-Labs/objgraph/pkg/contentstore"
)

// openStore opens a content store for the CLI. "sqlite" is the only
// backend wired into the CLI itself — the library's Postgres, S3, and
// Redis-cached backends are for embedding callers, not this tool.
func openStore(ctx context.Context, path string) (contentstore.Store, error) {
	return contentstore.OpenSQLiteStore(ctx, path)
}
