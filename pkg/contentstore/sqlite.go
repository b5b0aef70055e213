package contentstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// SQLiteStore implements Store with a local SQLite file or in-memory
// database, for CLI and single-process use where a Postgres server
// would be overkill.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if absent) the SQLite database at
// path, or an in-memory database if path is ":memory:", and
// initializes its schema.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("contentstore: open sqlite: %w", err)
	}
	// modernc.org/sqlite serializes writers internally; a single
	// connection avoids "database is locked" under concurrent writers.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

const sqliteContentStoreSchema = `
CREATE TABLE IF NOT EXISTS objtree_nodes (
	hash TEXT PRIMARY KEY,
	data BLOB NOT NULL
);
`

func (s *SQLiteStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteContentStoreSchema)
	return err
}

func (s *SQLiteStore) Put(ctx context.Context, h hash.Hash, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO objtree_nodes (hash, data) VALUES (?, ?) ON CONFLICT (hash) DO NOTHING",
		h.String(), data)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, h hash.Hash) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM objtree_nodes WHERE hash = ?", h.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *SQLiteStore) Has(ctx context.Context, h hash.Hash) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM objtree_nodes WHERE hash = ?)", h.String()).Scan(&exists)
	return exists, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
