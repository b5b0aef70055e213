package contentstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// PostgresStore implements Store with Postgres persistence.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an already-opened *sql.DB (driver "postgres").
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgresStore opens and pings a new Postgres connection, then
// initializes its schema.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("contentstore: open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("contentstore: ping postgres: %w", err)
	}

	s := NewPostgresStore(db)
	if err := s.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

const pgContentStoreSchema = `
CREATE TABLE IF NOT EXISTS objtree_nodes (
	hash TEXT PRIMARY KEY,
	data BYTEA NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT now()
);
`

// Init creates the backing table if it does not already exist.
func (s *PostgresStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, pgContentStoreSchema)
	return err
}

func (s *PostgresStore) Put(ctx context.Context, h hash.Hash, data []byte) error {
	query := `
		INSERT INTO objtree_nodes (hash, data)
		VALUES ($1, $2)
		ON CONFLICT (hash) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, h.String(), data)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, h hash.Hash) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM objtree_nodes WHERE hash = $1", h.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *PostgresStore) Has(ctx context.Context, h hash.Hash) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM objtree_nodes WHERE hash = $1)", h.String()).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
