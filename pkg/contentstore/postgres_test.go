package contentstore

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

func TestPostgresStorePutInsertsOnConflictDoNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresStore(db)
	h := hash.New([]byte("node payload"))

	mock.ExpectExec("INSERT INTO objtree_nodes").
		WithArgs(h.String(), []byte("bytes")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Put(context.Background(), h, []byte("bytes")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresStore(db)
	h := hash.New([]byte("missing"))

	mock.ExpectQuery("SELECT data FROM objtree_nodes").
		WithArgs(h.String()).
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	_, err = s.Get(context.Background(), h)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetReturnsStoredBytes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresStore(db)
	h := hash.New([]byte("node payload"))

	mock.ExpectQuery("SELECT data FROM objtree_nodes").
		WithArgs(h.String()).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte("bytes")))

	data, err := s.Get(context.Background(), h)
	require.NoError(t, err)
	require.Equal(t, []byte("bytes"), data)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreHas(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresStore(db)
	h := hash.New([]byte("node payload"))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(h.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := s.Has(context.Background(), h)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
