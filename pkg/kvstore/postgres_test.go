package kvstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewPostgresStore(mock, zap.NewNop()), mock
}

func TestPostgresStore_Get(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT attrs FROM "restaurants" WHERE key = $1`)).
		WithArgs("X").
		WillReturnRows(pgxmock.NewRows([]string{"attrs"}).
			AddRow([]byte(`{"id":"X","name":"Joe's Pizza","latitude":40.75}`)))

	item, err := store.Get(context.Background(), Table{Name: "restaurants"}, "X")
	require.NoError(t, err)
	assert.Equal(t, "Joe's Pizza", item["name"])
	assert.Equal(t, 40.75, item["latitude"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetNotFound(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT attrs FROM "users"`)).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := store.Get(context.Background(), Table{Name: "users"}, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetFailure(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT attrs FROM "users"`)).
		WithArgs("theUser").
		WillReturnError(errors.New("connection reset"))

	_, err := store.Get(context.Background(), Table{Name: "users"}, "theUser")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestPostgresStore_PutUpserts(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (key) DO UPDATE SET attrs = EXCLUDED.attrs`)).
		WithArgs("X", `{"id":"X","name":"Joe's Pizza"}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := store.Put(context.Background(), Table{Name: "restaurants"}, "X", Item{"id": "X", "name": "Joe's Pizza"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteNotFound(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reviews" WHERE key = $1`)).
		WithArgs("r1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := store.Delete(context.Background(), Table{Name: "reviews"}, "r1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresStore_QueryByIndex(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT attrs FROM "reviews" WHERE (attrs->>'username') = $1`)).
		WithArgs("theUser").
		WillReturnRows(pgxmock.NewRows([]string{"attrs"}).
			AddRow([]byte(`{"id":"r1","username":"theUser"}`)).
			AddRow([]byte(`{"id":"r2","username":"theUser"}`)))

	items, err := store.Query(context.Background(), reviewsTable, "username", "theUser")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "r2", items[1]["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_EnsureTableCreatesIndexes(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "reviews"`)).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX IF NOT EXISTS "reviews_username_idx" ON "reviews" ((attrs->>'username'))`)).
		WillReturnResult(pgxmock.NewResult("CREATE INDEX", 0))

	require.NoError(t, store.EnsureTable(context.Background(), reviewsTable))
	assert.NoError(t, mock.ExpectationsWereMet())
}
