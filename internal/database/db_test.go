package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeRows struct{}

func (fakeRows) Close()                                       {}
func (fakeRows) Err() error                                   { return nil }
func (fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (fakeRows) Next() bool                                   { return false }
func (fakeRows) Scan(dest ...any) error                       { return nil }
func (fakeRows) Values() ([]any, error)                       { return nil, nil }
func (fakeRows) RawValues() [][]byte                          { return nil }
func (fakeRows) Conn() *pgx.Conn                              { return nil }

func TestFakeDB(t *testing.T) {
	db := &FakeDB{}
	require.Panics(t, func() { db.Exec(context.Background(), "") })
	require.Panics(t, func() { db.Query(context.Background(), "") })
	require.Panics(t, func() { db.QueryRow(context.Background(), "") })
	require.Panics(t, func() { db.Begin(context.Background()) })
	require.Panics(t, func() { db.Ping(context.Background()) })
	db.Close()

	var calls []string
	db.ExecFn = func(ctx context.Context, s string, args ...any) (pgconn.CommandTag, error) {
		calls = append(calls, "exec")
		return pgconn.CommandTag{}, errors.New("e")
	}
	db.QueryFn = func(ctx context.Context, s string, args ...any) (pgx.Rows, error) {
		calls = append(calls, "query")
		return fakeRows{}, nil
	}
	db.QueryRowFn = func(ctx context.Context, s string, args ...any) pgx.Row {
		calls = append(calls, "row")
		return pgx.Row(fakeRows{})
	}
	db.BeginFn = func(ctx context.Context) (pgx.Tx, error) {
		calls = append(calls, "begin")
		return &FakeTx{}, nil
	}
	db.PingFn = func(ctx context.Context) error { calls = append(calls, "ping"); return nil }
	db.CloseFn = func() { calls = append(calls, "close") }

	_, err := db.Exec(context.Background(), "sql")
	require.Error(t, err)
	_, err = db.Query(context.Background(), "sql")
	require.NoError(t, err)
	_ = db.QueryRow(context.Background(), "sql")
	_, err = db.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, db.Ping(context.Background()))
	db.Close()
	require.Equal(t, []string{"exec", "query", "row", "begin", "ping", "close"}, calls)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		tx := &FakeTx{}
		db := &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
		var got Querier
		err := WithTx(ctx, db, func(q Querier) error {
			got = q
			return nil
		})
		require.NoError(t, err)
		require.Same(t, tx, got)
		require.True(t, tx.Committed)
		require.False(t, tx.RolledBack)
	})

	t.Run("rollback on error", func(t *testing.T) {
		tx := &FakeTx{}
		db := &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
		boom := errors.New("boom")
		err := WithTx(ctx, db, func(Querier) error { return boom })
		require.ErrorIs(t, err, boom)
		require.False(t, tx.Committed)
		require.True(t, tx.RolledBack)
	})

	t.Run("begin fails", func(t *testing.T) {
		db := &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return nil, errors.New("down") }}
		err := WithTx(ctx, db, func(Querier) error { t.Fatal("fn must not run"); return nil })
		require.ErrorContains(t, err, "begin tx")
	})

	t.Run("commit fails", func(t *testing.T) {
		tx := &FakeTx{CommitFn: func(context.Context) error { return errors.New("conflict") }}
		db := &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
		err := WithTx(ctx, db, func(Querier) error { return nil })
		require.ErrorContains(t, err, "commit tx")
	})
}
