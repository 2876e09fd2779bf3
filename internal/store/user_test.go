package store

import (
	"context"
	"errors"
	"testing"

	"events-api/internal/database"
	"events-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func userValues(u *model.User) []any {
	return []any{u.ID, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.IsAdmin}
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	sample := &model.User{
		ID:           7,
		Username:     "alice",
		PasswordHash: strPtr("hash"),
		FirstName:    strPtr("Alice"),
		Email:        strPtr("alice@example.com"),
		IsAdmin:      true,
	}

	t.Run("GetUserByID", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "WHERE id = $1")
			require.Equal(t, []any{7}, args)
			return &fakeRow{values: userValues(sample)}
		}}
		u, err := GetUserByID(ctx, db, 7)
		require.NoError(t, err)
		require.Equal(t, sample, u)
	})

	t.Run("GetUserByUsername not found", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{scanErr: pgx.ErrNoRows}
		}}
		_, err := GetUserByUsername(ctx, db, "ghost")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UserExists", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{values: []any{true}}
		}}
		ok, err := UserExists(ctx, db, "alice")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("CreateUser", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			require.Len(t, args, 6)
			require.Equal(t, "bob", args[0])
			return &fakeRow{values: []any{11}}
		}}
		u, err := CreateUser(ctx, db, &model.User{Username: "bob"})
		require.NoError(t, err)
		require.Equal(t, 11, u.ID)
	})

	t.Run("CreateUser duplicate", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{scanErr: &pgconn.PgError{Code: "23505"}}
		}}
		_, err := CreateUser(ctx, db, &model.User{Username: "bob"})
		require.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("GetOrCreateUser", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			require.Contains(t, sql, "ON CONFLICT (username) DO NOTHING")
			return &fakeRow{values: append(userValues(&model.User{ID: 3, Username: "carol"}), true)}
		}}
		u, created, err := GetOrCreateUser(ctx, db, "carol")
		require.NoError(t, err)
		require.True(t, created)
		require.Equal(t, 3, u.ID)
		require.Nil(t, u.PasswordHash)
	})

	t.Run("GetOrCreateUser concurrent insert", func(t *testing.T) {
		calls := 0
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			calls++
			if calls == 1 {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			}
			require.NotContains(t, sql, "INSERT")
			require.Equal(t, []any{"carol"}, args)
			return &fakeRow{values: userValues(&model.User{ID: 4, Username: "carol"})}
		}}
		u, created, err := GetOrCreateUser(ctx, db, "carol")
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, 4, u.ID)
		require.Equal(t, 2, calls)

		calls = 0
		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
			calls++
			return &fakeRow{scanErr: pgx.ErrNoRows}
		}
		_, _, err = GetOrCreateUser(ctx, db, "carol")
		require.ErrorIs(t, err, ErrNotFound)
		require.Equal(t, 2, calls)
	})

	t.Run("UpdateUser", func(t *testing.T) {
		db := &database.FakeDB{ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return tag(1), nil
		}}
		require.NoError(t, UpdateUser(ctx, db, sample))

		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) { return tag(0), nil }
		require.ErrorIs(t, UpdateUser(ctx, db, sample), ErrNotFound)

		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, &pgconn.PgError{Code: "23505"}
		}
		require.ErrorIs(t, UpdateUser(ctx, db, sample), ErrDuplicate)
	})

	t.Run("SetUserPassword is write once", func(t *testing.T) {
		db := &database.FakeDB{ExecFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
			require.Contains(t, sql, "password_hash IS NULL")
			return tag(1), nil
		}}
		require.NoError(t, SetUserPassword(ctx, db, 7, "h"))

		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) { return tag(0), nil }
		require.ErrorIs(t, SetUserPassword(ctx, db, 7, "h"), ErrPasswordAlreadySet)
	})

	t.Run("DeleteUser", func(t *testing.T) {
		db := &database.FakeDB{ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return tag(1), nil
		}}
		require.NoError(t, DeleteUser(ctx, db, 7))

		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) { return tag(0), nil }
		require.ErrorIs(t, DeleteUser(ctx, db, 7), ErrNotFound)

		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("down")
		}
		require.Error(t, DeleteUser(ctx, db, 7))
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	admin := true
	f := UserFilter{Username: "al", IsAdmin: &admin, OrderBy: "username", Order: "desc"}

	var gotSQL string
	var gotArgs []any
	db := &database.FakeDB{QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
		gotSQL, gotArgs = sql, args
		return &fakeRows{data: [][]any{
			userValues(&model.User{ID: 1, Username: "alice"}),
			userValues(&model.User{ID: 2, Username: "alan"}),
		}}, nil
	}}

	list, err := ListUsers(ctx, db, f, 5, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Contains(t, gotSQL, "WHERE username ILIKE '%' || $1 || '%' AND is_admin = $2")
	require.Contains(t, gotSQL, "ORDER BY username DESC, id LIMIT $3 OFFSET $4")
	require.Equal(t, []any{"al", true, 5, 10}, gotArgs)

	t.Run("unknown order falls back to id", func(t *testing.T) {
		require.Equal(t, " ORDER BY id ASC, id", UserFilter{OrderBy: "password_hash"}.orderBy())
		require.False(t, ValidUserOrder("password_hash"))
		require.True(t, ValidUserOrder("last_name"))
	})

	t.Run("scan error", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return &fakeRows{data: [][]any{{1}}, scanErr: errors.New("bad")}, nil
		}}
		_, err := ListUsers(ctx, db, UserFilter{}, 5, 0)
		require.Error(t, err)
	})

	t.Run("count shares predicates", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Equal(t, "SELECT COUNT(*) FROM users WHERE username ILIKE '%' || $1 || '%' AND is_admin = $2", sql)
			require.Equal(t, []any{"al", true}, args)
			return &fakeRow{values: []any{2}}
		}}
		n, err := CountUsers(ctx, db, f)
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})
}
