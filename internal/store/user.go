package store

import (
	"context"
	"errors"
	"fmt"

	"events-api/internal/database"
	"events-api/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, password_hash, first_name, last_name, email, is_admin`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.IsAdmin,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return u, nil
}

func GetUserByUsername(ctx context.Context, db database.Querier, username string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	))
	if err != nil {
		return nil, wrap("GetUserByUsername", err)
	}
	return u, nil
}

// UserExists 只檢查本地資料庫
func UserExists(ctx context.Context, db database.Querier, username string) (bool, error) {
	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`,
		username,
	).Scan(&exists); err != nil {
		return false, wrap("UserExists", err)
	}
	return exists, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, first_name, last_name, email, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		u.Username,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Email,
		u.IsAdmin,
	)
	if err := row.Scan(&u.ID); err != nil {
		return nil, wrap("CreateUser", err)
	}
	return u, nil
}

// GetOrCreateUser 依 username 取得使用者，不存在時建立一筆只有 username 的紀錄
func GetOrCreateUser(ctx context.Context, db database.Querier, username string) (*model.User, bool, error) {
	row := db.QueryRow(ctx,
		`WITH ins AS (
		     INSERT INTO users (username) VALUES ($1)
		     ON CONFLICT (username) DO NOTHING
		     RETURNING `+userColumns+`
		 )
		 SELECT `+userColumns+`, TRUE FROM ins
		 UNION ALL
		 SELECT `+userColumns+`, FALSE FROM users WHERE username = $1
		 LIMIT 1`,
		username,
	)
	u := &model.User{}
	var created bool
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.IsAdmin,
		&created,
	)
	// 並行插入時 DO NOTHING 後的 SELECT 看不到對方剛寫入的列，重查一次
	if errors.Is(err, pgx.ErrNoRows) {
		existing, err := GetUserByUsername(ctx, db, username)
		if err != nil {
			return nil, false, fmt.Errorf("GetOrCreateUser: %w", err)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, wrap("GetOrCreateUser", err)
	}
	return u, created, nil
}

// UpdateUser 更新除密碼以外的欄位
func UpdateUser(ctx context.Context, db database.Querier, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET username = $1, first_name = $2, last_name = $3, email = $4, is_admin = $5
		 WHERE id = $6`,
		u.Username,
		u.FirstName,
		u.LastName,
		u.Email,
		u.IsAdmin,
		u.ID,
	)
	if err != nil {
		return wrap("UpdateUser", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUser: %w", ErrNotFound)
	}
	return nil
}

// SetUserPassword 只在尚未設定密碼時寫入
func SetUserPassword(ctx context.Context, db database.Querier, userID int, hash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET password_hash = $1
		 WHERE id = $2 AND password_hash IS NULL`,
		hash,
		userID,
	)
	if err != nil {
		return wrap("SetUserPassword", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("SetUserPassword: %w", ErrPasswordAlreadySet)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.Querier, userID int) error {
	tag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return wrap("DeleteUser", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return nil
}

// UserFilter GET /user 的查詢條件
type UserFilter struct {
	Username string
	IsAdmin  *bool
	OrderBy  string
	Order    string
}

var userOrderColumns = map[string]string{
	"id":         "id",
	"username":   "username",
	"first_name": "first_name",
	"last_name":  "last_name",
}

// ValidUserOrder 檢查 order_by 是否在白名單內
func ValidUserOrder(orderBy string) bool {
	_, ok := userOrderColumns[orderBy]
	return ok
}

func (f UserFilter) where() *where {
	w := &where{}
	if f.Username != "" {
		w.add(`username ILIKE '%' || ` + w.arg(escapeLike(f.Username)) + ` || '%'`)
	}
	if f.IsAdmin != nil {
		w.add(`is_admin = ` + w.arg(*f.IsAdmin))
	}
	return w
}

func (f UserFilter) orderBy() string {
	col, ok := userOrderColumns[f.OrderBy]
	if !ok {
		col = "id"
	}
	return " ORDER BY " + col + " " + direction(f.Order) + ", id"
}

func ListUsers(ctx context.Context, db database.Querier, f UserFilter, limit, offset int) ([]model.User, error) {
	w := f.where()
	query := `SELECT ` + userColumns + ` FROM users` + w.String() + f.orderBy() +
		` LIMIT ` + w.arg(limit) + ` OFFSET ` + w.arg(offset)

	rows, err := db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, wrap("ListUsers", err)
	}
	defer rows.Close()

	var list []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap("ListUsers scan", err)
		}
		list = append(list, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListUsers rows", err)
	}
	return list, nil
}

func CountUsers(ctx context.Context, db database.Querier, f UserFilter) (int, error) {
	w := f.where()
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, wrap("CountUsers", err)
	}
	return n, nil
}
