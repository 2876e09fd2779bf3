// File: internal/model/user.go
package model

type User struct {
	ID           int     `db:"id" json:"id"`
	Username     string  `db:"username" json:"username"`
	PasswordHash *string `db:"password_hash" json:"-"`
	FirstName    *string `db:"first_name" json:"first_name"`
	LastName     *string `db:"last_name" json:"last_name"`
	Email        *string `db:"email" json:"email"`
	IsAdmin      bool    `db:"is_admin" json:"is_admin"`
}

// HasPassword 密碼只能設定一次，已設定者不可再覆寫
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
