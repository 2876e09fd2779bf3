// File: internal/service/accounts.go
package service

import (
	"context"
	"errors"
	"fmt"

	"events-api/internal/books"
	"events-api/internal/database"
	"events-api/internal/model"
	"events-api/internal/store"

	"github.com/rs/zerolog"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrUserExists         = errors.New("user already exists")
	ErrRemoteUserExists   = fmt.Errorf("user already exists in remote service: %w", ErrUserExists)
)

// 測試替換點
var (
	userExists        = store.UserExists
	getUserByUsername = store.GetUserByUsername
	getOrCreateUser   = store.GetOrCreateUser
	createUser        = store.CreateUser
	updateUser        = store.UpdateUser
	setUserPassword   = store.SetUserPassword
	withTx            = database.WithTx
)

// NewUser 建立帳號所需資料；Password 為明文
type NewUser struct {
	Username  string
	Password  string
	FirstName *string
	LastName  *string
	Email     *string
	IsAdmin   bool
}

// Accounts 處理登入、註冊與 books 服務聯合登入
type Accounts struct {
	db     database.DB
	books  books.Client
	tokens *TokenManager
	logger zerolog.Logger
}

func NewAccounts(db database.DB, bc books.Client, tokens *TokenManager, logger zerolog.Logger) *Accounts {
	return &Accounts{db: db, books: bc, tokens: tokens, logger: logger}
}

func (a *Accounts) Tokens() *TokenManager {
	return a.tokens
}

// CheckUsername 本地或 books 服務已有同名帳號時回傳錯誤
func (a *Accounts) CheckUsername(ctx context.Context, username string) error {
	local, err := userExists(ctx, a.db, username)
	if err != nil {
		return err
	}
	if local {
		return ErrUserExists
	}
	remote, err := a.books.UserExists(ctx, username)
	if err != nil {
		a.logger.Warn().Err(err).Str("username", username).Msg("books existence check failed")
		return nil
	}
	if remote {
		return ErrRemoteUserExists
	}
	return nil
}

// Create 建立本地帳號，名稱不可與本地或 books 服務重複
func (a *Accounts) Create(ctx context.Context, in NewUser) (*model.User, error) {
	if err := a.CheckUsername(ctx, in.Username); err != nil {
		return nil, err
	}

	u := &model.User{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		IsAdmin:   in.IsAdmin,
	}
	if in.Password != "" {
		hash, err := HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = &hash
	}

	created, err := createUser(ctx, a.db, u)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, ErrUserExists
	}
	return created, err
}

// Login 先嘗試 books 服務聯合登入，失敗再比對本地密碼；成功回傳使用者與存取令牌
func (a *Accounts) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	local, err := userExists(ctx, a.db, username)
	if err != nil {
		return nil, "", err
	}
	remote := false
	if !local {
		if remote, err = a.books.UserExists(ctx, username); err != nil {
			a.logger.Warn().Err(err).Str("username", username).Msg("books existence check failed")
		}
		if !remote {
			return nil, "", ErrUserNotFound
		}
	}

	user, err := a.federate(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		user, _, err = getOrCreateUser(ctx, a.db, username)
		if err != nil {
			return nil, "", err
		}
		if !user.HasPassword() || ComparePassword(*user.PasswordHash, password) != nil {
			return nil, "", ErrInvalidCredentials
		}
	}

	token, _, err := a.tokens.Issue(*user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// federate books 服務拒絕時回傳 nil 使用者；接受時同步個人資料並寫入（僅首次）密碼
func (a *Accounts) federate(ctx context.Context, username, password string) (*model.User, error) {
	profile, err := a.books.Federate(ctx, username, password)
	if errors.Is(err, books.ErrRejected) {
		return nil, nil
	}
	if err != nil {
		a.logger.Warn().Err(err).Str("username", username).Msg("federated login failed")
		return nil, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	var user *model.User
	err = withTx(ctx, a.db, func(q database.Querier) error {
		u, _, err := getOrCreateUser(ctx, q, username)
		if err != nil {
			return err
		}
		u.FirstName = optional(profile.FirstName)
		u.LastName = optional(profile.LastName)
		u.Email = optional(profile.Email)
		u.IsAdmin = profile.IsAdmin
		if err := updateUser(ctx, q, u); err != nil {
			return err
		}
		if !u.HasPassword() {
			if err := setUserPassword(ctx, q, u.ID, hash); err != nil && !errors.Is(err, store.ErrPasswordAlreadySet) {
				return err
			}
			u.PasswordHash = &hash
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sync federated user: %w", err)
	}
	return user, nil
}

// SetPassword 密碼只能設定一次
func (a *Accounts) SetPassword(ctx context.Context, userID int, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return setUserPassword(ctx, a.db, userID, hash)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
