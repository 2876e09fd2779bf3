package books

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrRejected books 服務拒絕聯合登入
var ErrRejected = errors.New("books service rejected credentials")

// Client 與外部 books 服務溝通的介面
type Client interface {
	// UserExists 服務無法連線時視為不存在
	UserExists(ctx context.Context, username string) (bool, error)
	// UserBooks 使用者不存在時回傳空清單
	UserBooks(ctx context.Context, username string) ([]Book, error)
	// BookURL 產生書籍頁面的絕對網址，作為 artifact url
	BookURL(bookID int) string
	// Federate 以帳密向 books 服務登入，成功時回傳對方提供的個人資料
	Federate(ctx context.Context, username, password string) (*Profile, error)
}

type Book struct {
	ID    int    `json:"id"`
	Title string `json:"title,omitempty"`
}

// Profile 聯合登入成功後同步到本地的使用者資料
type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
}

type profileClaims struct {
	Profile
	jwt.RegisteredClaims
}

// remoteUser 快取的查詢結果，Exists=false 也會快取
type remoteUser struct {
	Exists bool   `json:"exists"`
	Books  []Book `json:"books"`
}

type FakeClient struct {
	UserExistsFn func(ctx context.Context, username string) (bool, error)
	UserBooksFn  func(ctx context.Context, username string) ([]Book, error)
	BookURLFn    func(bookID int) string
	FederateFn   func(ctx context.Context, username, password string) (*Profile, error)
}

func (f *FakeClient) UserExists(ctx context.Context, username string) (bool, error) {
	if f.UserExistsFn != nil {
		return f.UserExistsFn(ctx, username)
	}
	panic("unexpected UserExists")
}

func (f *FakeClient) UserBooks(ctx context.Context, username string) ([]Book, error) {
	if f.UserBooksFn != nil {
		return f.UserBooksFn(ctx, username)
	}
	panic("unexpected UserBooks")
}

func (f *FakeClient) BookURL(bookID int) string {
	if f.BookURLFn != nil {
		return f.BookURLFn(bookID)
	}
	panic("unexpected BookURL")
}

func (f *FakeClient) Federate(ctx context.Context, username, password string) (*Profile, error) {
	if f.FederateFn != nil {
		return f.FederateFn(ctx, username, password)
	}
	panic("unexpected Federate")
}
