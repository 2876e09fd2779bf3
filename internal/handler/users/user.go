package users

import (
	"context"

	"events-api/internal/database"
	"events-api/internal/model"
	"events-api/internal/service"
	"events-api/internal/store"
)

const defaultLimit = 5

// 測試替換點
var (
	hashPassword    = service.HashPassword
	listUsers       = store.ListUsers
	countUsers      = store.CountUsers
	updateUser      = store.UpdateUser
	setUserPassword = store.SetUserPassword
	deleteUser      = store.DeleteUser
	withTx          = database.WithTx
)

// Creator 由 service.Accounts 實作，建立前會檢查 books 服務是否已有同名帳號
type Creator interface {
	Create(ctx context.Context, in service.NewUser) (*model.User, error)
}
