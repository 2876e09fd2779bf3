package service

import (
	"context"
	"time"

	"events-api/internal/database"
	"events-api/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// restoreGlobals 還原所有測試替換點
func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	newTokenID = func() string { return uuid.NewString() }

	userExists = store.UserExists
	getUserByUsername = store.GetUserByUsername
	getOrCreateUser = store.GetOrCreateUser
	createUser = store.CreateUser
	updateUser = store.UpdateUser
	setUserPassword = store.SetUserPassword
	withTx = database.WithTx

	lockEvent = store.LockEvent
	roleOf = store.RoleOf
	addGuest = store.AddGuest
	addParticipant = store.AddParticipant
	removeGuest = store.RemoveGuest
	removeParticipant = store.RemoveParticipant
	getOrCreateArtifact = store.GetOrCreateArtifact
	attachArtifact = store.AttachArtifact
}

// txDB 回傳會開啟 FakeTx 的 FakeDB，並記錄最後一個 transaction
func txDB() (*database.FakeDB, func() *database.FakeTx) {
	var last *database.FakeTx
	db := &database.FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) {
		last = &database.FakeTx{}
		return last, nil
	}}
	return db, func() *database.FakeTx { return last }
}
