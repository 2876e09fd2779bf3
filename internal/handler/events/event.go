// Package events 提供活動 CRUD、guest / participant 名單與個人報名端點
package events

import (
	"context"
	"time"

	"events-api/internal/model"
	"events-api/internal/store"
)

const defaultLimit = 20

// 測試替換點
var (
	listEvents       = store.ListEvents
	countEvents      = store.CountEvents
	attachOwners     = store.AttachOwners
	createEvent      = store.CreateEvent
	updateEvent      = store.UpdateEvent
	deleteEvent      = store.DeleteEvent
	loadEventDetails = store.LoadEventDetails
	listGuests       = store.ListGuests
	listParticipants = store.ListParticipants
	timeNow          = time.Now
)

// Membership 由 service.Membership 實作
type Membership interface {
	RoleOf(ctx context.Context, eventID, userID int) (model.Role, error)
	AddGuest(ctx context.Context, eventID int, user model.User) error
	AddParticipant(ctx context.Context, eventID int, user model.User) error
	RemoveGuest(ctx context.Context, eventID, userID int) error
	RemoveParticipant(ctx context.Context, eventID, userID int) error
	AddGuests(ctx context.Context, eventID int, usernames []string) ([]model.User, error)
	AddParticipants(ctx context.Context, eventID int, usernames []string) ([]model.User, error)
	RemoveGuests(ctx context.Context, eventID int, usernames []string) error
	RemoveParticipants(ctx context.Context, eventID int, usernames []string) error
}
