// File: internal/model/event.go
package model

import "time"

// Status 活動依時間推導出的狀態
type Status string

const (
	StatusPast    Status = "past"
	StatusCurrent Status = "current"
	StatusFuture  Status = "future"
)

// ParseStatus 驗證查詢參數中的 status
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPast, StatusCurrent, StatusFuture:
		return Status(s), true
	}
	return "", false
}

type Event struct {
	ID      int       `db:"id" json:"id"`
	Title   string    `db:"title" json:"title"`
	Summary *string   `db:"summary" json:"summary"`
	DtStart time.Time `db:"dt_start" json:"dt_start"`
	DtEnd   time.Time `db:"dt_end" json:"dt_end"`
	OwnerID int       `db:"owner_id" json:"owner_id"`

	Owner        *User      `json:"owner,omitempty"`
	Guests       []User     `json:"guests,omitempty"`
	Participants []User     `json:"participants,omitempty"`
	Artifacts    []Artifact `json:"artifacts,omitempty"`
}

// Status 結束時間早於 now 為 past；開始時間早於 now 為 current；其餘為 future
func (e *Event) Status(now time.Time) Status {
	switch {
	case e.DtEnd.Before(now):
		return StatusPast
	case e.DtStart.Before(now):
		return StatusCurrent
	default:
		return StatusFuture
	}
}

type Artifact struct {
	ID  int    `db:"id" json:"id"`
	URL string `db:"url" json:"url"`
}

// Role 使用者在活動中的身分
type Role string

const (
	RoleNone        Role = ""
	RoleGuest       Role = "guest"
	RoleParticipant Role = "participant"
)
