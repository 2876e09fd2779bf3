// File: internal/dto/event_response.go
package dto

import (
	"time"

	"events-api/internal/model"
)

// swagger:model dto.ArtifactResponse
type ArtifactResponse struct {
	ID  int    `json:"id" example:"1"`
	URL string `json:"url" example:"http://books.local/books/42/"`
}

// swagger:model dto.EventShort
type EventShort struct {
	ID      int       `json:"id" example:"1"`
	Title   string    `json:"title" example:"Go meetup"`
	Status  string    `json:"status" example:"future"`
	DtStart DateTime  `json:"dt_start" swaggertype:"string"`
	DtEnd   DateTime  `json:"dt_end" swaggertype:"string"`
	Owner   UserShort `json:"owner"`
}

// swagger:model dto.EventFull
type EventFull struct {
	ID           int                `json:"id" example:"1"`
	Title        string             `json:"title" example:"Go meetup"`
	Summary      *string            `json:"summary" example:"Monthly talks"`
	Status       string             `json:"status" example:"future"`
	DtStart      DateTime           `json:"dt_start" swaggertype:"string"`
	DtEnd        DateTime           `json:"dt_end" swaggertype:"string"`
	Owner        UserShort          `json:"owner"`
	Participants []UserShort        `json:"participants"`
	Guests       []UserShort        `json:"guests"`
	Artifacts    []ArtifactResponse `json:"artifacts"`
}

// NewEventShort owner 未載入時只輸出 owner id
func NewEventShort(e model.Event, now time.Time) EventShort {
	out := EventShort{
		ID:      e.ID,
		Title:   e.Title,
		Status:  string(e.Status(now)),
		DtStart: DateTime{e.DtStart},
		DtEnd:   DateTime{e.DtEnd},
		Owner:   UserShort{ID: e.OwnerID},
	}
	if e.Owner != nil {
		out.Owner = NewUserShort(*e.Owner)
	}
	return out
}

func NewEventShortList(list []model.Event, now time.Time) []EventShort {
	out := make([]EventShort, 0, len(list))
	for _, e := range list {
		out = append(out, NewEventShort(e, now))
	}
	return out
}

func NewEventFull(e model.Event, now time.Time) EventFull {
	short := NewEventShort(e, now)
	artifacts := make([]ArtifactResponse, 0, len(e.Artifacts))
	for _, a := range e.Artifacts {
		artifacts = append(artifacts, ArtifactResponse{ID: a.ID, URL: a.URL})
	}
	return EventFull{
		ID:           e.ID,
		Title:        e.Title,
		Summary:      e.Summary,
		Status:       short.Status,
		DtStart:      short.DtStart,
		DtEnd:        short.DtEnd,
		Owner:        short.Owner,
		Participants: NewUserShortList(e.Participants),
		Guests:       NewUserShortList(e.Guests),
		Artifacts:    artifacts,
	}
}

// EventDetail 單一活動回應；活動本身的 status 在 event.status
// swagger:model dto.EventDetail
type EventDetail struct {
	Status int       `json:"status" example:"200"`
	Event  EventFull `json:"event"`
}

func NewEventDetail(status int, e model.Event, now time.Time) EventDetail {
	return EventDetail{Status: status, Event: NewEventFull(e, now)}
}
