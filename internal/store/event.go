package store

import (
	"context"
	"fmt"

	"events-api/internal/database"
	"events-api/internal/model"

	"github.com/jackc/pgx/v5"
)

const eventColumns = `e.id, e.title, e.summary, e.dt_start, e.dt_end, e.owner_id`

func scanEvent(row pgx.Row) (*model.Event, error) {
	e := &model.Event{}
	if err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Summary,
		&e.DtStart,
		&e.DtEnd,
		&e.OwnerID,
	); err != nil {
		return nil, err
	}
	return e, nil
}

func GetEventByID(ctx context.Context, db database.Querier, eventID int) (*model.Event, error) {
	e, err := scanEvent(db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.id = $1`,
		eventID,
	))
	if err != nil {
		return nil, wrap("GetEventByID", err)
	}
	return e, nil
}

// LockEvent 以 FOR UPDATE 鎖定活動列，必須在 transaction 中呼叫
func LockEvent(ctx context.Context, db database.Querier, eventID int) (*model.Event, error) {
	e, err := scanEvent(db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.id = $1 FOR UPDATE`,
		eventID,
	))
	if err != nil {
		return nil, wrap("LockEvent", err)
	}
	return e, nil
}

func GetEventByTitle(ctx context.Context, db database.Querier, title string) (*model.Event, error) {
	e, err := scanEvent(db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.title = $1`,
		title,
	))
	if err != nil {
		return nil, wrap("GetEventByTitle", err)
	}
	return e, nil
}

func CreateEvent(ctx context.Context, db database.Querier, e *model.Event) (*model.Event, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO events (title, summary, dt_start, dt_end, owner_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		e.Title,
		e.Summary,
		e.DtStart,
		e.DtEnd,
		e.OwnerID,
	)
	if err := row.Scan(&e.ID); err != nil {
		return nil, wrap("CreateEvent", err)
	}
	return e, nil
}

func UpdateEvent(ctx context.Context, db database.Querier, e *model.Event) error {
	tag, err := db.Exec(ctx,
		`UPDATE events SET title = $1, summary = $2, dt_start = $3, dt_end = $4
		 WHERE id = $5`,
		e.Title,
		e.Summary,
		e.DtStart,
		e.DtEnd,
		e.ID,
	)
	if err != nil {
		return wrap("UpdateEvent", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateEvent: %w", ErrNotFound)
	}
	return nil
}

func DeleteEvent(ctx context.Context, db database.Querier, eventID int) error {
	tag, err := db.Exec(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	if err != nil {
		return wrap("DeleteEvent", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteEvent: %w", ErrNotFound)
	}
	return nil
}

// LoadEventDetails 補齊 owner、guests、participants、artifacts
func LoadEventDetails(ctx context.Context, db database.Querier, e *model.Event) error {
	owner, err := GetUserByID(ctx, db, e.OwnerID)
	if err != nil {
		return fmt.Errorf("LoadEventDetails: %w", err)
	}
	e.Owner = owner
	if e.Guests, err = ListGuests(ctx, db, e.ID); err != nil {
		return fmt.Errorf("LoadEventDetails: %w", err)
	}
	if e.Participants, err = ListParticipants(ctx, db, e.ID); err != nil {
		return fmt.Errorf("LoadEventDetails: %w", err)
	}
	if e.Artifacts, err = ListArtifacts(ctx, db, e.ID); err != nil {
		return fmt.Errorf("LoadEventDetails: %w", err)
	}
	return nil
}

// AttachOwners 以單一查詢補齊列表中每個活動的 owner
func AttachOwners(ctx context.Context, db database.Querier, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]int, 0, len(events))
	seen := make(map[int]struct{}, len(events))
	for _, e := range events {
		if _, ok := seen[e.OwnerID]; ok {
			continue
		}
		seen[e.OwnerID] = struct{}{}
		ids = append(ids, e.OwnerID)
	}

	owners, err := listUsers(ctx, db, "AttachOwners",
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	byID := make(map[int]*model.User, len(owners))
	for i := range owners {
		byID[owners[i].ID] = &owners[i]
	}
	for i := range events {
		events[i].Owner = byID[events[i].OwnerID]
	}
	return nil
}
