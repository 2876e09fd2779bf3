package store

import (
	"context"
	"fmt"

	"events-api/internal/database"
	"events-api/internal/model"
)

func listUsers(ctx context.Context, db database.Querier, op, query string, args ...any) ([]model.User, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var list []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap(op+" scan", err)
		}
		list = append(list, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op+" rows", err)
	}
	return list, nil
}

func ListGuests(ctx context.Context, db database.Querier, eventID int) ([]model.User, error) {
	return listUsers(ctx, db, "ListGuests",
		`SELECT u.id, u.username, u.password_hash, u.first_name, u.last_name, u.email, u.is_admin
		 FROM users u JOIN event_guest g ON g.guest_id = u.id
		 WHERE g.event_id = $1
		 ORDER BY u.username`,
		eventID,
	)
}

func ListParticipants(ctx context.Context, db database.Querier, eventID int) ([]model.User, error) {
	return listUsers(ctx, db, "ListParticipants",
		`SELECT u.id, u.username, u.password_hash, u.first_name, u.last_name, u.email, u.is_admin
		 FROM users u JOIN event_participant p ON p.participant_id = u.id
		 WHERE p.event_id = $1
		 ORDER BY u.username`,
		eventID,
	)
}

// RoleOf 回傳使用者在活動中的身分，兩者皆非時為 model.RoleNone
func RoleOf(ctx context.Context, db database.Querier, eventID, userID int) (model.Role, error) {
	var isGuest, isParticipant bool
	if err := db.QueryRow(ctx,
		`SELECT
		     EXISTS (SELECT 1 FROM event_guest WHERE event_id = $1 AND guest_id = $2),
		     EXISTS (SELECT 1 FROM event_participant WHERE event_id = $1 AND participant_id = $2)`,
		eventID,
		userID,
	).Scan(&isGuest, &isParticipant); err != nil {
		return model.RoleNone, wrap("RoleOf", err)
	}
	switch {
	case isGuest:
		return model.RoleGuest, nil
	case isParticipant:
		return model.RoleParticipant, nil
	}
	return model.RoleNone, nil
}

func AddGuest(ctx context.Context, db database.Querier, eventID, userID int) error {
	if _, err := db.Exec(ctx,
		`INSERT INTO event_guest (event_id, guest_id) VALUES ($1, $2)`,
		eventID,
		userID,
	); err != nil {
		return wrap("AddGuest", err)
	}
	return nil
}

func AddParticipant(ctx context.Context, db database.Querier, eventID, userID int) error {
	if _, err := db.Exec(ctx,
		`INSERT INTO event_participant (event_id, participant_id) VALUES ($1, $2)`,
		eventID,
		userID,
	); err != nil {
		return wrap("AddParticipant", err)
	}
	return nil
}

func RemoveGuest(ctx context.Context, db database.Querier, eventID, userID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM event_guest WHERE event_id = $1 AND guest_id = $2`,
		eventID,
		userID,
	)
	if err != nil {
		return wrap("RemoveGuest", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("RemoveGuest: %w", ErrNotFound)
	}
	return nil
}

func RemoveParticipant(ctx context.Context, db database.Querier, eventID, userID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM event_participant WHERE event_id = $1 AND participant_id = $2`,
		eventID,
		userID,
	)
	if err != nil {
		return wrap("RemoveParticipant", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("RemoveParticipant: %w", ErrNotFound)
	}
	return nil
}
