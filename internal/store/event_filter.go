package store

import (
	"context"
	"time"

	"events-api/internal/database"
	"events-api/internal/model"
)

// statusExpr 與 model.Event.Status 相同的規則，now 由呼叫端傳入
func statusExpr(now string) string {
	return `(CASE WHEN e.dt_end < ` + now + ` THEN 'past'
	              WHEN e.dt_start < ` + now + ` THEN 'current'
	              ELSE 'future' END)`
}

// statusRank 依時間先後排序：past, current, future
func statusRank(now string) string {
	return `(CASE WHEN e.dt_end < ` + now + ` THEN 0
	              WHEN e.dt_start < ` + now + ` THEN 1
	              ELSE 2 END)`
}

// EventFilter 列表查詢條件；Status 為 nil 表示不限狀態
type EventFilter struct {
	Status        *model.Status
	Title         string
	OwnerID       *int
	GuestID       *int
	ParticipantID *int
	OrderBy       string
	Order         string
	Now           time.Time
}

var eventOrderColumns = map[string]string{
	"id":       "e.id",
	"title":    "e.title",
	"dt_start": "e.dt_start",
	"dt_end":   "e.dt_end",
	"status":   "",
}

// ValidEventOrder 檢查 order_by 是否在白名單內
func ValidEventOrder(orderBy string) bool {
	_, ok := eventOrderColumns[orderBy]
	return ok
}

func (f EventFilter) now() time.Time {
	if f.Now.IsZero() {
		return time.Now()
	}
	return f.Now
}

func (f EventFilter) where() *where {
	w := &where{}
	if f.Status != nil {
		w.add(statusExpr(w.once("now", f.now())) + ` = ` + w.arg(string(*f.Status)))
	}
	if f.Title != "" {
		w.add(`e.title ILIKE '%' || ` + w.arg(escapeLike(f.Title)) + ` || '%'`)
	}
	if f.OwnerID != nil {
		w.add(`e.owner_id = ` + w.arg(*f.OwnerID))
	}
	if f.GuestID != nil {
		w.add(`EXISTS (SELECT 1 FROM event_guest g WHERE g.event_id = e.id AND g.guest_id = ` + w.arg(*f.GuestID) + `)`)
	}
	if f.ParticipantID != nil {
		w.add(`EXISTS (SELECT 1 FROM event_participant p WHERE p.event_id = e.id AND p.participant_id = ` + w.arg(*f.ParticipantID) + `)`)
	}
	return w
}

func (f EventFilter) orderBy(w *where) string {
	col, ok := eventOrderColumns[f.OrderBy]
	switch {
	case !ok:
		col = "e.dt_start"
	case col == "":
		col = statusRank(w.once("now", f.now()))
	}
	return " ORDER BY " + col + " " + direction(f.Order) + ", e.id"
}

func ListEvents(ctx context.Context, db database.Querier, f EventFilter, limit, offset int) ([]model.Event, error) {
	w := f.where()
	query := `SELECT ` + eventColumns + ` FROM events e` + w.String() + f.orderBy(w) +
		` LIMIT ` + w.arg(limit) + ` OFFSET ` + w.arg(offset)

	rows, err := db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, wrap("ListEvents", err)
	}
	defer rows.Close()

	var list []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, wrap("ListEvents scan", err)
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListEvents rows", err)
	}
	return list, nil
}

func CountEvents(ctx context.Context, db database.Querier, f EventFilter) (int, error) {
	w := f.where()
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM events e`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, wrap("CountEvents", err)
	}
	return n, nil
}
