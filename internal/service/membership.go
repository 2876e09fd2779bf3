// File: internal/service/membership.go
package service

import (
	"context"
	"errors"
	"fmt"

	"events-api/internal/books"
	"events-api/internal/database"
	"events-api/internal/model"
	"events-api/internal/store"
	"events-api/internal/worker"

	"github.com/rs/zerolog"
)

var (
	ErrAlreadyRegistered = errors.New("already registered for event")
	ErrNotRegistered     = errors.New("user is not registered for event")
	ErrPastEvent         = errors.New("event already ended")
	ErrUnknownUser       = errors.New("user not found")
)

// alreadyError 讓 guest / participant 兩種錯誤都滿足 errors.Is(err, ErrAlreadyRegistered)
type alreadyError string

func (e alreadyError) Error() string { return string(e) }

func (e alreadyError) Is(target error) bool { return target == ErrAlreadyRegistered }

var (
	ErrAlreadyGuest       error = alreadyError("already registered for event as guest")
	ErrAlreadyParticipant error = alreadyError("already registered for event as participant")
)

// 測試替換點
var (
	lockEvent           = store.LockEvent
	roleOf              = store.RoleOf
	addGuest            = store.AddGuest
	addParticipant      = store.AddParticipant
	removeGuest         = store.RemoveGuest
	removeParticipant   = store.RemoveParticipant
	getOrCreateArtifact = store.GetOrCreateArtifact
	attachArtifact      = store.AttachArtifact
)

// Membership 管理活動的 guest / participant 名單；同一使用者不可同時具備兩種身分
type Membership struct {
	db     database.DB
	books  books.Client
	pool   worker.Pool
	logger zerolog.Logger
}

func NewMembership(db database.DB, bc books.Client, pool worker.Pool, logger zerolog.Logger) *Membership {
	return &Membership{db: db, books: bc, pool: pool, logger: logger}
}

func (m *Membership) RoleOf(ctx context.Context, eventID, userID int) (model.Role, error) {
	return roleOf(ctx, m.db, eventID, userID)
}

// participant 報名時要同步的 artifact url，空字串表示沒有
type candidate struct {
	user        model.User
	artifactURL string
}

func (m *Membership) AddGuest(ctx context.Context, eventID int, user model.User) error {
	return m.register(ctx, eventID, model.RoleGuest, []candidate{{user: user}})
}

// AddParticipant 若使用者在 books 服務有著作，將第一本書的網址掛到活動的 artifacts
func (m *Membership) AddParticipant(ctx context.Context, eventID int, user model.User) error {
	c := candidate{user: user, artifactURL: m.artifactURL(ctx, user.Username)}
	return m.register(ctx, eventID, model.RoleParticipant, []candidate{c})
}

func (m *Membership) RemoveGuest(ctx context.Context, eventID, userID int) error {
	return m.unregister(ctx, eventID, model.RoleGuest, []int{userID})
}

func (m *Membership) RemoveParticipant(ctx context.Context, eventID, userID int) error {
	return m.unregister(ctx, eventID, model.RoleParticipant, []int{userID})
}

// AddGuests 先解析所有 username，任一不存在則整批失敗；寫入在單一 transaction 內完成
func (m *Membership) AddGuests(ctx context.Context, eventID int, usernames []string) ([]model.User, error) {
	cands, err := m.resolve(ctx, usernames, false)
	if err != nil {
		return nil, err
	}
	if err := m.register(ctx, eventID, model.RoleGuest, cands); err != nil {
		return nil, err
	}
	return users(cands), nil
}

func (m *Membership) AddParticipants(ctx context.Context, eventID int, usernames []string) ([]model.User, error) {
	cands, err := m.resolve(ctx, usernames, true)
	if err != nil {
		return nil, err
	}
	if err := m.register(ctx, eventID, model.RoleParticipant, cands); err != nil {
		return nil, err
	}
	return users(cands), nil
}

func (m *Membership) RemoveGuests(ctx context.Context, eventID int, usernames []string) error {
	return m.unregisterNames(ctx, eventID, model.RoleGuest, usernames)
}

func (m *Membership) RemoveParticipants(ctx context.Context, eventID int, usernames []string) error {
	return m.unregisterNames(ctx, eventID, model.RoleParticipant, usernames)
}

func (m *Membership) unregisterNames(ctx context.Context, eventID int, role model.Role, usernames []string) error {
	ids := make([]int, 0, len(usernames))
	for _, name := range dedupe(usernames) {
		u, err := getUserByUsername(ctx, m.db, name)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: <%s>", ErrUnknownUser, name)
		}
		if err != nil {
			return err
		}
		ids = append(ids, u.ID)
	}
	return m.unregister(ctx, eventID, role, ids)
}

// resolve 在 worker pool 上平行查詢使用者；本地不存在但 books 服務有此帳號時建立本地紀錄
func (m *Membership) resolve(ctx context.Context, usernames []string, withArtifacts bool) ([]candidate, error) {
	names := dedupe(usernames)
	out := make([]candidate, len(names))
	err := worker.Each(ctx, m.pool, len(names), func(ctx context.Context, i int) error {
		u, err := m.lookupUser(ctx, names[i])
		if err != nil {
			return err
		}
		out[i].user = *u
		if withArtifacts {
			out[i].artifactURL = m.artifactURL(ctx, u.Username)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Membership) lookupUser(ctx context.Context, username string) (*model.User, error) {
	u, err := getUserByUsername(ctx, m.db, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	remote, err := m.books.UserExists(ctx, username)
	if err != nil {
		m.logger.Warn().Err(err).Str("username", username).Msg("books existence check failed")
	}
	if !remote {
		return nil, fmt.Errorf("%w: <%s>", ErrUnknownUser, username)
	}
	u, _, err = getOrCreateUser(ctx, m.db, username)
	return u, err
}

// artifactURL books 服務錯誤只記錄，不影響報名
func (m *Membership) artifactURL(ctx context.Context, username string) string {
	remote, err := m.books.UserExists(ctx, username)
	if err != nil || !remote {
		return ""
	}
	list, err := m.books.UserBooks(ctx, username)
	if err != nil {
		m.logger.Warn().Err(err).Str("username", username).Msg("books lookup failed")
		return ""
	}
	if len(list) == 0 {
		return ""
	}
	return m.books.BookURL(list[0].ID)
}

// register 鎖定活動列後檢查身分並寫入，確保並行報名時不會同時成為 guest 與 participant
func (m *Membership) register(ctx context.Context, eventID int, role model.Role, cands []candidate) error {
	return withTx(ctx, m.db, func(q database.Querier) error {
		event, err := lockEvent(ctx, q, eventID)
		if err != nil {
			return err
		}
		if event.Status(timeNow()) == model.StatusPast {
			return ErrPastEvent
		}

		for _, c := range cands {
			current, err := roleOf(ctx, q, eventID, c.user.ID)
			if err != nil {
				return err
			}
			switch current {
			case model.RoleGuest:
				return fmt.Errorf("<%s> %w", c.user.Username, ErrAlreadyGuest)
			case model.RoleParticipant:
				return fmt.Errorf("<%s> %w", c.user.Username, ErrAlreadyParticipant)
			}

			if role == model.RoleGuest {
				err = addGuest(ctx, q, eventID, c.user.ID)
			} else {
				err = addParticipant(ctx, q, eventID, c.user.ID)
			}
			if err != nil {
				return err
			}

			if c.artifactURL == "" {
				continue
			}
			artifact, err := getOrCreateArtifact(ctx, q, c.artifactURL)
			if err != nil {
				return err
			}
			if err := attachArtifact(ctx, q, eventID, artifact.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *Membership) unregister(ctx context.Context, eventID int, role model.Role, userIDs []int) error {
	return withTx(ctx, m.db, func(q database.Querier) error {
		event, err := lockEvent(ctx, q, eventID)
		if err != nil {
			return err
		}
		if event.Status(timeNow()) == model.StatusPast {
			return ErrPastEvent
		}

		for _, id := range userIDs {
			if role == model.RoleGuest {
				err = removeGuest(ctx, q, eventID, id)
			} else {
				err = removeParticipant(ctx, q, eventID, id)
			}
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotRegistered
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func users(cands []candidate) []model.User {
	out := make([]model.User, len(cands))
	for i, c := range cands {
		out[i] = c.user
	}
	return out
}

