// Package seed 產生開發用的假資料
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"events-api/internal/database"
	"events-api/internal/model"
	"events-api/internal/service"
	"events-api/internal/store"

	"github.com/rs/zerolog"
)

// DefaultPassword 所有假使用者共用的密碼
const DefaultPassword = "123456789"

const (
	maxAttempts = 5
	poolSize    = 100
)

// 測試替換點
var (
	createUser     = store.CreateUser
	listUsers      = store.ListUsers
	createEvent    = store.CreateEvent
	addGuest       = store.AddGuest
	addParticipant = store.AddParticipant
	hashPassword   = service.HashPassword
	withTx         = database.WithTx
)

var (
	words = []string{
		"river", "cloud", "maple", "stone", "ember", "harbor", "falcon", "meadow",
		"cedar", "quartz", "lantern", "willow", "copper", "summit", "breeze", "orbit",
		"pixel", "garden", "signal", "canyon", "violet", "thunder", "atlas", "tide",
	}
	firstNames = []string{"Alice", "Bruno", "Chen", "Dana", "Emil", "Fatima", "Goro", "Hana", "Ivan", "Jun"}
	lastNames  = []string{"Lin", "Novak", "Okafor", "Park", "Rossi", "Sato", "Tan", "Weber", "Yilmaz", "Zhou"}
)

// ErrNoUsers 產生活動前資料庫中至少要有一個使用者
var ErrNoUsers = errors.New("no users to own events")

type Seeder struct {
	db     database.DB
	rnd    *rand.Rand
	now    func() time.Time
	logger zerolog.Logger
}

func New(db database.DB, rnd *rand.Rand, logger zerolog.Logger) *Seeder {
	return &Seeder{db: db, rnd: rnd, now: time.Now, logger: logger}
}

func (s *Seeder) pick(list []string) string {
	return list[s.rnd.IntN(len(list))]
}

// Users 建立 n 個使用者；username 撞名時換一個重試
func (s *Seeder) Users(ctx context.Context, n int) ([]model.User, error) {
	hash, err := hashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}
	created := make([]model.User, 0, n)
	for i := 0; i < n; i++ {
		var u *model.User
		for attempt := 0; ; attempt++ {
			first, last := s.pick(firstNames), s.pick(lastNames)
			u, err = createUser(ctx, s.db, &model.User{
				Username:     fmt.Sprintf("%s%d", s.pick(words), s.rnd.IntN(10000)),
				PasswordHash: &hash,
				FirstName:    &first,
				LastName:     &last,
			})
			if err == nil {
				break
			}
			if !errors.Is(err, store.ErrDuplicate) || attempt+1 >= maxAttempts {
				return created, fmt.Errorf("seed user: %w", err)
			}
		}
		s.logger.Debug().Str("username", u.Username).Msg("seeded user")
		created = append(created, *u)
	}
	return created, nil
}

// Events 建立 n 個活動，時間散落在前後一年內；owner、guests、participants 從既有使用者隨機抽取
func (s *Seeder) Events(ctx context.Context, n int) ([]model.Event, error) {
	pool, err := listUsers(ctx, s.db, store.UserFilter{}, poolSize, 0)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoUsers
	}

	created := make([]model.Event, 0, n)
	for i := 0; i < n; i++ {
		var e model.Event
		for attempt := 0; ; attempt++ {
			e = s.event(pool)
			err = withTx(ctx, s.db, func(q database.Querier) error {
				return s.insert(ctx, q, &e)
			})
			if err == nil {
				break
			}
			if !errors.Is(err, store.ErrDuplicate) || attempt+1 >= maxAttempts {
				return created, fmt.Errorf("seed event: %w", err)
			}
		}
		s.logger.Debug().Str("title", e.Title).Int("guests", len(e.Guests)).Int("participants", len(e.Participants)).Msg("seeded event")
		created = append(created, e)
	}
	return created, nil
}

func (s *Seeder) event(pool []model.User) model.Event {
	title := make([]string, 1+s.rnd.IntN(5))
	for i := range title {
		title[i] = s.pick(words)
	}
	start := s.now().Truncate(time.Minute).Add(time.Duration(s.rnd.IntN(2*365*24)-365*24) * time.Hour)
	summary := "Seeded event about " + strings.Join(title, " ")

	// guest 與 participant 取自同一個洗牌結果的不同區段，確保不重疊
	perm := s.rnd.Perm(len(pool))
	guests := min(1+s.rnd.IntN(3), len(perm))
	participants := min(1+s.rnd.IntN(3), len(perm)-guests)

	e := model.Event{
		Title:   fmt.Sprintf("%s %d", strings.Join(title, " "), s.rnd.IntN(100000)),
		Summary: &summary,
		DtStart: start,
		DtEnd:   start.Add(time.Duration(1+s.rnd.IntN(72)) * time.Hour),
		OwnerID: pool[s.rnd.IntN(len(pool))].ID,
	}
	for _, idx := range perm[:guests] {
		e.Guests = append(e.Guests, pool[idx])
	}
	for _, idx := range perm[guests : guests+participants] {
		e.Participants = append(e.Participants, pool[idx])
	}
	return e
}

func (s *Seeder) insert(ctx context.Context, q database.Querier, e *model.Event) error {
	if _, err := createEvent(ctx, q, e); err != nil {
		return err
	}
	for _, u := range e.Guests {
		if err := addGuest(ctx, q, e.ID, u.ID); err != nil {
			return err
		}
	}
	for _, u := range e.Participants {
		if err := addParticipant(ctx, q, e.ID, u.ID); err != nil {
			return err
		}
	}
	return nil
}
