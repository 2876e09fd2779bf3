package events

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"events-api/internal/database"
	"events-api/internal/model"
	"events-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeMembership struct {
	RoleOfFn             func(ctx context.Context, eventID, userID int) (model.Role, error)
	AddGuestFn           func(ctx context.Context, eventID int, user model.User) error
	AddParticipantFn     func(ctx context.Context, eventID int, user model.User) error
	RemoveGuestFn        func(ctx context.Context, eventID, userID int) error
	RemoveParticipantFn  func(ctx context.Context, eventID, userID int) error
	AddGuestsFn          func(ctx context.Context, eventID int, usernames []string) ([]model.User, error)
	AddParticipantsFn    func(ctx context.Context, eventID int, usernames []string) ([]model.User, error)
	RemoveGuestsFn       func(ctx context.Context, eventID int, usernames []string) error
	RemoveParticipantsFn func(ctx context.Context, eventID int, usernames []string) error
}

func (f *fakeMembership) RoleOf(ctx context.Context, eventID, userID int) (model.Role, error) {
	if f.RoleOfFn == nil {
		panic("RoleOfFn not set")
	}
	return f.RoleOfFn(ctx, eventID, userID)
}

func (f *fakeMembership) AddGuest(ctx context.Context, eventID int, user model.User) error {
	if f.AddGuestFn == nil {
		panic("AddGuestFn not set")
	}
	return f.AddGuestFn(ctx, eventID, user)
}

func (f *fakeMembership) AddParticipant(ctx context.Context, eventID int, user model.User) error {
	if f.AddParticipantFn == nil {
		panic("AddParticipantFn not set")
	}
	return f.AddParticipantFn(ctx, eventID, user)
}

func (f *fakeMembership) RemoveGuest(ctx context.Context, eventID, userID int) error {
	if f.RemoveGuestFn == nil {
		panic("RemoveGuestFn not set")
	}
	return f.RemoveGuestFn(ctx, eventID, userID)
}

func (f *fakeMembership) RemoveParticipant(ctx context.Context, eventID, userID int) error {
	if f.RemoveParticipantFn == nil {
		panic("RemoveParticipantFn not set")
	}
	return f.RemoveParticipantFn(ctx, eventID, userID)
}

func (f *fakeMembership) AddGuests(ctx context.Context, eventID int, usernames []string) ([]model.User, error) {
	if f.AddGuestsFn == nil {
		panic("AddGuestsFn not set")
	}
	return f.AddGuestsFn(ctx, eventID, usernames)
}

func (f *fakeMembership) AddParticipants(ctx context.Context, eventID int, usernames []string) ([]model.User, error) {
	if f.AddParticipantsFn == nil {
		panic("AddParticipantsFn not set")
	}
	return f.AddParticipantsFn(ctx, eventID, usernames)
}

func (f *fakeMembership) RemoveGuests(ctx context.Context, eventID int, usernames []string) error {
	if f.RemoveGuestsFn == nil {
		panic("RemoveGuestsFn not set")
	}
	return f.RemoveGuestsFn(ctx, eventID, usernames)
}

func (f *fakeMembership) RemoveParticipants(ctx context.Context, eventID int, usernames []string) error {
	if f.RemoveParticipantsFn == nil {
		panic("RemoveParticipantsFn not set")
	}
	return f.RemoveParticipantsFn(ctx, eventID, usernames)
}

func TestListMembersHandlers(t *testing.T) {
	t.Cleanup(restoreGlobals)
	listGuests = func(ctx context.Context, db database.Querier, id int) ([]model.User, error) {
		return []model.User{{ID: 2, Username: "alice"}}, nil
	}
	listParticipants = func(ctx context.Context, db database.Querier, id int) ([]model.User, error) {
		return nil, nil
	}
	db := &database.FakeDB{}

	rec := serve("/api/event/:event_id/guests", ListGuestsHandler(db), request{method: http.MethodGet, target: "/api/event/1/guests", event: futureEvent()})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":200,"guests":[{"id":2,"username":"alice"}]}`, rec.Body.String())

	rec = serve("/api/event/:event_id/participants", ListParticipantsHandler(db), request{method: http.MethodGet, target: "/api/event/1/participants", event: futureEvent()})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":200,"participants":[]}`, rec.Body.String())
}

func TestAddMembersHandlers(t *testing.T) {
	var got []string
	m := &fakeMembership{
		AddGuestsFn: func(ctx context.Context, eventID int, usernames []string) ([]model.User, error) {
			require.Equal(t, 1, eventID)
			got = usernames
			for _, n := range usernames {
				if n == "ghost" {
					return nil, fmt.Errorf("%w: <%s>", service.ErrUnknownUser, n)
				}
			}
			return []model.User{{ID: 2, Username: "alice"}}, nil
		},
		AddParticipantsFn: func(ctx context.Context, eventID int, usernames []string) ([]model.User, error) {
			return nil, fmt.Errorf("<%s> %w", usernames[0], service.ErrAlreadyGuest)
		},
	}
	path := "/api/event/:event_id/guests"
	post := func(body string) (int, string) {
		rec := serve(path, AddGuestsHandler(m), request{method: http.MethodPost, target: "/api/event/1/guests", body: body, event: futureEvent()})
		return rec.Code, rec.Body.String()
	}

	code, body := post(`{"guests":["alice"]}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []string{"alice"}, got)
	require.JSONEq(t, `{"status":200,"message":"All users were successfully registered for event guests"}`, body)

	code, body = post(`{"guests":["alice","ghost"]}`)
	require.Equal(t, http.StatusNotFound, code)
	require.JSONEq(t, `{"status":404,"message":"user not found: <ghost>"}`, body)

	code, body = post(`{"guests":[]}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, body, `"guests"`)

	code, _ = post(`{"guests":[""]}`)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = post(`{"participants":["alice"]}`)
	require.Equal(t, http.StatusBadRequest, code)

	rec := serve("/api/event/:event_id/participants", AddParticipantsHandler(m), request{
		method: http.MethodPost, target: "/api/event/1/participants", body: `{"participants":["alice"]}`, event: futureEvent(),
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"status":409,"message":"<alice> already registered for event as guest"}`, rec.Body.String())
}

func TestRemoveMembersHandlers(t *testing.T) {
	m := &fakeMembership{
		RemoveGuestsFn: func(ctx context.Context, eventID int, usernames []string) error {
			return service.ErrNotRegistered
		},
		RemoveParticipantsFn: func(ctx context.Context, eventID int, usernames []string) error {
			require.Equal(t, []string{"alice", "bob"}, usernames)
			return nil
		},
	}

	rec := serve("/api/event/:event_id/guests", RemoveGuestsHandler(m), request{
		method: http.MethodDelete, target: "/api/event/1/guests", body: `{"guests":["alice"]}`, event: futureEvent(),
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Some users are not in guests list")

	rec = serve("/api/event/:event_id/participants", RemoveParticipantsHandler(m), request{
		method: http.MethodDelete, target: "/api/event/1/participants", body: `{"participants":["alice","bob"]}`, event: futureEvent(),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "All users were successfully unregistered from event participants")
}

func TestMeHandlers(t *testing.T) {
	me := &model.User{ID: 5, Username: "alice"}
	roles := map[int]model.Role{}
	m := &fakeMembership{
		RoleOfFn: func(ctx context.Context, eventID, userID int) (model.Role, error) {
			return roles[userID], nil
		},
		AddGuestFn: func(ctx context.Context, eventID int, user model.User) error {
			switch roles[user.ID] {
			case model.RoleGuest:
				return fmt.Errorf("<%s> %w", user.Username, service.ErrAlreadyGuest)
			case model.RoleParticipant:
				return fmt.Errorf("<%s> %w", user.Username, service.ErrAlreadyParticipant)
			}
			roles[user.ID] = model.RoleGuest
			return nil
		},
		AddParticipantFn: func(ctx context.Context, eventID int, user model.User) error {
			return service.ErrPastEvent
		},
		RemoveGuestFn: func(ctx context.Context, eventID, userID int) error {
			if roles[userID] != model.RoleGuest {
				return service.ErrNotRegistered
			}
			delete(roles, userID)
			return nil
		},
	}
	path := "/api/event/:event_id/me_guest"
	do := func(method string, target string, h echo.HandlerFunc) (int, string) {
		rec := serve(path, h, request{method: method, target: target, current: me, event: futureEvent()})
		return rec.Code, rec.Body.String()
	}

	code, body := do(http.MethodGet, "/api/event/1/me_guest", MeGuestStatusHandler(m))
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "You are not registered as a guest")

	code, body = do(http.MethodPost, "/api/event/1/me_guest", MeGuestRegisterHandler(m))
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "Successfully register as a guest")

	code, body = do(http.MethodPost, "/api/event/1/me_guest", MeGuestRegisterHandler(m))
	require.Equal(t, http.StatusConflict, code)
	require.Contains(t, body, "You already registered as a guest")

	code, body = do(http.MethodGet, "/api/event/1/me_guest", MeParticipantStatusHandler(m))
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "You are registered as a guest")

	code, body = do(http.MethodPost, "/api/event/1/me_guest", MeParticipantRegisterHandler(m))
	require.Equal(t, http.StatusConflict, code)
	require.Contains(t, body, "You can not apply changes to past event")

	code, body = do(http.MethodDelete, "/api/event/1/me_guest", MeGuestUnregisterHandler(m))
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "Successfully unregister from guests")

	code, body = do(http.MethodDelete, "/api/event/1/me_guest", MeGuestUnregisterHandler(m))
	require.Equal(t, http.StatusNotFound, code)
	require.Contains(t, body, "You are not registered as a guest")

	roles[me.ID] = model.RoleParticipant
	code, body = do(http.MethodPost, "/api/event/1/me_guest", MeGuestRegisterHandler(m))
	require.Equal(t, http.StatusConflict, code)
	require.Contains(t, body, "You already registered as a participant")
}
