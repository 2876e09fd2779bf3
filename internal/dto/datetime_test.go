package dto

import (
	"encoding/json"
	"testing"
	"time"

	"events-api/internal/model"

	"github.com/stretchr/testify/require"
)

func TestDateTime(t *testing.T) {
	want := time.Date(2030, 1, 2, 18, 30, 0, 0, time.UTC)
	for _, in := range []string{
		`"2030-01-02 18:30"`,
		`"2030-01-02T18:30"`,
		`"2030-01-02T18:30:00Z"`,
		`"2030-01-02T20:30:00+02:00"`,
	} {
		var d DateTime
		require.NoError(t, json.Unmarshal([]byte(in), &d), in)
		require.True(t, want.Equal(d.Time), in)
	}

	var d DateTime
	require.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &d))
	require.Error(t, json.Unmarshal([]byte(`12`), &d))

	out, err := json.Marshal(DateTime{want})
	require.NoError(t, err)
	require.JSONEq(t, `"2030-01-02T18:30:00Z"`, string(out))
}

func TestEventMapping(t *testing.T) {
	now := time.Date(2030, 1, 2, 19, 0, 0, 0, time.UTC)
	e := model.Event{
		ID:           3,
		Title:        "Go meetup",
		DtStart:      now.Add(-time.Hour),
		DtEnd:        now.Add(time.Hour),
		OwnerID:      1,
		Owner:        &model.User{ID: 1, Username: "owner"},
		Guests:       []model.User{{ID: 2, Username: "guest"}},
		Participants: nil,
		Artifacts:    []model.Artifact{{ID: 9, URL: "http://books.local/books/1/"}},
	}

	full := NewEventFull(e, now)
	require.Equal(t, "current", full.Status)
	require.Equal(t, "owner", full.Owner.Username)
	require.Len(t, full.Guests, 1)
	require.NotNil(t, full.Participants)
	require.Empty(t, full.Participants)
	require.Equal(t, "http://books.local/books/1/", full.Artifacts[0].URL)

	raw, err := json.Marshal(full)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"participants":[]`)

	e.Owner = nil
	short := NewEventShort(e, now)
	require.Equal(t, UserShort{ID: 1}, short.Owner)
}

func TestUserMapping(t *testing.T) {
	hash := "secret-hash"
	u := model.User{ID: 1, Username: "alice", PasswordHash: &hash, IsAdmin: true}
	raw, err := json.Marshal(NewUserFull(u))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "secret-hash")
	require.Equal(t, []UserShort{{ID: 1, Username: "alice"}}, NewUserShortList([]model.User{u}))
}
