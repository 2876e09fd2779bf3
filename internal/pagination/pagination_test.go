package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse(url.Values{}, 20)
	require.NoError(t, err)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 20, p.Limit)
	require.Equal(t, 0, p.Offset())

	p, err = Parse(url.Values{"page": {"3"}, "limit": {"5"}, "status": {"past"}}, 20)
	require.NoError(t, err)
	require.Equal(t, 3, p.Page)
	require.Equal(t, 5, p.Limit)
	require.Equal(t, 10, p.Offset())
	require.Equal(t, url.Values{"status": {"past"}}, p.Filter)

	p, err = Parse(url.Values{"limit": {"1000"}}, 20)
	require.NoError(t, err)
	require.Equal(t, MaxLimit, p.Limit)

	for _, q := range []url.Values{
		{"page": {"x"}},
		{"limit": {"x"}},
		{"limit": {"0"}},
		{"limit": {"-1"}},
	} {
		_, err := Parse(q, 20)
		require.ErrorIs(t, err, ErrInvalidParam, q.Encode())
	}

	// page 範圍在知道總數後才檢查
	p, err = Parse(url.Values{"page": {"0"}}, 20)
	require.NoError(t, err)
	require.ErrorIs(t, Check(p, 10), ErrInvalidPage)
}

func TestPages(t *testing.T) {
	require.Equal(t, 1, Pages(0, 5))
	require.Equal(t, 1, Pages(5, 5))
	require.Equal(t, 2, Pages(6, 5))
	require.Equal(t, 3, Pages(11, 5))
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check(Params{Page: 7, Limit: 5}, 0))
	require.NoError(t, Check(Params{Page: 1, Limit: 5}, 11))
	require.NoError(t, Check(Params{Page: 3, Limit: 5}, 11))
	require.ErrorIs(t, Check(Params{Page: 4, Limit: 5}, 11), ErrInvalidPage)
	require.ErrorIs(t, Check(Params{Page: 0, Limit: 5}, 11), ErrInvalidPage)
}

func TestBuild(t *testing.T) {
	base := "http://localhost:8080/api/event"
	filter := url.Values{"title": {"go talk"}, "order": {"desc"}}

	t.Run("empty", func(t *testing.T) {
		out := Build[int](Params{Page: 1, Limit: 5}, 0, base, nil)
		require.Equal(t, Empty{Status: 200, Message: "Nothing to show"}, out)
	})

	t.Run("first page", func(t *testing.T) {
		out := Build(Params{Page: 1, Limit: 5, Filter: filter}, 11, base, []int{1, 2, 3, 4, 5}).(Page[int])
		require.Equal(t, "page 1 of 3", out.Page)
		require.Nil(t, out.Prev)
		require.NotNil(t, out.Next)
		require.Equal(t, base+"?page=2&limit=5&order=desc&title=go+talk", *out.Next)
		require.Equal(t, 11, out.Total)
		require.Len(t, out.Results, 5)
	})

	t.Run("middle page", func(t *testing.T) {
		out := Build(Params{Page: 2, Limit: 5}, 11, base, []int{6}).(Page[int])
		require.Equal(t, base+"?page=1&limit=5", *out.Prev)
		require.Equal(t, base+"?page=3&limit=5", *out.Next)
	})

	t.Run("last page", func(t *testing.T) {
		out := Build(Params{Page: 3, Limit: 5}, 11, base, []int{11}).(Page[int])
		require.Equal(t, "page 3 of 3", out.Page)
		require.Nil(t, out.Next)
		require.NotNil(t, out.Prev)
	})

	t.Run("single page", func(t *testing.T) {
		out := Build[int](Params{Page: 1, Limit: 5}, 2, base, nil).(Page[int])
		require.Nil(t, out.Next)
		require.Nil(t, out.Prev)
		require.NotNil(t, out.Results)
	})
}
