package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(Middleware)
	e.GET("/api/event/:event_id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/api/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/event/:event_id", "204"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/event/7", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/event/:event_id", "204"))
	require.Equal(t, before+1, after)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fail", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/fail", "418")))
	require.NotZero(t, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestBooksObserverAndHandler(t *testing.T) {
	Init()
	Init()
	ObserveBooksCall("user", "ok")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `events_api_books_calls_total{op="user",outcome="ok"}`))
	require.Contains(t, body, "go_goroutines")
}
