package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/ok", func(c echo.Context) error {
		Logger(c).Info().Msg("inside")
		return c.NoContent(http.StatusOK)
	})
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	t.Run("generates request id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
		id := rec.Header().Get(HeaderRequestID)
		require.NotEmpty(t, id)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
		require.Equal(t, id, entry["request_id"])
		require.Equal(t, "info", entry["level"])
		require.EqualValues(t, 200, entry["status"])
		require.Contains(t, lines[0], `"message":"inside"`)
	})

	t.Run("honours incoming id and logs 4xx at warn", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		require.Equal(t, "warn", entry["level"])
		require.Equal(t, "abc-123", entry["request_id"])
		require.Equal(t, "/missing", entry["route"])
	})
}
