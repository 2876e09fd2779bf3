package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"events-api/internal/database"
	"events-api/internal/model"
	"events-api/internal/service"
	"events-api/internal/store"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserKey   = "user"
	ContextClaimsKey = "claims"
	ContextEventKey  = "event"
	ContextTargetKey = "target_user"
)

// 測試替換點
var (
	getUserByID       = store.GetUserByID
	getUserByUsername = store.GetUserByUsername
	getEventByID      = store.GetEventByID
	timeNow           = time.Now
)

// TokenVerifier 由 service.TokenManager 實作
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*service.Claims, error)
}

var errNoToken = errors.New("no token")

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", errNoToken
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	return parts[1], nil
}

// authenticate 驗證 token 並載入使用者；token 已撤銷或使用者已刪除都視為未登入
func authenticate(c echo.Context, db database.DB, tokens TokenVerifier) error {
	raw, err := bearerToken(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	claims, err := tokens.Verify(ctx, raw)
	if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenRevoked) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
	}
	if err != nil {
		return err
	}
	user, err := getUserByID(ctx, db, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusUnauthorized, "user no longer exists")
	}
	if err != nil {
		return err
	}
	c.Set(ContextUserKey, user)
	c.Set(ContextClaimsKey, claims)
	return nil
}

// RequireAuth 需要有效的 Bearer token
func RequireAuth(db database.DB, tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := authenticate(c, db, tokens)
			if errors.Is(err, errNoToken) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization required")
			}
			if err != nil {
				return err
			}
			return next(c)
		}
	}
}

// OptionalAuth 有帶 token 就載入使用者，token 無效時以匿名身分繼續
func OptionalAuth(db database.DB, tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := authenticate(c, db, tokens)
			var he *echo.HTTPError
			if err != nil && !errors.Is(err, errNoToken) && !errors.As(err, &he) {
				return err
			}
			return next(c)
		}
	}
}

// RequireAdmin 必須掛在 RequireAuth 之後
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization required")
		}
		if !user.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Admin account required")
		}
		return next(c)
	}
}

// LoadEvent 依 :event_id 載入活動
func LoadEvent(db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := strconv.Atoi(c.Param("event_id"))
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, "Event not found")
			}
			event, err := getEventByID(c.Request().Context(), db, id)
			if errors.Is(err, store.ErrNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Event not found")
			}
			if err != nil {
				return err
			}
			c.Set(ContextEventKey, event)
			return next(c)
		}
	}
}

// OwnerOrAdmin 必須掛在 RequireAuth 與 LoadEvent 之後
func OwnerOrAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, event := CurrentUser(c), CurrentEvent(c)
		if user == nil || event == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization required")
		}
		if !user.IsAdmin && user.ID != event.OwnerID {
			return echo.NewHTTPError(http.StatusForbidden, "Admin or owner account required")
		}
		return next(c)
	}
}

// NotPast 已結束的活動只允許 GET；掛在權限檢查之後，非 owner 先拿到 403
func NotPast(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		event := CurrentEvent(c)
		if event == nil {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		if c.Request().Method != http.MethodGet && event.Status(timeNow()) == model.StatusPast {
			return service.ErrPastEvent
		}
		return next(c)
	}
}

// LoadUser 依 :username 載入目標使用者
func LoadUser(db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := c.Param("username")
			user, err := getUserByUsername(c.Request().Context(), db, username)
			if errors.Is(err, store.ErrNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "User <"+username+"> not found")
			}
			if err != nil {
				return err
			}
			c.Set(ContextTargetKey, user)
			return next(c)
		}
	}
}

// AdminOrSelf 必須掛在 RequireAuth 與 LoadUser 之後
func AdminOrSelf(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, target := CurrentUser(c), TargetUser(c)
		if user == nil || target == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization required")
		}
		if !user.IsAdmin && user.ID != target.ID {
			return echo.NewHTTPError(http.StatusForbidden, "Admin or owner account required")
		}
		return next(c)
	}
}

// CurrentUser 未登入時回傳 nil
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(ContextUserKey).(*model.User)
	return u
}

func CurrentClaims(c echo.Context) *service.Claims {
	cl, _ := c.Get(ContextClaimsKey).(*service.Claims)
	return cl
}

func CurrentEvent(c echo.Context) *model.Event {
	e, _ := c.Get(ContextEventKey).(*model.Event)
	return e
}

func TargetUser(c echo.Context) *model.User {
	u, _ := c.Get(ContextTargetKey).(*model.User)
	return u
}
