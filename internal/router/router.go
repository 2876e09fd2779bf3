// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"events-api/internal/cache"
	"events-api/internal/database"
	"events-api/internal/handler"
	"events-api/internal/handler/auth"
	"events-api/internal/handler/events"
	"events-api/internal/handler/users"
	"events-api/internal/metrics"
	"events-api/internal/middleware"
)

// Tokens 由 service.TokenManager 實作
type Tokens interface {
	middleware.TokenVerifier
	auth.Revoker
}

// Deps 路由需要的外部依賴
type Deps struct {
	DB         database.DB
	Cache      cache.Cache
	Tokens     Tokens
	Accounts   auth.Accounts
	Membership events.Membership
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	requireAuth := middleware.RequireAuth(d.DB, d.Tokens)
	optionalAuth := middleware.OptionalAuth(d.DB, d.Tokens)
	loadEvent := middleware.LoadEvent(d.DB)

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 登入、註冊、登出
	api.POST("/login", auth.LoginHandler(d.Accounts), optionalAuth)
	api.POST("/signup", auth.SignupHandler(d.Accounts))
	api.POST("/logout", auth.LogoutHandler(d.Tokens), requireAuth)

	// 使用者
	api.GET("/user", users.ListUsersHandler(d.DB))
	api.POST("/user", users.CreateUserHandler(d.Accounts), requireAuth, middleware.RequireAdmin)

	self := []echo.MiddlewareFunc{requireAuth, middleware.LoadUser(d.DB), middleware.AdminOrSelf}
	api.GET("/user/:username", users.GetUserHandler(), self...)
	api.PATCH("/user/:username", users.UpdateUserHandler(d.DB), self...)
	api.DELETE("/user/:username", users.DeleteUserHandler(d.DB), self...)

	// 活動
	api.GET("/event", events.ListEventsHandler(d.DB))
	api.POST("/event", events.CreateEventHandler(d.DB), requireAuth)

	// group 掛 middleware 會額外註冊 Any 路由，這裡逐條指定
	owner := []echo.MiddlewareFunc{requireAuth, loadEvent, middleware.OwnerOrAdmin, middleware.NotPast}
	member := []echo.MiddlewareFunc{requireAuth, loadEvent, middleware.NotPast}

	apiEvent := api.Group("/event/:event_id")
	apiEvent.GET("", events.GetEventHandler(d.DB), loadEvent)
	apiEvent.PATCH("", events.UpdateEventHandler(d.DB), owner...)
	apiEvent.DELETE("", events.DeleteEventHandler(d.DB), owner...)

	// 名單：GET 公開，異動限 owner 或 admin
	apiEvent.GET("/guests", events.ListGuestsHandler(d.DB), loadEvent)
	apiEvent.POST("/guests", events.AddGuestsHandler(d.Membership), owner...)
	apiEvent.DELETE("/guests", events.RemoveGuestsHandler(d.Membership), owner...)
	apiEvent.GET("/participants", events.ListParticipantsHandler(d.DB), loadEvent)
	apiEvent.POST("/participants", events.AddParticipantsHandler(d.Membership), owner...)
	apiEvent.DELETE("/participants", events.RemoveParticipantsHandler(d.Membership), owner...)

	// 自行報名
	apiEvent.GET("/me_guest", events.MeGuestStatusHandler(d.Membership), member...)
	apiEvent.POST("/me_guest", events.MeGuestRegisterHandler(d.Membership), member...)
	apiEvent.DELETE("/me_guest", events.MeGuestUnregisterHandler(d.Membership), member...)
	apiEvent.GET("/me_participant", events.MeParticipantStatusHandler(d.Membership), member...)
	apiEvent.POST("/me_participant", events.MeParticipantRegisterHandler(d.Membership), member...)
	apiEvent.DELETE("/me_participant", events.MeParticipantUnregisterHandler(d.Membership), member...)

	api.GET("/where_i_participant", events.WhereIParticipantHandler(d.DB), requireAuth)
	api.GET("/where_i_guest", events.WhereIGuestHandler(d.DB), requireAuth)
	api.GET("/my_events", events.MyEventsHandler(d.DB), requireAuth)
}
