// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"events-api/internal/cache"
	"events-api/internal/database"

	"github.com/labstack/echo/v4"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	Status int `json:"status" example:"200"`
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     503 {object} dto.HTTPError
// @Router      /ping [get]
func PingHandler(db database.DB, cc cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unhealthy").SetInternal(err)
		}
		if err := cc.Set(ctx, "ping", "pong", time.Minute).Err(); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "cache unhealthy").SetInternal(err)
		}
		return c.JSON(http.StatusOK, PingResponse{Status: http.StatusOK, Message: "pong"})
	}
}
