package users

import (
	"net/http"

	"events-api/internal/dto"
	"events-api/internal/middleware"

	"github.com/labstack/echo/v4"
)

// GetUserHandler 由 LoadUser 載入目標使用者
// @Summary     Get a user by username
// @Tags        users
// @Produce     json
// @Param       username path     string true "使用者名稱"
// @Success     200      {object} dto.UserDetail
// @Failure     403      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /user/{username} [get]
func GetUserHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, dto.NewUserDetail(http.StatusOK, *middleware.TargetUser(c)))
	}
}
