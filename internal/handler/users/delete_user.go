package users

import (
	"fmt"
	"net/http"

	"events-api/internal/database"
	"events-api/internal/dto"
	"events-api/internal/middleware"

	"github.com/labstack/echo/v4"
)

// DeleteUserHandler 不可刪除自己；擁有的活動一併刪除
// @Summary     Delete a user
// @Tags        users
// @Produce     json
// @Param       username path     string true "使用者名稱"
// @Success     200      {object} dto.MessageResponse
// @Failure     403      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /user/{username} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		current, target := middleware.CurrentUser(c), middleware.TargetUser(c)
		if current.ID == target.ID {
			return echo.NewHTTPError(http.StatusForbidden, "Sorry, but you can`t delete yourself")
		}
		if err := deleteUser(c.Request().Context(), db, target.ID); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{
			Status:  http.StatusOK,
			Message: fmt.Sprintf("User <%s> deleted", target.Username),
		})
	}
}
