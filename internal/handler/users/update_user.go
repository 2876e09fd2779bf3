// File: internal/handler/users/update_user.go
package users

import (
	"net/http"
	"strings"

	"events-api/internal/database"
	"events-api/internal/dto"
	"events-api/internal/handler"
	"events-api/internal/middleware"

	"github.com/labstack/echo/v4"
)

// UpdateUserHandler 部分更新使用者
// @Summary     Update a user
// @Description 只更新有帶的欄位。不可修改自己的 is_admin；不可修改他人的 username 與 password；password 只能設定一次
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       username path     string                true "使用者名稱"
// @Param       body     body     dto.UpdateUserRequest true "要更新的欄位"
// @Success     200      {object} dto.UserDetail
// @Failure     400      {object} dto.HTTPError "未知欄位或格式錯誤"
// @Failure     403      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Failure     409      {object} dto.HTTPError "username 重複或密碼已設定"
// @Security    ApiKeyAuth
// @Router      /user/{username} [patch]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.UpdateUserRequest
		if err := handler.DecodeStrict(c, &req); err != nil {
			return err
		}

		current, target := middleware.CurrentUser(c), middleware.TargetUser(c)
		self := current.ID == target.ID
		switch {
		case req.IsAdmin != nil && self:
			return echo.NewHTTPError(http.StatusForbidden, "You can`t change admin status for yourself")
		case req.Username != nil && !self:
			return echo.NewHTTPError(http.StatusForbidden, "You can`t change username for other user")
		case req.Password != nil && !self:
			return echo.NewHTTPError(http.StatusForbidden, "You can`t change password for other user")
		}

		updated := *target
		if req.Username != nil {
			updated.Username = *req.Username
		}
		if req.FirstName != nil {
			updated.FirstName = req.FirstName
		}
		if req.LastName != nil {
			updated.LastName = req.LastName
		}
		if req.Email != nil {
			email := strings.ToLower(*req.Email)
			updated.Email = &email
		}
		if req.IsAdmin != nil {
			updated.IsAdmin = *req.IsAdmin
		}

		var hash string
		if req.Password != nil {
			h, err := hashPassword(*req.Password)
			if err != nil {
				return err
			}
			hash = h
		}

		ctx := c.Request().Context()
		err := withTx(ctx, db, func(q database.Querier) error {
			if err := updateUser(ctx, q, &updated); err != nil {
				return err
			}
			if req.Password == nil {
				return nil
			}
			if err := setUserPassword(ctx, q, updated.ID, hash); err != nil {
				return err
			}
			updated.PasswordHash = &hash
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.NewUserDetail(http.StatusOK, updated))
	}
}
