// File: internal/handler/users/create_user.go
package users

import (
	"net/http"
	"strings"

	"events-api/internal/dto"
	"events-api/internal/handler"
	"events-api/internal/service"

	"github.com/labstack/echo/v4"
)

// CreateUserHandler 管理員建立帳號（可指定 is_admin）
// @Summary     Create a new user
// @Description 建立新帳號 (Email 會自動轉小寫)；本地或 books 服務已有同名帳號時回傳 409
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateUserRequest true "帳號資料"
// @Success     201  {object} dto.UserDetail
// @Failure     400  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     409  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /user [post]
func CreateUserHandler(accounts Creator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.CreateUserRequest
		if err := handler.Bind(c, &req); err != nil {
			return err
		}
		if req.Email != nil {
			email := strings.ToLower(*req.Email)
			req.Email = &email
		}

		user, err := accounts.Create(c.Request().Context(), service.NewUser{
			Username:  req.Username,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			IsAdmin:   req.IsAdmin,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, dto.NewUserDetail(http.StatusCreated, *user))
	}
}
