package users

import (
	"net/http"

	"events-api/internal/database"
	"events-api/internal/dto"
	"events-api/internal/handler"
	"events-api/internal/pagination"
	"events-api/internal/store"

	"github.com/labstack/echo/v4"
)

// ListUsersHandler 使用者列表
// @Summary     List users
// @Description 分頁列出使用者，可依 username 子字串與 is_admin 篩選
// @Tags        users
// @Produce     json
// @Param       page     query int    false "頁碼" default(1)
// @Param       limit    query int    false "每頁筆數" default(5)
// @Param       username query string false "username 子字串（不分大小寫）"
// @Param       is_admin query bool   false "是否為管理員"
// @Param       order_by query string false "id | username | first_name | last_name"
// @Param       order    query string false "asc | desc"
// @Success     200 {object} pagination.Page[dto.UserShort]
// @Failure     400 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError "頁碼超出範圍"
// @Router      /user [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := pagination.Parse(c.QueryParams(), defaultLimit)
		if err != nil {
			return err
		}
		isAdmin, err := handler.OptionalBool(c, "is_admin")
		if err != nil {
			return err
		}
		orderBy, order, err := handler.Ordering(c, store.ValidUserOrder)
		if err != nil {
			return err
		}
		filter := store.UserFilter{
			Username: c.QueryParam("username"),
			IsAdmin:  isAdmin,
			OrderBy:  orderBy,
			Order:    order,
		}

		ctx := c.Request().Context()
		total, err := countUsers(ctx, db, filter)
		if err != nil {
			return err
		}
		if err := pagination.Check(p, total); err != nil {
			return err
		}
		if total == 0 {
			return c.JSON(http.StatusOK, pagination.Build[dto.UserShort](p, 0, "", nil))
		}
		list, err := listUsers(ctx, db, filter, p.Limit, p.Offset())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, pagination.Build(p, total, handler.BaseURL(c), dto.NewUserShortList(list)))
	}
}
