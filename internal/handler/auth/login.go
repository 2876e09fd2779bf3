// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"events-api/internal/dto"
	"events-api/internal/handler"
	"events-api/internal/middleware"
	"events-api/internal/model"
	"events-api/internal/service"

	"github.com/labstack/echo/v4"
)

// Accounts 由 service.Accounts 實作
type Accounts interface {
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	Create(ctx context.Context, in service.NewUser) (*model.User, error)
}

// Revoker 由 service.TokenManager 實作
type Revoker interface {
	Revoke(ctx context.Context, claims *service.Claims) error
}

// LoginHandler 使用 Username/Password 驗證並回傳存取令牌
// @Summary     登入使用者
// @Description 先嘗試 books 服務聯合登入，失敗時比對本地密碼
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} dto.LoginResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError "已登入"
// @Failure     404  {object} dto.HTTPError
// @Router      /login [post]
func LoginHandler(accounts Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		if u := middleware.CurrentUser(c); u != nil {
			return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("Already logged in as <%s>", u.Username))
		}

		var req dto.LoginRequest
		if err := handler.Bind(c, &req); err != nil {
			return err
		}

		user, token, err := accounts.Login(c.Request().Context(), req.Username, req.Password)
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("No user found with username <%s>", req.Username))
		}
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, dto.LoginResponse{
			Status:      http.StatusOK,
			Message:     fmt.Sprintf("Successfully logged in as <%s>", user.Username),
			AccessToken: token,
			TokenType:   "Bearer",
			Profile:     dto.NewUserFull(*user),
		})
	}
}

// SignupHandler 註冊新帳號；is_admin 一律忽略
// @Summary     註冊
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateUserRequest true "帳號資料"
// @Success     201  {object} dto.UserDetail
// @Failure     400  {object} dto.HTTPError
// @Failure     409  {object} dto.HTTPError "本地或 books 服務已有同名帳號"
// @Router      /signup [post]
func SignupHandler(accounts Accounts) echo.HandlerFunc {
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
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, dto.NewUserDetail(http.StatusCreated, *user))
	}
}

// LogoutHandler 撤銷目前的存取令牌
// @Summary     登出
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.MessageResponse
// @Failure     401 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /logout [post]
func LogoutHandler(tokens Revoker) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.CurrentClaims(c)
		if claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization required")
		}
		if err := tokens.Revoke(c.Request().Context(), claims); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Status: http.StatusOK, Message: "Logout success"})
	}
}
