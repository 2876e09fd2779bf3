package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// BaseURL 分頁連結用，不含 query string
func BaseURL(c echo.Context) string {
	req := c.Request()
	return c.Scheme() + "://" + req.Host + req.URL.Path
}

// OptionalInt 空字串回傳 nil
func OptionalInt(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "<"+name+"> must be an integer")
	}
	return &n, nil
}

func OptionalBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "<"+name+"> must be a boolean")
	}
	return &b, nil
}

// Ordering 驗證 order_by 與 order；valid 為各列表的欄位白名單
func Ordering(c echo.Context, valid func(string) bool) (orderBy, order string, err error) {
	orderBy = c.QueryParam("order_by")
	if orderBy != "" && !valid(orderBy) {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "<"+orderBy+"> is not a valid order_by value")
	}
	order = strings.ToLower(c.QueryParam("order"))
	if order != "" && order != "asc" && order != "desc" {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "order must be asc or desc")
	}
	return orderBy, order, nil
}
