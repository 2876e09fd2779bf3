// Package pagination builds the paged list envelope shared by list endpoints.
package pagination

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const MaxLimit = 100

var (
	ErrInvalidPage  = errors.New("invalid page number")
	ErrInvalidParam = errors.New("page and limit must be positive integers")
)

// Params page / limit 以外的查詢參數會原樣帶到 next / prev 連結
type Params struct {
	Page   int
	Limit  int
	Filter url.Values
}

// Offset 資料庫查詢用
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Parse 取出 page 與 limit，其餘參數留在 Filter
func Parse(query url.Values, defaultLimit int) (Params, error) {
	p := Params{Page: 1, Limit: defaultLimit, Filter: url.Values{}}
	for k, v := range query {
		switch k {
		case "page", "limit":
		default:
			p.Filter[k] = v
		}
	}

	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, ErrInvalidParam
		}
		p.Page = n
	}
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, ErrInvalidParam
		}
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p, nil
}

// Page 回應格式；Total 為 0 時只回傳 status 與 message
type Page[T any] struct {
	Status  int     `json:"status"`
	Message string  `json:"message,omitempty"`
	Page    string  `json:"page,omitempty"`
	Next    *string `json:"next"`
	Prev    *string `json:"prev"`
	Total   int     `json:"total"`
	Results []T     `json:"results"`
}

// Empty 沒有任何資料
type Empty struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Pages 總頁數，至少為 1
func Pages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

// Check 驗證頁碼落在 [1, pages]；total 為 0 時不檢查
func Check(p Params, total int) error {
	if total == 0 {
		return nil
	}
	if p.Page < 1 || p.Page > Pages(total, p.Limit) {
		return ErrInvalidPage
	}
	return nil
}

// Build 組出回應；呼叫前應先以 Check 確認頁碼
func Build[T any](p Params, total int, baseURL string, items []T) any {
	if total == 0 {
		return Empty{Status: http.StatusOK, Message: "Nothing to show"}
	}
	pages := Pages(total, p.Limit)
	if items == nil {
		items = []T{}
	}
	out := Page[T]{
		Status:  http.StatusOK,
		Page:    fmt.Sprintf("page %d of %d", p.Page, pages),
		Total:   total,
		Results: items,
	}
	if p.Page < pages {
		next := link(baseURL, p.Page+1, p.Limit, p.Filter)
		out.Next = &next
	}
	if p.Page > 1 {
		prev := link(baseURL, p.Page-1, p.Limit, p.Filter)
		out.Prev = &prev
	}
	return out
}

// link 參數依 key 排序，確保連結穩定
func link(baseURL string, page, limit int, filter url.Values) string {
	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteString("?page=")
	b.WriteString(strconv.Itoa(page))
	b.WriteString("&limit=")
	b.WriteString(strconv.Itoa(limit))

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range filter[k] {
			b.WriteByte('&')
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}
