package events

import (
	"net/http"

	"events-api/internal/database"
	"events-api/internal/dto"
	"events-api/internal/handler"
	"events-api/internal/middleware"
	"events-api/internal/model"
	"events-api/internal/pagination"
	"events-api/internal/store"

	"github.com/labstack/echo/v4"
)

// parseFilter 讀取共用的查詢參數；defaultStatus 為空時不限狀態
func parseFilter(c echo.Context, defaultStatus model.Status) (store.EventFilter, error) {
	f := store.EventFilter{Title: c.QueryParam("title"), Now: timeNow()}

	raw := c.QueryParam("status")
	switch {
	case raw != "":
		s, ok := model.ParseStatus(raw)
		if !ok {
			return f, echo.NewHTTPError(http.StatusBadRequest, "status must be one of past, current, future")
		}
		f.Status = &s
	case defaultStatus != "":
		f.Status = &defaultStatus
	}

	var err error
	if f.OwnerID, err = handler.OptionalInt(c, "owner_id"); err != nil {
		return f, err
	}
	if f.GuestID, err = handler.OptionalInt(c, "guest_id"); err != nil {
		return f, err
	}
	if f.ParticipantID, err = handler.OptionalInt(c, "participant_id"); err != nil {
		return f, err
	}
	if f.OrderBy, f.Order, err = handler.Ordering(c, store.ValidEventOrder); err != nil {
		return f, err
	}
	return f, nil
}

// respond 計數、檢查頁碼、查詢並組出分頁回應
func respond(c echo.Context, db database.DB, p pagination.Params, f store.EventFilter) error {
	ctx := c.Request().Context()
	total, err := countEvents(ctx, db, f)
	if err != nil {
		return err
	}
	if err := pagination.Check(p, total); err != nil {
		return err
	}
	if total == 0 {
		return c.JSON(http.StatusOK, pagination.Build[dto.EventShort](p, 0, "", nil))
	}
	list, err := listEvents(ctx, db, f, p.Limit, p.Offset())
	if err != nil {
		return err
	}
	if err := attachOwners(ctx, db, list); err != nil {
		return err
	}
	items := dto.NewEventShortList(list, f.Now)
	return c.JSON(http.StatusOK, pagination.Build(p, total, handler.BaseURL(c), items))
}

// ListEventsHandler 活動列表，預設只列出未開始的活動
// @Summary     List events
// @Tags        events
// @Produce     json
// @Param       page           query int    false "頁碼" default(1)
// @Param       limit          query int    false "每頁筆數" default(20)
// @Param       status         query string false "past | current | future" default(future)
// @Param       title          query string false "標題子字串（不分大小寫）"
// @Param       owner_id       query int    false "owner id"
// @Param       guest_id       query int    false "guest id"
// @Param       participant_id query int    false "participant id"
// @Param       order_by       query string false "id | title | dt_start | dt_end | status" default(dt_start)
// @Param       order          query string false "asc | desc" default(asc)
// @Success     200 {object} pagination.Page[dto.EventShort]
// @Failure     400 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError "頁碼超出範圍"
// @Router      /event [get]
func ListEventsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := pagination.Parse(c.QueryParams(), defaultLimit)
		if err != nil {
			return err
		}
		f, err := parseFilter(c, model.StatusFuture)
		if err != nil {
			return err
		}
		return respond(c, db, p, f)
	}
}

// scope 將列表限定在目前使用者相關的活動
type scope func(f *store.EventFilter, userID int)

func ownedBy(f *store.EventFilter, userID int)       { f.OwnerID = &userID }
func guestOf(f *store.EventFilter, userID int)       { f.GuestID = &userID }
func participantOf(f *store.EventFilter, userID int) { f.ParticipantID = &userID }

func mine(db database.DB, apply scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := pagination.Parse(c.QueryParams(), defaultLimit)
		if err != nil {
			return err
		}
		f, err := parseFilter(c, "")
		if err != nil {
			return err
		}
		apply(&f, middleware.CurrentUser(c).ID)
		return respond(c, db, p, f)
	}
}

// MyEventsHandler 目前使用者擁有的活動
// @Summary     Events owned by me
// @Tags        me
// @Produce     json
// @Param       page   query int    false "頁碼" default(1)
// @Param       limit  query int    false "每頁筆數" default(20)
// @Param       status query string false "past | current | future"
// @Success     200 {object} pagination.Page[dto.EventShort]
// @Failure     401 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /my_events [get]
func MyEventsHandler(db database.DB) echo.HandlerFunc {
	return mine(db, ownedBy)
}

// WhereIGuestHandler 目前使用者以 guest 身分報名的活動
// @Summary     Events where I am a guest
// @Tags        me
// @Produce     json
// @Param       page   query int    false "頁碼" default(1)
// @Param       limit  query int    false "每頁筆數" default(20)
// @Param       status query string false "past | current | future"
// @Success     200 {object} pagination.Page[dto.EventShort]
// @Failure     401 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /where_i_guest [get]
func WhereIGuestHandler(db database.DB) echo.HandlerFunc {
	return mine(db, guestOf)
}

// WhereIParticipantHandler 目前使用者以 participant 身分報名的活動
// @Summary     Events where I am a participant
// @Tags        me
// @Produce     json
// @Param       page   query int    false "頁碼" default(1)
// @Param       limit  query int    false "每頁筆數" default(20)
// @Param       status query string false "past | current | future"
// @Success     200 {object} pagination.Page[dto.EventShort]
// @Failure     401 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /where_i_participant [get]
func WhereIParticipantHandler(db database.DB) echo.HandlerFunc {
	return mine(db, participantOf)
}
