package events

import (
	"context"
	"errors"
	"net/http"

	"events-api/internal/database"
	"events-api/internal/dto"
	"events-api/internal/handler"
	"events-api/internal/middleware"
	"events-api/internal/model"
	"events-api/internal/store"

	"github.com/labstack/echo/v4"
)

var errDatesOrder = echo.NewHTTPError(http.StatusBadRequest, "dt_start must not be later than dt_end")

func detail(ctx context.Context, c echo.Context, db database.DB, status int, e *model.Event) error {
	if err := loadEventDetails(ctx, db, e); err != nil {
		return err
	}
	return c.JSON(status, dto.NewEventDetail(status, *e, timeNow()))
}

func duplicateTitle(err error) error {
	if errors.Is(err, store.ErrDuplicate) {
		return echo.NewHTTPError(http.StatusConflict, "Event already exists")
	}
	return err
}

// CreateEventHandler 建立活動，owner 為目前使用者
// @Summary     Create an event
// @Description 標題不可重複；不可建立已結束的活動
// @Tags        events
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateEventRequest true "活動資料"
// @Success     201  {object} dto.EventDetail
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     409  {object} dto.HTTPError "標題重複"
// @Security    ApiKeyAuth
// @Router      /event [post]
func CreateEventHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.CreateEventRequest
		if err := handler.Bind(c, &req); err != nil {
			return err
		}

		e := &model.Event{
			Title:   req.Title,
			Summary: req.Summary,
			DtStart: req.DtStart.Time,
			DtEnd:   req.DtEnd.Time,
			OwnerID: middleware.CurrentUser(c).ID,
		}
		if e.DtStart.After(e.DtEnd) {
			return errDatesOrder
		}
		if e.Status(timeNow()) == model.StatusPast {
			return echo.NewHTTPError(http.StatusBadRequest, "You can not create past event")
		}

		ctx := c.Request().Context()
		created, err := createEvent(ctx, db, e)
		if err != nil {
			return duplicateTitle(err)
		}
		return detail(ctx, c, db, http.StatusCreated, created)
	}
}

// GetEventHandler 活動完整資料
// @Summary     Get an event
// @Tags        events
// @Produce     json
// @Param       event_id path     int true "活動 ID"
// @Success     200      {object} dto.EventDetail
// @Failure     404      {object} dto.HTTPError
// @Router      /event/{event_id} [get]
func GetEventHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		e := *middleware.CurrentEvent(c)
		return detail(c.Request().Context(), c, db, http.StatusOK, &e)
	}
}

// UpdateEventHandler 部分更新活動
// @Summary     Update an event
// @Description 只接受 title、summary、dt_start、dt_end；其他欄位回傳 400
// @Tags        events
// @Accept      json
// @Produce     json
// @Param       event_id path     int                    true "活動 ID"
// @Param       body     body     dto.UpdateEventRequest true "要更新的欄位"
// @Success     200      {object} dto.EventDetail
// @Failure     400      {object} dto.HTTPError
// @Failure     403      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Failure     409      {object} dto.HTTPError "標題重複或活動已結束"
// @Security    ApiKeyAuth
// @Router      /event/{event_id} [patch]
func UpdateEventHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.UpdateEventRequest
		if err := handler.DecodeStrict(c, &req); err != nil {
			return err
		}

		e := *middleware.CurrentEvent(c)
		if req.Title != nil {
			e.Title = *req.Title
		}
		if req.Summary != nil {
			e.Summary = req.Summary
		}
		if req.DtStart != nil {
			e.DtStart = req.DtStart.Time
		}
		if req.DtEnd != nil {
			e.DtEnd = req.DtEnd.Time
		}
		if e.DtStart.After(e.DtEnd) {
			return errDatesOrder
		}

		ctx := c.Request().Context()
		if err := updateEvent(ctx, db, &e); err != nil {
			return duplicateTitle(err)
		}
		return detail(ctx, c, db, http.StatusOK, &e)
	}
}

// DeleteEventHandler 刪除活動，guest / participant / artifact 關聯一併刪除
// @Summary     Delete an event
// @Tags        events
// @Produce     json
// @Param       event_id path     int true "活動 ID"
// @Success     200      {object} dto.MessageResponse
// @Failure     403      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Failure     409      {object} dto.HTTPError "活動已結束"
// @Security    ApiKeyAuth
// @Router      /event/{event_id} [delete]
func DeleteEventHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := deleteEvent(c.Request().Context(), db, middleware.CurrentEvent(c).ID); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Status: http.StatusOK, Message: "Event deleted"})
	}
}
