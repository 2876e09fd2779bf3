package events

import (
	"context"
	"errors"
	"net/http"

	"events-api/internal/dto"
	"events-api/internal/middleware"
	"events-api/internal/model"
	"events-api/internal/service"

	"github.com/labstack/echo/v4"
)

func message(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, dto.MessageResponse{Status: http.StatusOK, Message: msg})
}

// roleStatus 回報目前使用者在活動中的身分；noun 為此端點關注的身分
func roleStatus(m Membership, noun model.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, err := m.RoleOf(c.Request().Context(), middleware.CurrentEvent(c).ID, middleware.CurrentUser(c).ID)
		if err != nil {
			return err
		}
		if role == model.RoleNone {
			return message(c, "You are not registered as a "+string(noun))
		}
		return message(c, "You are registered as a "+string(role))
	}
}

func register(add func(ctx context.Context, eventID int, user model.User) error, role model.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := add(c.Request().Context(), middleware.CurrentEvent(c).ID, *middleware.CurrentUser(c))
		switch {
		case errors.Is(err, service.ErrAlreadyGuest):
			return echo.NewHTTPError(http.StatusConflict, "You already registered as a guest")
		case errors.Is(err, service.ErrAlreadyParticipant):
			return echo.NewHTTPError(http.StatusConflict, "You already registered as a participant")
		case err != nil:
			return err
		}
		return message(c, "Successfully register as a "+string(role))
	}
}

func unregister(remove func(ctx context.Context, eventID, userID int) error, role model.Role, plural string) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := remove(c.Request().Context(), middleware.CurrentEvent(c).ID, middleware.CurrentUser(c).ID)
		if errors.Is(err, service.ErrNotRegistered) {
			return echo.NewHTTPError(http.StatusNotFound, "You are not registered as a "+string(role))
		}
		if err != nil {
			return err
		}
		return message(c, "Successfully unregister from "+plural)
	}
}

// MeGuestStatusHandler 查詢自己在活動中的身分
// @Summary     My guest registration status
// @Tags        me
// @Produce     json
// @Param       event_id path     int true "活動 ID"
// @Success     200      {object} dto.MessageResponse
// @Failure     401      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /event/{event_id}/me_guest [get]
func MeGuestStatusHandler(m Membership) echo.HandlerFunc {
	return roleStatus(m, model.RoleGuest)
}

// MeGuestRegisterHandler 以 guest 身分報名；已是 participant 時回傳 409
// @Summary     Register myself as a guest
// @Tags        me
// @Produce     json
// @Param       event_id path     int true "活動 ID"
// @Success     200      {object} dto.MessageResponse
// @Failure     401      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Failure     409      {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /event/{event_id}/me_guest [post]
func MeGuestRegisterHandler(m Membership) echo.HandlerFunc {
	return register(m.AddGuest, model.RoleGuest)
}

// MeGuestUnregisterHandler 取消 guest 報名
// @Summary     Unregister myself from guests
// @Tags        me
// @Produce     json
// @Param       event_id path     int true "活動 ID"
// @Success     200      {object} dto.MessageResponse
// @Failure     401      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Failure     409      {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /event/{event_id}/me_guest [delete]
func MeGuestUnregisterHandler(m Membership) echo.HandlerFunc {
	return unregister(m.RemoveGuest, model.RoleGuest, "guests")
}

// MeParticipantStatusHandler 查詢自己在活動中的身分
// @Summary     My participant registration status
// @Tags        me
// @Produce     json
// @Param       event_id path     int true "活動 ID"
// @Success     200      {object} dto.MessageResponse
// @Failure     401      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /event/{event_id}/me_participant [get]
func MeParticipantStatusHandler(m Membership) echo.HandlerFunc {
	return roleStatus(m, model.RoleParticipant)
}

// MeParticipantRegisterHandler 以 participant 身分報名，並把自己在 books 服務的第一本書掛到活動
// @Summary     Register myself as a participant
// @Tags        me
// @Produce     json
// @Param       event_id path     int true "活動 ID"
// @Success     200      {object} dto.MessageResponse
// @Failure     401      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Failure     409      {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /event/{event_id}/me_participant [post]
func MeParticipantRegisterHandler(m Membership) echo.HandlerFunc {
	return register(m.AddParticipant, model.RoleParticipant)
}

// MeParticipantUnregisterHandler 取消 participant 報名；已掛上的 artifact 保留
// @Summary     Unregister myself from participants
// @Tags        me
// @Produce     json
// @Param       event_id path     int true "活動 ID"
// @Success     200      {object} dto.MessageResponse
// @Failure     401      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Failure     409      {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /event/{event_id}/me_participant [delete]
func MeParticipantUnregisterHandler(m Membership) echo.HandlerFunc {
	return unregister(m.RemoveParticipant, model.RoleParticipant, "participants")
}
