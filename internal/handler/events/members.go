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
	"events-api/internal/service"

	"github.com/labstack/echo/v4"
)

// roster 收斂 guest 與 participant 兩份名單的差異
type roster struct {
	plural string
	list   func(ctx context.Context, db database.Querier, eventID int) ([]model.User, error)
	add    func(m Membership) func(ctx context.Context, eventID int, usernames []string) ([]model.User, error)
	remove func(m Membership) func(ctx context.Context, eventID int, usernames []string) error
	names  func(c echo.Context) ([]string, error)
	body   func(users []model.User) any
}

var guests = roster{
	plural: "guests",
	list:   func(ctx context.Context, db database.Querier, id int) ([]model.User, error) { return listGuests(ctx, db, id) },
	add:    func(m Membership) func(context.Context, int, []string) ([]model.User, error) { return m.AddGuests },
	remove: func(m Membership) func(context.Context, int, []string) error { return m.RemoveGuests },
	names: func(c echo.Context) ([]string, error) {
		var req dto.GuestsRequest
		err := handler.Bind(c, &req)
		return req.Guests, err
	},
	body: func(users []model.User) any {
		return dto.GuestsResponse{Status: http.StatusOK, Guests: dto.NewUserShortList(users)}
	},
}

var participants = roster{
	plural: "participants",
	list:   func(ctx context.Context, db database.Querier, id int) ([]model.User, error) { return listParticipants(ctx, db, id) },
	add:    func(m Membership) func(context.Context, int, []string) ([]model.User, error) { return m.AddParticipants },
	remove: func(m Membership) func(context.Context, int, []string) error { return m.RemoveParticipants },
	names: func(c echo.Context) ([]string, error) {
		var req dto.ParticipantsRequest
		err := handler.Bind(c, &req)
		return req.Participants, err
	},
	body: func(users []model.User) any {
		return dto.ParticipantsResponse{Status: http.StatusOK, Participants: dto.NewUserShortList(users)}
	},
}

func (r roster) get(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := r.list(c.Request().Context(), db, middleware.CurrentEvent(c).ID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, r.body(users))
	}
}

func (r roster) post(m Membership) echo.HandlerFunc {
	return func(c echo.Context) error {
		names, err := r.names(c)
		if err != nil {
			return err
		}
		if _, err := r.add(m)(c.Request().Context(), middleware.CurrentEvent(c).ID, names); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{
			Status:  http.StatusOK,
			Message: "All users were successfully registered for event " + r.plural,
		})
	}
}

func (r roster) delete(m Membership) echo.HandlerFunc {
	return func(c echo.Context) error {
		names, err := r.names(c)
		if err != nil {
			return err
		}
		err = r.remove(m)(c.Request().Context(), middleware.CurrentEvent(c).ID, names)
		if errors.Is(err, service.ErrNotRegistered) {
			return echo.NewHTTPError(http.StatusNotFound, "Some users are not in "+r.plural+" list")
		}
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{
			Status:  http.StatusOK,
			Message: "All users were successfully unregistered from event " + r.plural,
		})
	}
}

// ListGuestsHandler 公開的 guest 名單
// @Summary     List event guests
// @Tags        guests
// @Produce     json
// @Param       event_id path     int true "活動 ID"
// @Success     200      {object} dto.GuestsResponse
// @Failure     404      {object} dto.HTTPError
// @Router      /event/{event_id}/guests [get]
func ListGuestsHandler(db database.DB) echo.HandlerFunc { return guests.get(db) }

// AddGuestsHandler 整批加入 guest；任一使用者不存在或已報名則全部不寫入
// @Summary     Add event guests
// @Tags        guests
// @Accept      json
// @Produce     json
// @Param       event_id path     int               true "活動 ID"
// @Param       body     body     dto.GuestsRequest true "username 清單"
// @Success     200      {object} dto.MessageResponse
// @Failure     400      {object} dto.HTTPError
// @Failure     403      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError "使用者不存在"
// @Failure     409      {object} dto.HTTPError "已報名或活動已結束"
// @Security    ApiKeyAuth
// @Router      /event/{event_id}/guests [post]
func AddGuestsHandler(m Membership) echo.HandlerFunc { return guests.post(m) }

// RemoveGuestsHandler 整批移除 guest；任一使用者不在名單內則全部不移除
// @Summary     Remove event guests
// @Tags        guests
// @Accept      json
// @Produce     json
// @Param       event_id path     int               true "活動 ID"
// @Param       body     body     dto.GuestsRequest true "username 清單"
// @Success     200      {object} dto.MessageResponse
// @Failure     403      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Failure     409      {object} dto.HTTPError "活動已結束"
// @Security    ApiKeyAuth
// @Router      /event/{event_id}/guests [delete]
func RemoveGuestsHandler(m Membership) echo.HandlerFunc { return guests.delete(m) }

// ListParticipantsHandler 公開的 participant 名單
// @Summary     List event participants
// @Tags        participants
// @Produce     json
// @Param       event_id path     int true "活動 ID"
// @Success     200      {object} dto.ParticipantsResponse
// @Failure     404      {object} dto.HTTPError
// @Router      /event/{event_id}/participants [get]
func ListParticipantsHandler(db database.DB) echo.HandlerFunc { return participants.get(db) }

// AddParticipantsHandler 整批加入 participant，並同步其 books 服務著作為 artifact
// @Summary     Add event participants
// @Tags        participants
// @Accept      json
// @Produce     json
// @Param       event_id path     int                     true "活動 ID"
// @Param       body     body     dto.ParticipantsRequest true "username 清單"
// @Success     200      {object} dto.MessageResponse
// @Failure     400      {object} dto.HTTPError
// @Failure     403      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError "使用者不存在"
// @Failure     409      {object} dto.HTTPError "已報名或活動已結束"
// @Security    ApiKeyAuth
// @Router      /event/{event_id}/participants [post]
func AddParticipantsHandler(m Membership) echo.HandlerFunc { return participants.post(m) }

// RemoveParticipantsHandler 整批移除 participant
// @Summary     Remove event participants
// @Tags        participants
// @Accept      json
// @Produce     json
// @Param       event_id path     int                     true "活動 ID"
// @Param       body     body     dto.ParticipantsRequest true "username 清單"
// @Success     200      {object} dto.MessageResponse
// @Failure     403      {object} dto.HTTPError
// @Failure     404      {object} dto.HTTPError
// @Failure     409      {object} dto.HTTPError "活動已結束"
// @Security    ApiKeyAuth
// @Router      /event/{event_id}/participants [delete]
func RemoveParticipantsHandler(m Membership) echo.HandlerFunc { return participants.delete(m) }
