package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/api/metrics"
	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
)

type EventHandler struct {
	events ports.EventService
}

func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

type eventRequest struct {
	Title          string           `json:"title" validate:"required"`
	Description    string           `json:"description" validate:"required"`
	EventDate      domain.Date      `json:"eventDate"`
	StartTime      domain.TimeOfDay `json:"startTime"`
	EndTime        domain.TimeOfDay `json:"endTime"`
	Location       string           `json:"location" validate:"required"`
	EventType      domain.EventType `json:"eventType" validate:"required,oneof=PUBLIC PRIVATE"`
	InvitedUserIDs []uint           `json:"invitedUserIds"`
}

func (r eventRequest) toInput() ports.EventInput {
	return ports.EventInput{
		Title:          r.Title,
		Description:    r.Description,
		Location:       r.Location,
		EventDate:      r.EventDate,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		EventType:      r.EventType,
		InvitedUserIDs: r.InvitedUserIDs,
	}
}

type invitationRequest struct {
	EventID uint   `json:"eventId" validate:"required"`
	UserIDs []uint `json:"userIds" validate:"required,min=1"`
}

func (h *EventHandler) Create(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.events.Create(c.Request().Context(), rctx, req.toInput())
	if err != nil {
		return err
	}
	metrics.EventsCreatedTotal.WithLabelValues(string(event.EventType)).Inc()
	metrics.InvitationsSentTotal.Add(float64(len(event.Invitees)))
	// The creator is the organizer, so the full invited set comes back.
	return c.JSON(http.StatusCreated, toEventResponse(event, true))
}

func (h *EventHandler) GetAll(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	page, size := pageParams(c)
	events, err := h.events.GetAll(c.Request().Context(), rctx, page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponseList(events, rctx.Caller.UserID))
}

func (h *EventHandler) GetByID(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	event, err := h.events.GetByID(c.Request().Context(), rctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event, event.IsOrganizer(rctx.Caller.UserID)))
}

func (h *EventHandler) Update(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.events.Update(c.Request().Context(), rctx, id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event, true))
}

func (h *EventHandler) Delete(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.events.Delete(c.Request().Context(), rctx, id); err != nil {
		return err
	}
	return c.String(http.StatusOK, "Event deleted successfully")
}

func (h *EventHandler) GetAllPublic(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	events, err := h.events.GetAllPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponseList(events, rctx.Caller.UserID))
}

func (h *EventHandler) GetMyOrganized(c echo.Context) error {
	return h.listWith(c, h.events.GetMyOrganized)
}

func (h *EventHandler) GetMyInvitations(c echo.Context) error {
	return h.listWith(c, h.events.GetMyInvited)
}

func (h *EventHandler) GetUpcoming(c echo.Context) error {
	return h.listWith(c, h.events.GetUpcoming)
}

func (h *EventHandler) GetPast(c echo.Context) error {
	return h.listWith(c, h.events.GetPast)
}

func (h *EventHandler) GetToday(c echo.Context) error {
	return h.listWith(c, h.events.GetToday)
}

func (h *EventHandler) SearchByLocation(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	location := c.QueryParam("location")
	if location == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "location query parameter is required")
	}
	events, err := h.events.SearchByLocation(c.Request().Context(), rctx, location)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponseList(events, rctx.Caller.UserID))
}

func (h *EventHandler) Invite(c echo.Context) error {
	return h.changeInvitations(c, h.events.Invite)
}

func (h *EventHandler) RemoveInvitations(c echo.Context) error {
	return h.changeInvitations(c, h.events.Remove)
}

type listFunc func(ctx context.Context, rctx domain.RequestContext) ([]*domain.Event, error)

func (h *EventHandler) listWith(c echo.Context, list listFunc) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	events, err := list(c.Request().Context(), rctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponseList(events, rctx.Caller.UserID))
}

func (h *EventHandler) changeInvitations(c echo.Context, change func(ctx context.Context, rctx domain.RequestContext, in ports.InviteInput) (*domain.Event, error)) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}

	var req invitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := change(c.Request().Context(), rctx, ports.InviteInput{
		EventID: req.EventID,
		UserIDs: req.UserIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event, true))
}
