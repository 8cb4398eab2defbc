package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
)

type HistoryHandler struct {
	history ports.HistoryService
}

func NewHistoryHandler(history ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

type activityResponse struct {
	ID               uint             `json:"id"`
	UserID           string           `json:"userId"`
	UserGroup        string           `json:"userGroup,omitempty"`
	ActivityType     string           `json:"activityType"`
	ActivityTypeName string           `json:"activityTypeName"`
	Username         string           `json:"username"`
	DeviceID         string           `json:"deviceId,omitempty"`
	SessionID        string           `json:"sessionId,omitempty"`
	IPAddress        string           `json:"ipAddress,omitempty"`
	EntityType       string           `json:"entityType,omitempty"`
	EntityID         string           `json:"entityId,omitempty"`
	EntityName       string           `json:"entityName,omitempty"`
	Description      string           `json:"description,omitempty"`
	OldValues        string           `json:"oldValues,omitempty"`
	NewValues        string           `json:"newValues,omitempty"`
	CreatedBy        string           `json:"createdBy,omitempty"`
	CreatedAt        domain.Timestamp `json:"createdAt"`
}

func toActivityResponse(r *domain.ActivityRecord) activityResponse {
	return activityResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		UserGroup:        r.UserGroup,
		ActivityType:     string(r.ActivityType),
		ActivityTypeName: r.ActivityType.Name(),
		Username:         r.Username,
		DeviceID:         r.DeviceID,
		SessionID:        r.SessionID,
		IPAddress:        r.IPAddress,
		EntityType:       r.EntityType,
		EntityID:         r.EntityID,
		EntityName:       r.EntityName,
		Description:      r.Description,
		OldValues:        r.OldValues,
		NewValues:        r.NewValues,
		CreatedBy:        r.CreatedBy,
		CreatedAt:        domain.Timestamp(r.CreatedAt),
	}
}

type loginRecordResponse struct {
	ID          uint              `json:"id"`
	UserID      string            `json:"userId"`
	Token       string            `json:"userToken,omitempty"`
	UserType    string            `json:"userType,omitempty"`
	RequestFrom string            `json:"requestFrom,omitempty"`
	RequestIP   string            `json:"requestIp,omitempty"`
	DeviceInfo  string            `json:"deviceInfo,omitempty"`
	LoginTime   domain.Timestamp  `json:"loginTime"`
	LogoutTime  *domain.Timestamp `json:"logoutTime,omitempty"`
	LoginStatus string            `json:"loginStatus"`
	CreatedAt   domain.Timestamp  `json:"createdAt"`
}

func toLoginRecordResponse(r *domain.LoginRecord) loginRecordResponse {
	resp := loginRecordResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Token:       r.Token,
		UserType:    r.UserType,
		RequestFrom: r.RequestFrom,
		RequestIP:   r.RequestIP,
		DeviceInfo:  r.DeviceInfo,
		LoginTime:   domain.Timestamp(r.LoginTime),
		LoginStatus: r.LoginStatus,
		CreatedAt:   domain.Timestamp(r.CreatedAt),
	}
	if r.LogoutTime != nil {
		t := domain.Timestamp(*r.LogoutTime)
		resp.LogoutTime = &t
	}
	return resp
}

type passwordChangeResponse struct {
	ID          uint             `json:"id"`
	UserID      string           `json:"userId"`
	ChangedBy   string           `json:"changedBy"`
	ChangeDate  domain.Timestamp `json:"changeDate"`
	OldPassword string           `json:"oldPassword,omitempty"`
	NewPassword string           `json:"newPassword,omitempty"`
	CreatedAt   domain.Timestamp `json:"createdAt"`
}

func toPasswordChangeResponse(r *domain.PasswordRecord) passwordChangeResponse {
	return passwordChangeResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		ChangedBy:   r.ChangedBy,
		ChangeDate:  domain.Timestamp(r.ChangeDate),
		OldPassword: r.OldHash,
		NewPassword: r.NewHash,
		CreatedAt:   domain.Timestamp(r.CreatedAt),
	}
}

func (h *HistoryHandler) MyActivities(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	records, err := h.history.MyActivities(c.Request().Context(), rctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityResponseList(records))
}

func (h *HistoryHandler) ActivitiesByUsername(c echo.Context) error {
	records, err := h.history.ActivitiesByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityResponseList(records))
}

func (h *HistoryHandler) ActivitiesByType(c echo.Context) error {
	records, err := h.history.ActivitiesByType(c.Request().Context(), c.Param("activityTypeCode"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityResponseList(records))
}

func (h *HistoryHandler) MyLogins(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	records, err := h.history.MyLogins(c.Request().Context(), rctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoginRecordResponseList(records))
}

func (h *HistoryHandler) LoginsByUserID(c echo.Context) error {
	records, err := h.history.LoginsByUserID(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoginRecordResponseList(records))
}

func (h *HistoryHandler) MyPasswordChanges(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	records, err := h.history.MyPasswordChanges(c.Request().Context(), rctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPasswordChangeResponseList(records))
}

func (h *HistoryHandler) PasswordChangesByUserID(c echo.Context) error {
	records, err := h.history.PasswordChangesByUserID(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPasswordChangeResponseList(records))
}

func toActivityResponseList(records []*domain.ActivityRecord) []activityResponse {
	out := make([]activityResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toActivityResponse(r))
	}
	return out
}

func toLoginRecordResponseList(records []*domain.LoginRecord) []loginRecordResponse {
	out := make([]loginRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toLoginRecordResponse(r))
	}
	return out
}

func toPasswordChangeResponseList(records []*domain.PasswordRecord) []passwordChangeResponse {
	out := make([]passwordChangeResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toPasswordChangeResponse(r))
	}
	return out
}
