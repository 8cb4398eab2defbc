package handler

import (
	"time"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// Response shapes shared by several handlers. Field names are part of the
// wire contract; dates render as yyyy-MM-dd, times as HH:mm:ss and
// timestamps as ISO-8601 with microseconds.

type permissionResponse struct {
	ID          uint   `json:"id"`
	Permission  string `json:"permission"`
	Description string `json:"description,omitempty"`
}

type roleResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Permissions []permissionResponse `json:"permissions,omitempty"`
}

type userResponse struct {
	ID          uint             `json:"id"`
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	FullName    string           `json:"fullName"`
	PhoneNumber string           `json:"phoneNumber,omitempty"`
	DateOfBirth *domain.Date     `json:"dateOfBirth,omitempty"`
	Age         int              `json:"age"`
	Active      bool             `json:"active"`
	Role        roleResponse     `json:"role"`
	CreatedAt   domain.Timestamp `json:"createdAt"`
	UpdatedAt   domain.Timestamp `json:"updatedAt"`
}

// userBasicResponse is the compact shape embedded in event payloads.
type userBasicResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type eventResponse struct {
	ID                uint                `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description,omitempty"`
	EventDate         domain.Date         `json:"eventDate"`
	StartTime         domain.TimeOfDay    `json:"startTime"`
	EndTime           domain.TimeOfDay    `json:"endTime"`
	Location          string              `json:"location"`
	EventType         domain.EventType    `json:"eventType"`
	Organizer         userBasicResponse   `json:"organizer"`
	InvitedUsersCount int                 `json:"invitedUsersCount"`
	InvitedUsers      []userBasicResponse `json:"invitedUsers,omitempty"`
	CreatedAt         domain.Timestamp    `json:"createdAt"`
	UpdatedAt         domain.Timestamp    `json:"updatedAt"`
}

func toPermissionResponse(p *domain.Permission) permissionResponse {
	return permissionResponse{ID: p.ID, Permission: p.Name, Description: p.Description}
}

// toRoleResponse renders a role. The permission set is included only when
// withPermissions is set, mirroring the plain and /with-permissions reads.
func toRoleResponse(r *domain.Role, withPermissions bool) roleResponse {
	out := roleResponse{ID: r.ID, Name: r.Name, Description: r.Description}
	if withPermissions {
		out.Permissions = make([]permissionResponse, 0, len(r.Permissions))
		for i := range r.Permissions {
			out.Permissions = append(out.Permissions, toPermissionResponse(&r.Permissions[i]))
		}
	}
	return out
}

func toUserResponse(u *domain.User) userResponse {
	out := userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.Phone,
		Age:         u.Age(time.Now()),
		Active:      u.Active,
		Role:        toRoleResponse(&u.Role, false),
		CreatedAt:   domain.Timestamp(u.CreatedAt),
		UpdatedAt:   domain.Timestamp(u.UpdatedAt),
	}
	if !u.DateOfBirth.IsZero() {
		dob := u.DateOfBirth
		out.DateOfBirth = &dob
	}
	return out
}

func toUserBasicResponse(u *domain.User) userBasicResponse {
	return userBasicResponse{ID: u.ID, Username: u.Username, FullName: u.FullName, Email: u.Email}
}

// toEventResponse renders an event. The invited-user set is expanded only
// for the organizer; everyone else gets the count.
func toEventResponse(e *domain.Event, withInvitees bool) eventResponse {
	out := eventResponse{
		ID:                e.ID,
		Title:             e.Title,
		Description:       e.Description,
		EventDate:         e.EventDate,
		StartTime:         e.StartTime,
		EndTime:           e.EndTime,
		Location:          e.Location,
		EventType:         e.EventType,
		Organizer:         toUserBasicResponse(&e.Organizer),
		InvitedUsersCount: len(e.Invitees),
		CreatedAt:         domain.Timestamp(e.CreatedAt),
		UpdatedAt:         domain.Timestamp(e.UpdatedAt),
	}
	if withInvitees {
		out.InvitedUsers = make([]userBasicResponse, 0, len(e.Invitees))
		for i := range e.Invitees {
			out.InvitedUsers = append(out.InvitedUsers, toUserBasicResponse(&e.Invitees[i]))
		}
	}
	return out
}

func toEventResponseList(events []*domain.Event, callerID uint) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e, e.IsOrganizer(callerID)))
	}
	return out
}
