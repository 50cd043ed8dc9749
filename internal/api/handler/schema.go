package handler

import (
	"time"

	"github.com/studytrack/tracker/internal/core/ports"
)

// errorResponse mirrors the envelope rendered by the API error handler.
type errorResponse struct {
	Error   string   `json:"error"`
	Reasons []string `json:"reasons,omitempty"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

// --- auth / users ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	ProfileText string `json:"profile_text"`
	RoleID      string `json:"role_id"`
}

func (r createUserRequest) toInput() ports.NewUserInput {
	return ports.NewUserInput{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		ProfileText: r.ProfileText,
		RoleID:      r.RoleID,
	}
}

type updateUserRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	ProfileText *string `json:"profile_text"`
	RoleID      *string `json:"role_id"`
	IsActive    *bool   `json:"is_active"`
}

func (r updateUserRequest) toPatch() ports.UserPatch {
	return ports.UserPatch{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		ProfileText: r.ProfileText,
		RoleID:      r.RoleID,
		IsActive:    r.IsActive,
	}
}

// --- sessions ---

type createSessionRequest struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

func (r createSessionRequest) toInput() ports.NewSessionInput {
	return ports.NewSessionInput{
		Name:      r.Name,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status,
	}
}

type updateSessionRequest struct {
	Name      *string    `json:"name"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status"`
}

func (r updateSessionRequest) toPatch() ports.SessionPatch {
	return ports.SessionPatch{
		Name:      r.Name,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status,
	}
}

type addMemberRequest struct {
	Role string `json:"role" validate:"max=50"`
}

// --- tasks ---

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	SessionID   string     `json:"session_id"`
	DocumentRef string     `json:"document_ref"`
}

func (r createTaskRequest) toInput() ports.NewTaskInput {
	return ports.NewTaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    r.Priority,
		Status:      r.Status,
		SessionID:   r.SessionID,
		DocumentRef: r.DocumentRef,
	}
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	SessionID   *string    `json:"session_id"`
	DocumentRef *string    `json:"document_ref"`
}

func (r updateTaskRequest) toPatch() ports.TaskPatch {
	return ports.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    r.Priority,
		Status:      r.Status,
		SessionID:   r.SessionID,
		DocumentRef: r.DocumentRef,
	}
}

// --- roles ---

type createRoleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"is_active"`
}

func (r createRoleRequest) toInput() ports.NewRoleInput {
	return ports.NewRoleInput{
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.Permissions,
		IsActive:    r.IsActive,
	}
}

type updateRoleRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Permissions *[]string `json:"permissions"`
	IsActive    *bool     `json:"is_active"`
}

func (r updateRoleRequest) toPatch() ports.RolePatch {
	return ports.RolePatch{
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.Permissions,
		IsActive:    r.IsActive,
	}
}

// --- notifications ---

type createNotificationRequest struct {
	Title            string `json:"title"`
	Message          string `json:"message"`
	UserID           string `json:"user_id"`
	NotificationType string `json:"notification_type"`
	IsRead           bool   `json:"is_read"`
}

func (r createNotificationRequest) toInput() ports.NewNotificationInput {
	return ports.NewNotificationInput{
		Title:       r.Title,
		Message:     r.Message,
		RecipientID: r.UserID,
		Type:        r.NotificationType,
		IsRead:      r.IsRead,
	}
}

type listNotificationsQuery struct {
	Limit       int  `query:"limit"        validate:"min=0,max=200"`
	IncludeRead bool `query:"include_read"`
}
