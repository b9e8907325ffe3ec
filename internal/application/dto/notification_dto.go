package dto

import "time"

// CreateNotificationRequest envío de una notificación. Sin destinatarios ni roles = todos los usuarios activos.
type CreateNotificationRequest struct {
	Title        string     `json:"title" validate:"required,max=200"`
	Message      string     `json:"message" validate:"required,max=2000"`
	Type         string     `json:"type" validate:"omitempty,oneof=INFO WARNING ERROR SUCCESS"`
	Priority     string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	RecipientIDs []string   `json:"recipient_ids" validate:"omitempty,dive,uuid"`
	Roles        []string   `json:"roles" validate:"omitempty,dive,oneof=admin manager staff"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// NotificationResponse notificación enviada.
type NotificationResponse struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Type       string     `json:"type"`
	Priority   string     `json:"priority"`
	CreatedBy  string     `json:"created_by,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	Recipients int        `json:"recipients,omitempty"`
	Read       bool       `json:"read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}

// NotificationListResponse bandeja del usuario.
type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
