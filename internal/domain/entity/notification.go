package entity

import "time"

const (
	NotificationTypeInfo    = "INFO"
	NotificationTypeWarning = "WARNING"
	NotificationTypeError   = "ERROR"
	NotificationTypeSuccess = "SUCCESS"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Notification mensaje interno. Cada destinatario tiene su propio estado de lectura.
type Notification struct {
	ID        string
	Title     string
	Message   string
	Type      string
	Priority  string
	CreatedBy string // vacío = generada por el sistema
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// UserNotification vista de una notificación para un destinatario.
type UserNotification struct {
	Notification
	UserID string
	ReadAt *time.Time
}
