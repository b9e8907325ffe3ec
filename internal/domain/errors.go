package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrStaffNotFound      = errors.New("staff no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// Asistencia
	ErrAlreadyClockedIn = errors.New("ya existe una entrada abierta para este staff")
	ErrNoOpenAttendance = errors.New("no hay entrada abierta para registrar la salida")
	ErrInvalidTimeRange = errors.New("la hora de salida es anterior a la de entrada")

	// ErrBusy: otro proceso tiene el bloqueo del recurso; el cliente puede reintentar.
	ErrBusy = errors.New("recurso ocupado, intente de nuevo")
)
