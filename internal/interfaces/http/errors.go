package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/domain"
)

// validate valida los tags `validate` de los DTO. Los campos se reportan con su nombre json/query.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// validationError errores de campo devueltos por el validador.
type validationError struct {
	fields map[string]string
}

func (e *validationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for f, tag := range e.fields {
		parts = append(parts, f+": "+tag)
	}
	return "datos inválidos (" + strings.Join(parts, ", ") + ")"
}

// validateStruct ejecuta el validador y convierte sus errores en validationError.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &validationError{fields: fields}
}

// bindBody parsea el cuerpo JSON y lo valida.
func bindBody(c *fiber.Ctx, in any) error {
	if err := c.BodyParser(in); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	if n, ok := in.(normalizer); ok {
		n.Normalize()
	}
	return validateStruct(in)
}

// normalizer lo implementan los DTOs que ajustan mayúsculas/espacios antes de validar.
type normalizer interface {
	Normalize()
}

// bindQuery parsea el query string y lo valida.
func bindQuery(c *fiber.Ctx, in any) error {
	if err := c.QueryParser(in); err != nil {
		return fmt.Errorf("%w: parámetros inválidos", domain.ErrInvalidInput)
	}
	return validateStruct(in)
}

// pageQuery lee limit/offset con los valores por defecto de listados.
func pageQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Orden relevante: los errores específicos antes que los genéricos.
var errorMappings = []errorMapping{
	{domain.ErrStaffNotFound, fiber.StatusNotFound, "STAFF_NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrAlreadyClockedIn, fiber.StatusConflict, "ALREADY_CLOCKED_IN"},
	{domain.ErrNoOpenAttendance, fiber.StatusConflict, "NO_OPEN_ATTENDANCE"},
	{domain.ErrInvalidTimeRange, fiber.StatusConflict, "INVALID_TIME_RANGE"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrBusy, fiber.StatusServiceUnavailable, "BUSY"},
}

// respondError traduce errores de dominio a HTTP. Lo no mapeado es 500 y se registra.
func respondError(c *fiber.Ctx, err error) error {
	var verr *validationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:   "VALIDATION",
			Detail: verr.Error(),
			Fields: verr.fields,
		})
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.status == fiber.StatusServiceUnavailable {
				c.Set(fiber.HeaderRetryAfter, "1")
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Detail: err.Error()})
		}
	}
	zerolog.Ctx(c.UserContext()).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Detail: "error interno del servidor"})
}
