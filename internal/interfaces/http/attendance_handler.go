package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/astrobsm/ivanstamas-api/internal/application/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AttendanceHandler marcaciones de entrada/salida y sus consultas.
type AttendanceHandler struct {
	recorder *attendance.Recorder
	queries  *attendance.QueryUseCase
}

// NewAttendanceHandler construye el handler.
func NewAttendanceHandler(recorder *attendance.Recorder, queries *attendance.QueryUseCase) *AttendanceHandler {
	return &AttendanceHandler{recorder: recorder, queries: queries}
}

// Record godoc
// @Summary      Registrar entrada o salida
// @Description  action IN abre la jornada del día; OUT la cierra y calcula horas trabajadas.
// @Description  Un usuario con rol staff solo puede marcar para su propio staff_id.
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordAttendanceRequest  true  "staff_id, action"
// @Success      200   {object}  dto.RecordAttendanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/v1/attendance [post]
func (h *AttendanceHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordAttendanceRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if GetRole(c) == entity.RoleStaff && GetStaffID(c) != in.StaffID {
		return respondError(c, fmt.Errorf("%w: solo puede marcar su propia asistencia", domain.ErrForbidden))
	}
	rec, message, err := h.recorder.Record(c.UserContext(), attendance.RecordInput{
		StaffID:                in.StaffID,
		Action:                 in.Action,
		AuthMethod:             in.AuthMethod,
		FingerprintVerified:    in.FingerprintVerified,
		VerificationConfidence: in.VerificationConfidence,
		DeviceInfo:             in.DeviceInfo,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RecordAttendanceResponse{Message: message, Record: attendance.ToAttendanceResponse(rec)})
}

// List godoc
// @Summary      Listar jornadas
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        staff_id  query  string  false  "ID del staff"
// @Param        from      query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to        query  string  false  "Fecha final YYYY-MM-DD"
// @Param        status    query  string  false  "PRESENT | LATE | OVERTIME"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200       {object}  dto.AttendanceListResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/v1/attendance [get]
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	var in dto.AttendanceListRequest
	if err := bindQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	in.DefaultPage()
	out, err := h.queries.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar jornadas a Excel
// @Tags         attendance
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        staff_id  query  string  false  "ID del staff"
// @Param        from      query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to        query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200       {file}  binary
// @Router       /api/v1/attendance/export [get]
func (h *AttendanceHandler) Export(c *fiber.Ctx) error {
	var in dto.AttendanceListRequest
	if err := bindQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	data, err := h.queries.Export(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, xlsxContentType, "attendance.xlsx", data)
}

// ListByStaff godoc
// @Summary      Jornadas de un staff
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        staffId  path  string  true  "ID del staff"
// @Success      200      {array}  dto.AttendanceResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/v1/attendance/{staffId} [get]
func (h *AttendanceHandler) ListByStaff(c *fiber.Ctx) error {
	out, err := h.queries.ListByStaff(c.UserContext(), c.Params("staffId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// HoursWorked godoc
// @Summary      Horas trabajadas en un período
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        staffId   path   string  true  "ID del staff"
// @Param        duration  query  string  true  "YYYY-MM-DD:YYYY-MM-DD"
// @Success      200       {object}  dto.HoursWorkedResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/v1/hours-worked/{staffId} [get]
func (h *AttendanceHandler) HoursWorked(c *fiber.Ctx) error {
	from, to, err := attendance.ParsePeriod(c.Query("duration"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.queries.HoursWorked(c.UserContext(), c.Params("staffId"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// sendAttachment responde un archivo descargable.
func sendAttachment(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
