package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/application/payroll"
)

// PayrollHandler corrida de nómina, consulta y comprobantes.
type PayrollHandler struct {
	uc *payroll.UseCase
}

// NewPayrollHandler construye el handler.
func NewPayrollHandler(uc *payroll.UseCase) *PayrollHandler {
	return &PayrollHandler{uc: uc}
}

// Run godoc
// @Summary      Liquidar nómina del período
// @Description  Horas de jornadas cerradas por tarifa horaria. Repetir la corrida reemplaza los valores.
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RunPayrollRequest  true  "period_start, period_end"
// @Success      200   {object}  dto.PayrollRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/payroll/run [post]
func (h *PayrollHandler) Run(c *fiber.Ctx) error {
	var in dto.RunPayrollRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Run(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Nómina de un período
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        period_start  query  string  true  "YYYY-MM-DD"
// @Param        period_end    query  string  true  "YYYY-MM-DD"
// @Success      200           {array}  dto.PayrollResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Router       /api/v1/payroll [get]
func (h *PayrollHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("period_start"), c.Query("period_end"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Payslip godoc
// @Summary      Comprobante de pago en PDF
// @Tags         payroll
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la liquidación"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/payroll/{id}/payslip [get]
func (h *PayrollHandler) Payslip(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.uc.Payslip(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, "application/pdf", fmt.Sprintf("payslip-%s.pdf", id), data)
}
