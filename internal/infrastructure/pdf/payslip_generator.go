// Package pdf genera el comprobante de pago (payslip) de una liquidación de nómina.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa               │  PAYSLIP + Período          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADO: Nombre + código + departamento                   │
//	│  BANCO: Banco + cuenta                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Horas | Tarifa | Importe                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL NETO                                                  │
//	│  FOOTER: QR con la referencia de la liquidación              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/astrobsm/ivanstamas-api/internal/application/payroll"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02 Jan 2006"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ payroll.PayslipGenerator = (*PayslipGenerator)(nil)

// PayslipGenerator implementa payroll.PayslipGenerator usando Maroto v2.
type PayslipGenerator struct {
	companyName string
	currency    string
}

// NewPayslipGenerator construye el generador con el nombre de la empresa emisora.
func NewPayslipGenerator(companyName string) *PayslipGenerator {
	return &PayslipGenerator{companyName: companyName, currency: "NGN"}
}

// GeneratePayslip genera el PDF y devuelve sus bytes.
func (g *PayslipGenerator) GeneratePayslip(_ context.Context, p *entity.Payroll, staff *entity.Staff) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Payslip "+staff.Name, true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(staff))
	m.AddRows(bankRow(staff))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.earningsRow(p))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(p))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(p))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar payslip: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *PayslipGenerator) headerRow(p *entity.Payroll) core.Row {
	period := p.PeriodStart.Format(dateLayout) + " - " + p.PeriodEnd.Format(dateLayout)
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("PAYSLIP", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Period: "+period, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func employeeRow(s *entity.Staff) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EMPLOYEE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(s.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Code: %s   |   Department: %s   |   Role: %s",
				s.StaffCode, nonEmpty(s.Department, "-"), nonEmpty(s.Role, "-"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func bankRow(s *entity.Staff) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Bank: %s   |   Account: %s",
				nonEmpty(s.BankName, "-"), maskAccount(s.AccountNumber),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 6, align.Left),
		h("Hours", 2, align.Right),
		h("Rate", 2, align.Right),
		h("Amount", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *PayslipGenerator) earningsRow(p *entity.Payroll) core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New("Hours worked", props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(p.HoursWorked.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(g.money(p.HourlyRate), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(g.money(p.Salary), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func (g *PayslipGenerator) totalRow(p *entity.Payroll) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("NET PAY:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(g.money(p.Salary), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func footerRow(p *entity.Payroll) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr("payroll:"+p.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Reference: "+p.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("This payslip is computed from recorded attendance hours.", props.Text{
				Size: 7, Top: 10, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *PayslipGenerator) money(d decimal.Decimal) string {
	return g.currency + " " + formatMoney(d)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// maskAccount deja visibles solo los últimos 4 dígitos.
func maskAccount(acc string) string {
	if acc == "" {
		return "-"
	}
	if len(acc) <= 4 {
		return acc
	}
	return strings.Repeat("*", len(acc)-4) + acc[len(acc)-4:]
}

// formatMoney separa miles con coma y deja 2 decimales.
// Ej: 1234567.5 → "1,234,567.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}
