// Package excel genera los reportes XLSX de asistencia e inventario con excelize.
package excel

import (
	"fmt"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/application/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/application/inventory"
	"github.com/xuri/excelize/v2"
)

var (
	_ attendance.ReportExporter = (*Exporter)(nil)
	_ inventory.ReportExporter  = (*Exporter)(nil)
)

const (
	AttendanceSheet = "Attendance"
	InventorySheet  = "Inventory"
)

// Exporter implementa los exportadores de reportes.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

var attendanceHeaders = []interface{}{
	"Staff ID", "Staff", "Date", "Time In", "Time Out", "Hours Worked",
	"Overtime", "Status", "Auth Method", "Fingerprint Verified",
}

var inventoryHeaders = []interface{}{
	"SKU", "Name", "Warehouse", "Unit", "Quantity", "Min Stock",
	"Max Stock", "Unit Price", "Total Value", "Status",
}

// AttendanceWorkbook una fila por jornada.
func (e *Exporter) AttendanceWorkbook(rows []dto.AttendanceResponse) ([]byte, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		var hours interface{} = ""
		if r.HoursWorked != nil {
			hours = round2(*r.HoursWorked)
		}
		data = append(data, []interface{}{
			r.StaffID, r.StaffName, r.Date, formatTime(r.TimeIn), formatTime(r.TimeOut),
			hours, round2(r.OvertimeHours), r.Status, r.AuthMethod, r.FingerprintVerified,
		})
	}
	return writeSheet(AttendanceSheet, attendanceHeaders, data)
}

// InventoryWorkbook una fila por ítem; cantidades numéricas, valores monetarios en texto exacto.
func (e *Exporter) InventoryWorkbook(rows []dto.InventoryItemResponse) ([]byte, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{
			r.SKU, r.Name, r.WarehouseID, r.UnitMeasure, r.Quantity, r.MinStock,
			r.MaxStock, r.UnitPrice.StringFixed(2), r.TotalValue, r.Status,
		})
	}
	return writeSheet(InventorySheet, inventoryHeaders, data)
}

func writeSheet(sheet string, headers []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("encabezados: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("estilo: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("estilo encabezados: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+2, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
