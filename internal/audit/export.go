package audit

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const exportSheet = "Audit Log"

var exportHeaders = []string{"TIMESTAMP", "ACTION", "ENTITY", "ENTITY ID", "USER ID", "DETAILS", "CHANGES"}

// Export renders the filtered log and returns the file and a suggested name.
func (r *Recorder) Export(ctx context.Context, filter domain.AuditFilter, format string) ([]byte, string, error) {
	entries, err := r.Query(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	stamp := r.now().UTC().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := exportCSV(entries)
		return data, fmt.Sprintf("audit_log_%s.csv", stamp), err
	case FormatXLSX, "":
		data, err := exportExcel(entries)
		return data, fmt.Sprintf("audit_log_%s.xlsx", stamp), err
	default:
		return nil, "", apperror.BadRequest("unsupported export format: " + format)
	}
}

func exportRow(e domain.AuditEntry) []string {
	changes := ""
	if len(e.Changes) > 0 {
		raw, _ := json.Marshal(e.Changes)
		changes = string(raw)
	}
	return []string{
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Action,
		e.Entity.String(),
		e.EntityID,
		e.UserID,
		e.Details,
		changes,
	}
}

func exportCSV(entries []domain.AuditEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := w.Write(exportRow(e)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportExcel(entries []domain.AuditEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(exportSheet, "A1", endCell, headerStyle)

	for rowIdx, e := range entries {
		for colIdx, v := range exportRow(e) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	for i := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := 20.0
		if exportHeaders[i] == "DETAILS" || exportHeaders[i] == "CHANGES" {
			width = 48
		}
		f.SetColWidth(exportSheet, col, col, width)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
