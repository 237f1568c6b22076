package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat acepta "" como csv
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename arma el nombre de descarga, ej. customers-2025-03-01.csv
func Filename(entity string, f Format, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", entity, now.Format("2006-01-02"), f)
}

// Table es una hoja: encabezado y filas. Las celdas pueden ser string, int, int64 o float64.
type Table struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// Write escribe la tabla en el formato pedido
func Write(w io.Writer, f Format, t Table) error {
	if f == FormatXLSX {
		return WriteXLSX(w, t)
	}
	return WriteCSV(w, t)
}

// WriteCSV escribe RFC 4180: los campos con coma, comillas o saltos de línea van entre comillas
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(t.Header))
	for _, row := range t.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = cellString(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX escribe una hoja con encabezado con estilo y columnas anchas
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Name
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range t.Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header %s: %w", cell, err)
		}

		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, colName, colName, 20); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", colName, err)
		}
	}

	for rowIdx, row := range t.Rows {
		for colIdx, v := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}
