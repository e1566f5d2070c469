// Package render turns report shapes into downloadable files.
package render

import (
	"fmt"
	"io"
	"time"

	"github.com/sangkips/sales-api/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain; charset=utf-8"

	excelDateFormat = "yyyy-mm-dd"
	dataFillColor   = "D3D3D3"
	defaultSheet    = "Sheet1"
)

type workbookStyles struct {
	header int
	data   int
	date   int
}

// WriteWorkbook encodes wb as an .xlsx file. Header rows are bold, data rows
// are shaded light gray and date cells use the yyyy-mm-dd format.
func WriteWorkbook(w io.Writer, wb report.Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return err
	}

	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet, styles); err != nil {
			return fmt.Errorf("write sheet %q: %w", sheet.Name, err)
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}

	fill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{dataFillColor}}
	s.data, err = f.NewStyle(&excelize.Style{Fill: fill})
	if err != nil {
		return s, fmt.Errorf("data style: %w", err)
	}

	dateFormat := excelDateFormat
	s.date, err = f.NewStyle(&excelize.Style{Fill: fill, CustomNumFmt: &dateFormat})
	if err != nil {
		return s, fmt.Errorf("date style: %w", err)
	}
	return s, nil
}

func writeSheet(f *excelize.File, sheet report.Sheet, styles workbookStyles) error {
	row := 1

	if len(sheet.Header) > 0 {
		for col, title := range sheet.Header {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, title); err != nil {
				return err
			}
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(sheet.Header), row)
		if err := f.SetCellStyle(sheet.Name, first, last, styles.header); err != nil {
			return err
		}
		row++
	}

	for _, values := range sheet.Rows {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, cellValue(value)); err != nil {
				return err
			}

			style := styles.data
			if _, ok := value.(time.Time); ok {
				style = styles.date
			}
			if err := f.SetCellStyle(sheet.Name, cell, cell, style); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}

// cellValue converts report values into types excelize stores natively.
// Decimals become numbers when a float64 holds them exactly; otherwise the
// exact decimal text is written so large totals keep every digit.
func cellValue(v any) any {
	switch val := v.(type) {
	case decimal.Decimal:
		f, exact := val.Float64()
		if !exact && !decimal.NewFromFloat(f).Equal(val) {
			return val.String()
		}
		return f
	case time.Time:
		return val.UTC()
	default:
		return v
	}
}
