// Package export writes business hours to spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/hours"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/model"
)

// Columns of the weekly hours sheet.
var Columns = []string{"Day", "Status", "Opens", "Closes"}

// Workbook is a thin row-oriented wrapper around an excelize file.
type Workbook struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{file: excelize.NewFile()}
}

// AddSheet starts a new sheet and makes it current.
func (w *Workbook) AddSheet(name string) error {
	// Excel limit
	if len(name) > 31 {
		name = name[:31]
	}

	if w.currentSheet == "" {
		if err := w.file.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet %s: %w", name, err)
		}
	} else if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	w.currentSheet = name
	w.currentRow = 1
	return nil
}

// WriteHeader writes a bold header row.
func (w *Workbook) WriteHeader(columns []string) error {
	if err := w.WriteRow(toRow(columns)); err != nil {
		return err
	}

	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		start, _ := excelize.CoordinatesToCellName(1, w.currentRow-1)
		end, _ := excelize.CoordinatesToCellName(len(columns), w.currentRow-1)
		_ = w.file.SetCellStyle(w.currentSheet, start, end, style)
	}
	return nil
}

// WriteRow writes one data row to the current sheet.
func (w *Workbook) WriteRow(row []any) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	cell, err := excelize.CoordinatesToCellName(1, w.currentRow)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(w.currentSheet, cell, &row); err != nil {
		return err
	}
	w.currentRow++
	return nil
}

// Save writes the workbook to wr.
func (w *Workbook) Save(wr io.Writer) error {
	return w.file.Write(wr)
}

// SaveToFile writes the workbook to disk.
func (w *Workbook) SaveToFile(path string) error {
	return w.file.SaveAs(path)
}

// Close releases resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// WriteSchedule adds a sheet listing every day of the week with its
// status and 12-hour opening times.
func (w *Workbook) WriteSchedule(sheet string, s model.WeeklySchedule) error {
	if err := w.AddSheet(sheet); err != nil {
		return err
	}
	if err := w.WriteHeader(Columns); err != nil {
		return err
	}
	for _, d := range model.AllDays {
		if err := w.WriteRow(ScheduleRow(s, d)); err != nil {
			return fmt.Errorf("write %s: %w", d, err)
		}
	}
	return nil
}

// ScheduleRow renders one day of s as a sheet row.
func ScheduleRow(s model.WeeklySchedule, d model.Day) []any {
	win, open := s.Window(d)
	if !open {
		return []any{d.Title(), "Closed", "", ""}
	}
	return []any{d.Title(), "Open", label(win.StartTime), label(win.EndTime)}
}

func label(v string) string {
	if v == "" {
		return ""
	}
	return hours.Label(v)
}

func toRow(values []string) []any {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
