package report

import (
	"autorecruiter/internal/components/assert"
	"autorecruiter/internal/components/chrono"
	"autorecruiter/internal/components/telemetry"
	"autorecruiter/internal/jobs"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const (
	report_writer_empty_sheet = "writer.empty-sheet"
	report_writer_written     = "writer.written"
)

const (
	globalSheet = "Global"
	rowHeight   = 32
	tableStyle  = "TableStyleMedium2"
	// DateLayout is how a report's date appears in its filename.
	DateLayout = "20060102"
)

// ErrNoListings is returned when there is nothing at all to put in a report.
var ErrNoListings = errors.New("no job listings to generate a report from")

type Writer struct {
	tel  telemetry.API
	time chrono.TimeAPI
}

func NewWriter(tel telemetry.API, time chrono.TimeAPI) Writer {
	assert.NotNil(tel)
	assert.NotNil(time)
	return Writer{
		tel:  telemetry.NewScopedAPI("report", tel),
		time: time,
	}
}

// Filename is the path of the report written today for the given base name.
func (w Writer) Filename(dir, base string) string {
	date := w.time.Now().In(chrono.Eastern()).Format(DateLayout)
	return filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx", base, date))
}

// Write creates an xlsx workbook with the global collection on the first sheet
// followed by a sheet for every search, it returns the path of the workbook.
func (w Writer) Write(dir, base string, results jobs.Results, global jobs.Collection) (string, error) {
	if len(global) == 0 {
		return "", ErrNoListings
	}

	f := excelize.NewFile()
	defer f.Close()

	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return "", fmt.Errorf("create cell style: %w", err)
	}

	names := newNamer()
	defaultSheet := f.GetSheetName(0)
	err = f.SetSheetName(defaultSheet, globalSheet)
	if err != nil {
		return "", fmt.Errorf("rename default sheet: %w", err)
	}
	globalName := names.sheet(globalSheet)
	err = writeSheet(f, globalName, names.table(globalName), globalColumns, global.Sorted(), style)
	if err != nil {
		return "", err
	}

	for _, result := range results {
		if len(result.Collection) == 0 {
			w.tel.ReportWarning(report_writer_empty_sheet, result.Board, result.Title)
			continue
		}
		sheet := names.sheet(SheetName(result.Board, result.Title))
		_, err = f.NewSheet(sheet)
		if err != nil {
			return "", fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		err = writeSheet(f, sheet, names.table(sheet), searchColumns, result.Collection.Sorted(), style)
		if err != nil {
			return "", err
		}
	}
	f.SetActiveSheet(0)

	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return "", err
	}
	path := w.Filename(dir, base)
	err = f.SaveAs(path)
	if err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}

	w.tel.ReportCount(report_writer_written, int64(len(global)))
	return path, nil
}

func writeSheet(f *excelize.File, sheet, table string, columns []column, listings []jobs.Listing, style int) error {
	wrap := func(err error) error {
		return fmt.Errorf("write sheet %s: %w", sheet, err)
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col.title()

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return wrap(err)
		}
		err = f.SetColWidth(sheet, name, name, col.width)
		if err != nil {
			return wrap(err)
		}
	}
	err := f.SetSheetRow(sheet, "A1", &header)
	if err != nil {
		return wrap(err)
	}

	for i, listing := range listings {
		row := make([]any, len(columns))
		for j, col := range columns {
			row[j] = col.value(listing)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return wrap(err)
		}
		err = f.SetSheetRow(sheet, cell, &row)
		if err != nil {
			return wrap(err)
		}
	}

	lastRow := len(listings) + 1
	for r := 1; r <= lastRow; r++ {
		err = f.SetRowHeight(sheet, r, rowHeight)
		if err != nil {
			return wrap(err)
		}
	}

	lastCell, err := excelize.CoordinatesToCellName(len(columns), lastRow)
	if err != nil {
		return wrap(err)
	}
	err = f.SetCellStyle(sheet, "A1", lastCell, style)
	if err != nil {
		return wrap(err)
	}
	err = f.AddTable(sheet, &excelize.Table{
		Range:     "A1:" + lastCell,
		Name:      table,
		StyleName: tableStyle,
	})
	if err != nil {
		return wrap(err)
	}
	return nil
}
