package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Diarias"

// WriteXLSX renders the summary as a spreadsheet: one row per work day
// followed by a totals row.
func WriteXLSX(w io.Writer, s Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	header := []any{headerDate, headerType, headerExtraHours, headerValue}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, day := range s.Days {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			localDate(day.Date),
			string(day.Type),
			day.ExtraHours,
			day.Value.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	totalCell, err := excelize.CoordinatesToCellName(1, len(s.Days)+2)
	if err != nil {
		return err
	}
	totalRow := []any{totalLabel, "", "", s.Total.InexactFloat64()}
	if err := f.SetSheetRow(sheetName, totalCell, &totalRow); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
