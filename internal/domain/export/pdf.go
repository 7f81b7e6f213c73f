package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the summary as a printable table, mirroring the
// spreadsheet layout.
func WritePDF(w io.Writer, s Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, tr("Diárias"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Funcionário: %s (%s)", s.Employee.Name, s.Employee.ArtisticName)))
	pdf.Ln(7)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Mês: %s", s.MonthLabel())))
	pdf.Ln(10)

	widths := []float64{35, 65, 35, 35}
	headers := []string{headerDate, headerType, headerExtraHours, headerValue}

	pdf.SetFont("Helvetica", "B", 11)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, tr(header), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, day := range s.Days {
		pdf.CellFormat(widths[0], 8, localDate(day.Date), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, tr(string(day.Type)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, strconv.Itoa(day.ExtraHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, day.Value.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 8, totalLabel, "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[3], 8, s.Total.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	return pdf.Output(w)
}
