package schedule

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
)

// PrintWeek renders the weekly opening hours as a printable A4 sheet
// for the door and the front desk (admin).
func PrintWeek(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	days, err := Load(r.Context())
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "AP Gaming Hub - Openingsuren")
	pdf.Ln(16)

	for _, day := range days {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 9, day.Day)
		pdf.Ln(9)

		pdf.SetFont("Arial", "", 11)
		if len(day.Slots) == 0 {
			pdf.Cell(0, 7, "  Gesloten")
			pdf.Ln(8)
			continue
		}
		for _, s := range day.Slots {
			line := "  " + s.Start + " - " + s.End + "  " + s.Label
			if s.Type != SlotOpen {
				line += " (" + s.Type + ")"
			}
			pdf.Cell(0, 7, line)
			pdf.Ln(7)
		}
		pdf.Ln(2)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="openingsuren.pdf"`)
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
	}
}
