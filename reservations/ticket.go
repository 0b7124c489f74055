package reservations

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/MilanMareels/ap-gaming-hub/globals"
	"github.com/MilanMareels/ap-gaming-hub/utils"
)

// signTicket returns the check-in payload: id|sNumber|signature. The
// front desk scans it and verifies the signature offline.
func signTicket(id, sNumber string) string {
	data := fmt.Sprintf("%s|%s", id, sNumber)
	h := hmac.New(sha256.New, globals.TicketSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintTicket renders a booking confirmation as a PDF with a signed QR
// code. The s-number must be supplied as a query parameter so ticket
// URLs cannot be enumerated from reservation ids alone.
func PrintTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	sNumber := r.URL.Query().Get("sNumber")
	if sNumber == "" {
		http.Error(w, "sNumber is required for verification", http.StatusBadRequest)
		return
	}

	snap, err := LoadSnapshot(r.Context())
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	var res *Reservation
	for i := range snap.Reservations {
		if snap.Reservations[i].ID == id {
			res = &snap.Reservations[i]
			break
		}
	}
	if res == nil || normalizeSNumber(res.SNumber) != normalizeSNumber(sNumber) {
		http.Error(w, "reservation not found", http.StatusNotFound)
		return
	}

	qrPNG, err := qrcode.Encode(signTicket(res.ID, res.SNumber), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	_, end := res.Span()
	endTime := res.EndTime
	if endTime == "" {
		endTime = utils.MinutesToTime(end)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "AP Gaming Hub - Reservatie")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("S-nummer: %s", res.SNumber))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Hardware: %s", strings.ToUpper(res.Inventory)))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Datum: %s", res.Date))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Tijd: %s - %s", res.StartTime, endTime))
	if res.Controllers > 0 {
		pdf.Ln(8)
		pdf.Cell(0, 10, fmt.Sprintf("Controllers: %d", res.Controllers))
	}
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 15, pdf.GetY(), 60, 60, false, imageOpts, 0, "")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="reservatie.pdf"`)
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
	}
}
