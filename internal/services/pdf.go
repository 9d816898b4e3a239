package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"ticketbox-terminal/internal/models"
)

// Ticket stock dimensions in millimetres
const (
	TicketWidthMM  = 140.0
	TicketHeightMM = 76.0
)

const (
	stubWidthMM = 45.0
	qrSizeMM    = 34.0
	padMM       = 5.0
)

// TicketPDFRenderer lays a single ticket out on a 140mm x 76mm page
type TicketPDFRenderer struct {
	creationDate time.Time
}

// NewTicketPDFRenderer creates a new ticket renderer
func NewTicketPDFRenderer() *TicketPDFRenderer {
	return &TicketPDFRenderer{}
}

// Render returns the ticket as a one-page PDF with the QR image on the stub
func (r *TicketPDFRenderer) Render(ticket models.IssuedTicket, qrPNG []byte) ([]byte, error) {
	pdf, err := r.build(ticket, qrPNG)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket %s: %w", ticket.TicketID, err)
	}
	return buf.Bytes(), nil
}

func (r *TicketPDFRenderer) build(ticket models.IssuedTicket, qrPNG []byte) (*fpdf.Fpdf, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: TicketWidthMM, Ht: TicketHeightMM},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Ticket "+ticket.TicketID, false)
	if !r.creationDate.IsZero() {
		pdf.SetCreationDate(r.creationDate)
	}
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	bodyWidth := TicketWidthMM - stubWidthMM - 2*padMM

	// Header band
	pdf.SetFillColor(0, 112, 74)
	pdf.Rect(0, 0, TicketWidthMM-stubWidthMM, 14, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetXY(padMM, 3)
	pdf.CellFormat(bodyWidth, 8, tr(truncate(ticket.EventName, 48)), "", 0, "L", false, 0, "")

	pdf.SetTextColor(33, 33, 33)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(padMM, 18)
	pdf.CellFormat(bodyWidth, 6, tr(ticket.TicketTypeName), "", 0, "L", false, 0, "")

	rows := [][2]string{
		{"Attendee", ticket.CustomerName},
		{"Date", ticket.IssueDate},
		{"Time", ticket.IssueTime},
		{"Location", ticket.Location},
		{"Seat", ticket.SeatLabel},
		{"Ticket", ticket.Number()},
	}
	y := 27.0
	for _, row := range rows {
		pdf.SetXY(padMM, y)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(20, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(33, 33, 33)
		pdf.CellFormat(bodyWidth-20, 6, tr(truncate(row[1], 44)), "", 0, "L", false, 0, "")
		y += 7
	}

	// Perforation between body and stub
	stubX := TicketWidthMM - stubWidthMM
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetDashPattern([]float64{1.5, 1.5}, 0)
	pdf.Line(stubX, 2, stubX, TicketHeightMM-2)
	pdf.SetDashPattern([]float64{}, 0)

	if len(qrPNG) > 0 {
		name := "qr-" + ticket.TicketID
		pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
		qrX := stubX + (stubWidthMM-qrSizeMM)/2
		pdf.ImageOptions(name, qrX, 12, qrSizeMM, qrSizeMM, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	pdf.SetFont("Courier", "", 7)
	pdf.SetTextColor(33, 33, 33)
	pdf.SetXY(stubX, 50)
	pdf.CellFormat(stubWidthMM, 5, ticket.TicketID, "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(stubX, 57)
	pdf.CellFormat(stubWidthMM, 5, ticket.SeatLabel, "", 0, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render ticket %s: %w", ticket.TicketID, err)
	}
	return pdf, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
