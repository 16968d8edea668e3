package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"carwash/internal/domain/models"
	"carwash/internal/repositories"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders a one-page PDF receipt for a booking.
type ReceiptService struct {
	Repo repositories.BookingRepository
}

func (s ReceiptService) Generate(ctx context.Context, id int64) ([]byte, string, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return buildReceiptPDF(b)
}

func buildReceiptPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "CAR WASH BOOKING RECEIPT")
	pdf.Ln(12)

	rating := "-"
	if b.Rating != nil {
		rating = fmt.Sprintf("%d/5", *b.Rating)
	}
	addOns := "-"
	if len(b.AddOns) > 0 {
		addOns = strings.Join(b.AddOns, ", ")
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt No   : RCP-%d", b.ID),
		fmt.Sprintf("Customer     : %s", b.CustomerName),
		fmt.Sprintf("Car          : %d %s %s (%s)", b.CarDetails.Year, b.CarDetails.Make, b.CarDetails.Model, b.CarDetails.Type),
		fmt.Sprintf("Service      : %s", b.ServiceType),
		fmt.Sprintf("Date         : %s", b.Date.Format("2006-01-02")),
		fmt.Sprintf("Time Slot    : %s", b.TimeSlot),
		fmt.Sprintf("Duration     : %d minutes", b.Duration),
		fmt.Sprintf("Add-ons      : %s", addOns),
		fmt.Sprintf("Status       : %s", b.Status),
		fmt.Sprintf("Rating       : %s", rating),
		fmt.Sprintf("Total        : $%.2f", b.Price),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please arrive 10 minutes before your time slot. This receipt confirms one appointment.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("booking-%d-receipt.pdf", b.ID)
	return buf.Bytes(), filename, nil
}
