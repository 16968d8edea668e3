package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carwash/internal/repositories"

	"github.com/xuri/excelize/v2"
)

// ExportService writes bookings matching a list filter into a spreadsheet.
type ExportService struct {
	Repo repositories.BookingRepository
}

var exportHeaders = []string{
	"ID", "Customer", "Car Make", "Car Model", "Year", "Car Type",
	"Service", "Date", "Time Slot", "Duration (min)", "Price", "Status",
	"Rating", "Add-ons", "Created At",
}

func (s ExportService) Export(ctx context.Context, f repositories.ListFilter) ([]byte, string, error) {
	bookings, err := s.Repo.ListAll(ctx, f)
	if err != nil {
		return nil, "", err
	}

	x := excelize.NewFile()
	defer x.Close()

	const sheet = "Bookings"
	index, err := x.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("create sheet: %w", err)
	}
	x.SetActiveSheet(index)
	_ = x.DeleteSheet("Sheet1")

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = x.SetCellValue(sheet, cell, h)
	}
	style, _ := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	_ = x.SetCellStyle(sheet, "A1", last, style)

	for i, b := range bookings {
		row := i + 2
		rating := ""
		if b.Rating != nil {
			rating = fmt.Sprintf("%d", *b.Rating)
		}
		values := []any{
			b.ID, b.CustomerName, b.CarDetails.Make, b.CarDetails.Model,
			b.CarDetails.Year, b.CarDetails.Type, b.ServiceType,
			b.Date.Format("2006-01-02"), b.TimeSlot, b.Duration, b.Price,
			b.Status, rating, strings.Join(b.AddOns, ", "),
			b.CreatedAt.Format(time.RFC3339),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			_ = x.SetCellValue(sheet, cell, v)
		}
	}

	_ = x.SetColWidth(sheet, "A", "O", 18)

	buf, err := x.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write spreadsheet: %w", err)
	}

	filename := fmt.Sprintf("bookings-export-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
