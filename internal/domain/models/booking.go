package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

var (
	CarTypes     = []string{"Sedan", "SUV", "Hatchback", "Luxury", "Truck", "Coupe"}
	ServiceTypes = []string{"Basic Wash", "Deluxe Wash", "Full Detailing"}
	Statuses     = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
)

const (
	MinCarYear  = 1900
	MinDuration = 15
)

// dateLayout is the calendar-date wire format; full RFC 3339 timestamps are
// accepted too since browsers send both.
const dateLayout = "2006-01-02"

type CarDetails struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Type  string `json:"type"`
}

type Booking struct {
	ID           int64      `json:"id"`
	CustomerName string     `json:"customerName"`
	CarDetails   CarDetails `json:"carDetails"`
	ServiceType  string     `json:"serviceType"`
	Date         time.Time  `json:"date"`
	TimeSlot     string     `json:"timeSlot"`
	Duration     int        `json:"duration"`
	Price        float64    `json:"price"`
	Status       string     `json:"status"`
	Rating       *int       `json:"rating"`
	AddOns       []string   `json:"addOns"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BookingInput is the client-supplied document for create and replace. The
// date stays a string until validation so a bad value produces a field message
// instead of a bind failure.
type BookingInput struct {
	CustomerName string     `json:"customerName"`
	CarDetails   CarDetails `json:"carDetails"`
	ServiceType  string     `json:"serviceType"`
	Date         string     `json:"date"`
	TimeSlot     string     `json:"timeSlot"`
	Duration     int        `json:"duration"`
	Price        float64    `json:"price"`
	Status       string     `json:"status"`
	Rating       *int       `json:"rating"`
	AddOns       []string   `json:"addOns"`
}

func ParseBookingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func isOneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Validate returns one message per violated field, empty when the input is a
// valid booking document.
func (in BookingInput) Validate(now time.Time) []string {
	var errs []string

	if len(strings.TrimSpace(in.CustomerName)) < 2 {
		errs = append(errs, "Customer name must be at least 2 characters long")
	}

	maxYear := now.Year() + 1
	if len(strings.TrimSpace(in.CarDetails.Make)) < 2 {
		errs = append(errs, "Car make must be at least 2 characters long")
	}
	if strings.TrimSpace(in.CarDetails.Model) == "" {
		errs = append(errs, "Car model is required")
	}
	if in.CarDetails.Year < MinCarYear || in.CarDetails.Year > maxYear {
		errs = append(errs, fmt.Sprintf("Car year must be between %d and %d", MinCarYear, maxYear))
	}
	if !isOneOf(in.CarDetails.Type, CarTypes) {
		errs = append(errs, "Car type must be one of: "+strings.Join(CarTypes, ", "))
	}

	if !isOneOf(in.ServiceType, ServiceTypes) {
		errs = append(errs, "Service type must be one of: "+strings.Join(ServiceTypes, ", "))
	}

	if _, err := ParseBookingDate(in.Date); err != nil {
		errs = append(errs, "Valid booking date is required")
	}

	if strings.TrimSpace(in.TimeSlot) == "" {
		errs = append(errs, "Time slot is required")
	}
	if in.Duration < MinDuration {
		errs = append(errs, "Duration must be at least 15 minutes")
	}
	if in.Price < 0 {
		errs = append(errs, "Price cannot be negative")
	}

	if in.Status != "" && !isOneOf(in.Status, Statuses) {
		errs = append(errs, "Status must be one of: "+strings.Join(Statuses, ", "))
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		errs = append(errs, "Rating must be between 1 and 5")
	}

	return errs
}

// Booking converts a validated input into a record. Status defaults to
// Pending, text fields are trimmed, addOns never stays nil so it serializes as
// an empty array.
func (in BookingInput) Booking() Booking {
	date, _ := ParseBookingDate(in.Date)

	status := in.Status
	if status == "" {
		status = StatusPending
	}

	addOns := in.AddOns
	if addOns == nil {
		addOns = []string{}
	}

	return Booking{
		CustomerName: strings.TrimSpace(in.CustomerName),
		CarDetails: CarDetails{
			Make:  strings.TrimSpace(in.CarDetails.Make),
			Model: strings.TrimSpace(in.CarDetails.Model),
			Year:  in.CarDetails.Year,
			Type:  in.CarDetails.Type,
		},
		ServiceType: in.ServiceType,
		Date:        date,
		TimeSlot:    strings.TrimSpace(in.TimeSlot),
		Duration:    in.Duration,
		Price:       in.Price,
		Status:      status,
		Rating:      in.Rating,
		AddOns:      addOns,
	}
}
