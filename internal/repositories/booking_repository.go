package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"carwash/internal/domain"
	"carwash/internal/domain/models"
)

const bookingColumns = `id, customer_name, car_make, car_model, car_year, car_type, service_type,
		date, time_slot, duration_min, price, status, rating, add_ons, created_at, updated_at`

// SortColumns maps the sortBy parameter onto real columns. Anything outside
// this map is rejected before it reaches the repository.
var SortColumns = map[string]string{
	"date":         "date",
	"price":        "price",
	"duration":     "duration_min",
	"customerName": "customer_name",
	"serviceType":  "service_type",
	"status":       "status",
	"rating":       "rating",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// ListFilter is the conjunctive filter built from the optional list
// parameters; zero values impose no constraint.
type ListFilter struct {
	ServiceType string
	CarType     string
	Status      string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ListOptions is the sort order plus page window. SortColumn must come from
// SortColumns.
type ListOptions struct {
	SortColumn string
	Desc       bool
	Offset     int
	Limit      int
}

type BookingRepository struct {
	DB *sql.DB
}

func buildWhere(f ListFilter) (string, []any) {
	var conds []string
	var args []any

	if f.ServiceType != "" {
		conds = append(conds, "service_type = ?")
		args = append(args, f.ServiceType)
	}
	if f.CarType != "" {
		conds = append(conds, "car_type = ?")
		args = append(args, f.CarType)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.StartDate != nil {
		conds = append(conds, "date >= ?")
		args = append(args, f.StartDate.Format("2006-01-02"))
	}
	if f.EndDate != nil {
		conds = append(conds, "date <= ?")
		args = append(args, f.EndDate.Format("2006-01-02"))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of bookings plus the total match count over the same
// filter, so totalPages stays consistent regardless of the page window.
func (r BookingRepository) List(ctx context.Context, f ListFilter, o ListOptions) ([]models.Booking, int64, error) {
	where, args := buildWhere(f)

	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	query := "SELECT " + bookingColumns + " FROM bookings" + where +
		" ORDER BY " + o.SortColumn + " " + dir + ", id " + dir + " LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, query, append(args, o.Limit, o.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	list, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll returns every booking matching the filter, newest date first. Used
// by the export endpoint, which has no page window.
func (r BookingRepository) ListAll(ctx context.Context, f ListFilter) ([]models.Booking, error) {
	where, args := buildWhere(f)

	query := "SELECT " + bookingColumns + " FROM bookings" + where + " ORDER BY date DESC, id DESC"
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// escapeLike makes the term a literal substring under LIKE.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// Search matches the term case-insensitively against customer name, car make
// and car model. Unpaginated, newest date first.
func (r BookingRepository) Search(ctx context.Context, term string) ([]models.Booking, error) {
	like := "%" + escapeLike(strings.ToLower(term)) + "%"

	query := "SELECT " + bookingColumns + ` FROM bookings
		WHERE LOWER(customer_name) LIKE ? OR LOWER(car_make) LIKE ? OR LOWER(car_model) LIKE ?
		ORDER BY date DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query, like, like, like)
	if err != nil {
		return nil, fmt.Errorf("search bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r BookingRepository) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id)

	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("get booking %d: %w", id, err)
	}
	return b, nil
}

// Insert persists a validated booking and fills in the assigned id and
// timestamps.
func (r BookingRepository) Insert(ctx context.Context, b models.Booking) (models.Booking, error) {
	addOns, err := json.Marshal(b.AddOns)
	if err != nil {
		return models.Booking{}, fmt.Errorf("encode add-ons: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	res, err := r.DB.ExecContext(ctx, `INSERT INTO bookings
		(customer_name, car_make, car_model, car_year, car_type, service_type,
		 date, time_slot, duration_min, price, status, rating, add_ons, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.CustomerName, b.CarDetails.Make, b.CarDetails.Model, b.CarDetails.Year, b.CarDetails.Type,
		b.ServiceType, b.Date.Format("2006-01-02"), b.TimeSlot, b.Duration, b.Price, b.Status,
		b.Rating, addOns, now, now)
	if err != nil {
		return models.Booking{}, fmt.Errorf("insert booking: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking insert id: %w", err)
	}

	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	return b, nil
}

// Replace overwrites every client-settable column of an existing booking.
// Existence is the caller's concern; rows-affected is useless for it because
// MySQL reports 0 for an identical rewrite.
func (r BookingRepository) Replace(ctx context.Context, id int64, b models.Booking) error {
	addOns, err := json.Marshal(b.AddOns)
	if err != nil {
		return fmt.Errorf("encode add-ons: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	_, err = r.DB.ExecContext(ctx, `UPDATE bookings SET
		customer_name = ?, car_make = ?, car_model = ?, car_year = ?, car_type = ?, service_type = ?,
		date = ?, time_slot = ?, duration_min = ?, price = ?, status = ?, rating = ?, add_ons = ?,
		updated_at = ?
		WHERE id = ?`,
		b.CustomerName, b.CarDetails.Make, b.CarDetails.Model, b.CarDetails.Year, b.CarDetails.Type,
		b.ServiceType, b.Date.Format("2006-01-02"), b.TimeSlot, b.Duration, b.Price, b.Status,
		b.Rating, addOns, now, id)
	if err != nil {
		return fmt.Errorf("update booking %d: %w", id, err)
	}
	return nil
}

func (r BookingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete booking %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete booking %d: %w", id, err)
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(s rowScanner) (models.Booking, error) {
	var (
		b      models.Booking
		rating sql.NullInt64
		addOns []byte
	)

	err := s.Scan(
		&b.ID,
		&b.CustomerName,
		&b.CarDetails.Make,
		&b.CarDetails.Model,
		&b.CarDetails.Year,
		&b.CarDetails.Type,
		&b.ServiceType,
		&b.Date,
		&b.TimeSlot,
		&b.Duration,
		&b.Price,
		&b.Status,
		&rating,
		&addOns,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return models.Booking{}, err
	}

	if rating.Valid {
		v := int(rating.Int64)
		b.Rating = &v
	}

	b.AddOns = []string{}
	if len(addOns) > 0 {
		if err := json.Unmarshal(addOns, &b.AddOns); err != nil {
			return models.Booking{}, fmt.Errorf("decode add-ons for booking %d: %w", b.ID, err)
		}
	}
	if b.AddOns == nil {
		b.AddOns = []string{}
	}

	return b, nil
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	list := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return list, nil
}
