package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"carwash/internal/domain"
	"carwash/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingCols = []string{
	"id", "customer_name", "car_make", "car_model", "car_year", "car_type", "service_type",
	"date", "time_slot", "duration_min", "price", "status", "rating", "add_ons", "created_at", "updated_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func bookingRow(id int64, name string, status string, date time.Time) *sqlmock.Rows {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(bookingCols).AddRow(
		id, name, "Toyota", "Corolla", 2022, "Sedan", "Basic Wash",
		date, "09:00 AM - 09:30 AM", 30, 19.99, status, nil, []byte(`["Wax"]`), now, now,
	)
}

func testBooking() models.Booking {
	return models.Booking{
		CustomerName: "Alice Carter",
		CarDetails:   models.CarDetails{Make: "Toyota", Model: "Corolla", Year: 2022, Type: "Sedan"},
		ServiceType:  "Basic Wash",
		Date:         time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:     "09:00 AM - 09:30 AM",
		Duration:     30,
		Price:        19.99,
		Status:       models.StatusPending,
		AddOns:       []string{"Wax"},
	}
}

func TestListOpenFilterMatchesAll(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepository{DB: db}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`FROM bookings ORDER BY date DESC, id DESC LIMIT \? OFFSET \?`).
		WithArgs(10, 0).
		WillReturnRows(bookingRow(1, "Alice Carter", "Pending", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)))

	list, total, err := repo.List(context.Background(), ListFilter{}, ListOptions{SortColumn: "date", Desc: true, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice Carter", list[0].CustomerName)
	assert.Equal(t, []string{"Wax"}, list[0].AddOns)
	assert.Nil(t, list[0].Rating)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBuildsConjunctiveFilter(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepository{DB: db}

	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	filter := ListFilter{
		ServiceType: "Deluxe Wash",
		CarType:     "SUV",
		Status:      "Confirmed",
		StartDate:   &start,
		EndDate:     &end,
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE service_type = \? AND car_type = \? AND status = \? AND date >= \? AND date <= \?`).
		WithArgs("Deluxe Wash", "SUV", "Confirmed", "2025-10-01", "2025-10-31").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`FROM bookings WHERE service_type = \? AND car_type = \? AND status = \? AND date >= \? AND date <= \? ORDER BY price ASC, id ASC LIMIT \? OFFSET \?`).
		WithArgs("Deluxe Wash", "SUV", "Confirmed", "2025-10-01", "2025-10-31", 2, 2).
		WillReturnRows(bookingRow(4, "Bob Miles", "Confirmed", start))

	list, total, err := repo.List(context.Background(), filter, ListOptions{SortColumn: "price", Desc: false, Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, list, 1)
	assert.Equal(t, int64(4), list[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchLowercasesAndEscapesTerm(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepository{DB: db}

	mock.ExpectQuery(`LOWER\(customer_name\) LIKE \? OR LOWER\(car_make\) LIKE \? OR LOWER\(car_model\) LIKE \?`).
		WithArgs(`%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	list, err := repo.Search(context.Background(), "50%_Off")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchLowercasesTerm(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepository{DB: db}

	mock.ExpectQuery(`ORDER BY date DESC, id DESC`).
		WithArgs("%toyota%", "%toyota%", "%toyota%").
		WillReturnRows(bookingRow(2, "Casey Brooks", "Pending", time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)))

	list, err := repo.Search(context.Background(), "Toyota")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Casey Brooks", list[0].CustomerName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepository{DB: db}

	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.True(t, domain.IsNotFound(err))
}

func TestGetByIDScansOptionalFields(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepository{DB: db}

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(bookingCols).AddRow(
		7, "Dana White", "Honda", "Civic", 2020, "Hatchback", "Full Detailing",
		time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), "11:00 AM", 120, 149.50,
		"Completed", 5, []byte(`["Wax","Interior Vacuum"]`), now, now,
	)
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).WithArgs(int64(7)).WillReturnRows(rows)

	b, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, b.Rating)
	assert.Equal(t, 5, *b.Rating)
	assert.Equal(t, []string{"Wax", "Interior Vacuum"}, b.AddOns)
	assert.Equal(t, "Completed", b.Status)
}

func TestInsertAssignsIDAndTimestamps(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepository{DB: db}

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))

	b, err := repo.Insert(context.Background(), testBooking())
	require.NoError(t, err)
	assert.Equal(t, int64(42), b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)
}

func TestDeleteNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepository{DB: db}

	mock.ExpectExec("DELETE FROM bookings").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 5)
	assert.True(t, domain.IsNotFound(err))
}

func TestDeleteRemovesRow(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepository{DB: db}

	mock.ExpectExec("DELETE FROM bookings").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceUpdatesAllColumns(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepository{DB: db}

	mock.ExpectExec("UPDATE bookings SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Replace(context.Background(), 7, testBooking()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
