package services

import (
	"context"
	"strings"
	"time"

	"carwash/internal/domain"
	"carwash/internal/domain/models"
	"carwash/internal/repositories"

	"github.com/rs/zerolog"
)

// BookingService validates booking documents and orchestrates the repository.
// Now is a clock hook for tests; nil means time.Now.
type BookingService struct {
	Repo repositories.BookingRepository
	Log  zerolog.Logger
	Now  func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List runs the filtered, sorted, paginated query plus the total count over
// the same filter.
func (s BookingService) List(ctx context.Context, f repositories.ListFilter, o repositories.ListOptions) ([]models.Booking, int64, error) {
	return s.Repo.List(ctx, f, o)
}

func (s BookingService) Search(ctx context.Context, query string) ([]models.Booking, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.BadRequestError{Msg: "Search query is required"}
	}
	return s.Repo.Search(ctx, query)
}

func (s BookingService) Get(ctx context.Context, id int64) (models.Booking, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s BookingService) Create(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	if msgs := in.Validate(s.now()); len(msgs) > 0 {
		return models.Booking{}, domain.ValidationError{Messages: msgs}
	}

	created, err := s.Repo.Insert(ctx, in.Booking())
	if err != nil {
		return models.Booking{}, err
	}

	s.Log.Info().Int64("booking_id", created.ID).Str("status", created.Status).Msg("booking created")
	return created, nil
}

// Update applies the same validation as Create and replaces the stored
// document in full. createdAt survives the replace; updatedAt advances.
func (s BookingService) Update(ctx context.Context, id int64, in models.BookingInput) (models.Booking, error) {
	if msgs := in.Validate(s.now()); len(msgs) > 0 {
		return models.Booking{}, domain.ValidationError{Messages: msgs}
	}

	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return models.Booking{}, err
	}

	if err := s.Repo.Replace(ctx, id, in.Booking()); err != nil {
		return models.Booking{}, err
	}

	updated, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}

	s.Log.Info().Int64("booking_id", id).Str("status", updated.Status).Msg("booking updated")
	return updated, nil
}

func (s BookingService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Log.Info().Int64("booking_id", id).Msg("booking deleted")
	return nil
}
