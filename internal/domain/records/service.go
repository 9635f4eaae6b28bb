package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spendlog/server/internal/domain/categories"
)

// EventPublisher receives a notification after a record is persisted.
// Implementations must be safe for concurrent use.
type EventPublisher interface {
	PublishRecordCreated(ctx context.Context, record *Record) error
}

type Service struct {
	repo      Repository
	catRepo   categories.Repository
	publisher EventPublisher
	logger    zerolog.Logger
}

// NewService builds a record service. publisher may be nil, in which case
// no notifications are emitted.
func NewService(repo Repository, catRepo categories.Repository, publisher EventPublisher, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		catRepo:   catRepo,
		publisher: publisher,
		logger:    logger.With().Str("component", "records").Logger(),
	}
}

// Create persists a record owned by ownerID. The category must exist and be
// visible to the owner (global or owned); otherwise ErrCategoryNotFound is
// returned and nothing is written.
func (s *Service) Create(ctx context.Context, ownerID int64, categoryID int64, amount float64) (*Record, error) {
	if _, err := s.catRepo.GetVisible(ctx, categoryID, ownerID); err != nil {
		if errors.Is(err, categories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("check category: %w", err)
	}

	record, err := s.repo.Create(ctx, CreateParams{UserID: ownerID, CategoryID: categoryID, Amount: amount})
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("create record: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRecordCreated(ctx, record); err != nil {
			// The record is already persisted; a lost notification must not
			// fail the request.
			s.logger.Error().Err(err).Int64("record_id", record.ID).Msg("failed to publish record-created event")
		}
	}

	return record, nil
}

func (s *Service) Get(ctx context.Context, id, ownerID int64) (*Record, error) {
	return s.repo.GetOwned(ctx, id, ownerID)
}

func (s *Service) List(ctx context.Context, ownerID int64, filters Filters) ([]Record, error) {
	return s.repo.ListOwned(ctx, ownerID, filters)
}

func (s *Service) Delete(ctx context.Context, id, ownerID int64) error {
	return s.repo.DeleteOwned(ctx, id, ownerID)
}
