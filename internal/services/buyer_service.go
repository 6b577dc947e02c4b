// Package services – BuyerService
//
// This file implements BuyerService, the application-level component that
// owns the lifecycle of buyer records. It validates input through the
// validate package, enforces ownership on mutations, guards updates with an
// updatedAt precondition, and pairs every effective mutation with exactly
// one history entry inside the same transaction.
//
// Service-level errors (ErrBuyerNotFound, ErrForbidden, ErrStaleRecord) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently; field-rule violations surface as *validate.FieldError.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// buyer/user identifiers and pagination parameters where applicable.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/leadstack/buyer-intake/internal/domain"
	"github.com/leadstack/buyer-intake/internal/history"
	"github.com/leadstack/buyer-intake/internal/repo"
	"github.com/leadstack/buyer-intake/internal/utils"
	"github.com/leadstack/buyer-intake/internal/validate"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BuyerService coordinates buyer persistence, auditing, and the rules that
// sit between transport and storage.
type BuyerService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// HistoryPreview is how many recent history entries Get returns
	// alongside the record.
	HistoryPreview int
}

// NewBuyerService constructs a BuyerService with the default history
// preview depth.
func NewBuyerService(db *gorm.DB) *BuyerService {
	return &BuyerService{DB: db, HistoryPreview: 5}
}

func (s *BuyerService) previewDepth() int {
	if s.HistoryPreview > 0 {
		return s.HistoryPreview
	}
	return 5
}

// Create validates the candidate, persists it as a buyer owned by userID,
// and records a CREATED history entry in the same transaction.
func (s *BuyerService) Create(ctx context.Context, userID string, c validate.Candidate) (*domain.Buyer, error) {
	tr := otel.Tracer("services/BuyerService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	rec, ferr := validate.Record(c)
	if ferr != nil {
		return nil, ferr
	}
	rec.OwnerID = userID

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.CreateBuyer(ctx, tx, rec); err != nil {
			return err
		}
		_, err := repo.CreateHistory(ctx, tx, rec.ID, userID, history.CreatedPayload(rec))
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Get returns one buyer plus its most recent history entries. Any user may
// read any record; ownership only gates mutations.
func (s *BuyerService) Get(ctx context.Context, id string) (*domain.Buyer, []domain.HistoryEntry, error) {
	b, err := repo.GetBuyer(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrBuyerNotFound
		}
		return nil, nil, err
	}
	entries, err := repo.ListHistoryPage(ctx, s.DB, id, 0, s.previewDepth())
	if err != nil {
		return nil, nil, err
	}
	return b, entries, nil
}

// List returns a page of buyers matching the (already parsed) filter,
// newest update first, plus the total count. It applies defaults for
// invalid page/pageSize.
func (s *BuyerService) List(ctx context.Context, f repo.BuyerFilter, page, pageSize int) ([]domain.Buyer, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := utils.PageOffset(page, pageSize)

	total, err := repo.CountBuyers(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Buyer{}, 0, nil
	}

	items, err := repo.ListBuyersPage(ctx, s.DB, f, offset, pageSize)
	return items, total, err
}

// Update replaces every business field of a buyer with the validated
// candidate and records the field-level diff as an UPDATED history entry.
// A diff-free update still persists (bumping updatedAt) but writes no
// history row.
//
// Preconditions, checked inside one transaction:
//   - the record exists (ErrBuyerNotFound),
//   - userID owns it (ErrForbidden),
//   - expectedUpdatedAt, when non-zero, matches the stored updatedAt
//     (ErrStaleRecord on mismatch).
func (s *BuyerService) Update(ctx context.Context, userID, id string, c validate.Candidate, expectedUpdatedAt time.Time) (*domain.Buyer, error) {
	tr := otel.Tracer("services/BuyerService")
	ctx, span := tr.Start(ctx, "Update",
		trace.WithAttributes(
			attribute.String("buyer.id", id),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	rec, ferr := validate.Record(c)
	if ferr != nil {
		return nil, ferr
	}

	var updated *domain.Buyer
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := repo.GetBuyer(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrBuyerNotFound
			}
			return err
		}
		if before.OwnerID != userID {
			return ErrForbidden
		}
		if !expectedUpdatedAt.IsZero() && !expectedUpdatedAt.Equal(before.UpdatedAt) {
			return ErrStaleRecord
		}

		rec.ID = before.ID
		rec.OwnerID = before.OwnerID
		rec.CreatedAt = before.CreatedAt

		changes := history.Changes(before, rec)
		if err := repo.UpdateBuyer(ctx, tx, rec); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrBuyerNotFound
			}
			return err
		}
		if len(changes) > 0 {
			if _, err := repo.CreateHistory(ctx, tx, id, userID, history.UpdatedPayload(changes)); err != nil {
				return err
			}
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateStatus performs the status-only transition. The raw value is
// enum-checked, ownership and the updatedAt precondition apply exactly as
// in Update, and the history entry carries the single status diff. Setting
// the status a record already has is a no-op: no write, no history row.
func (s *BuyerService) UpdateStatus(ctx context.Context, userID, id, status string, expectedUpdatedAt time.Time) (*domain.Buyer, error) {
	tr := otel.Tracer("services/BuyerService")
	ctx, span := tr.Start(ctx, "UpdateStatus",
		trace.WithAttributes(
			attribute.String("buyer.id", id),
			attribute.String("buyer.status", status),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	next, ferr := validate.Status(status)
	if ferr != nil {
		return nil, ferr
	}

	var out *domain.Buyer
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := repo.GetBuyer(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrBuyerNotFound
			}
			return err
		}
		if before.OwnerID != userID {
			return ErrForbidden
		}
		if !expectedUpdatedAt.IsZero() && !expectedUpdatedAt.Equal(before.UpdatedAt) {
			return ErrStaleRecord
		}

		payload, changed := history.StatusChange(before.Status, next)
		if !changed {
			out = before
			return nil
		}

		if err := repo.UpdateBuyerStatus(ctx, tx, id, next); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrBuyerNotFound
			}
			return err
		}
		if _, err := repo.CreateHistory(ctx, tx, id, userID, payload); err != nil {
			return err
		}

		after, err := repo.GetBuyer(ctx, tx, id)
		if err != nil {
			return err
		}
		out = after
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a buyer owned by userID. History rows go with it via the
// schema-level cascade.
func (s *BuyerService) Delete(ctx context.Context, userID, id string) error {
	tr := otel.Tracer("services/BuyerService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(
			attribute.String("buyer.id", id),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := repo.GetBuyer(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrBuyerNotFound
			}
			return err
		}
		if before.OwnerID != userID {
			return ErrForbidden
		}
		if err := repo.DeleteBuyer(ctx, tx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrBuyerNotFound
			}
			return err
		}
		return nil
	})
}

// History returns a page of a buyer's audit trail, newest first, plus the
// total count. It applies defaults for invalid page/pageSize.
func (s *BuyerService) History(ctx context.Context, id string, page, pageSize int) ([]domain.HistoryEntry, int64, error) {
	tr := otel.Tracer("services/BuyerService")
	ctx, span := tr.Start(ctx, "History",
		trace.WithAttributes(
			attribute.String("buyer.id", id),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := utils.PageOffset(page, pageSize)

	if _, err := repo.GetBuyer(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, 0, ErrBuyerNotFound
		}
		return nil, 0, err
	}

	total, err := repo.CountHistory(ctx, s.DB, id)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.HistoryEntry{}, 0, nil
	}

	items, err := repo.ListHistoryPage(ctx, s.DB, id, offset, pageSize)
	return items, total, err
}
