// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// HistoryEntry model. History rows are append-only: they are never updated
// and only removed via the buyer cascade.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leadstack/buyer-intake/internal/domain"
)

// CreateHistory appends one audit row for a buyer. The payload must satisfy
// domain.DiffPayload.Validate; invalid shapes fail at serialization.
func CreateHistory(ctx context.Context, db *gorm.DB, buyerID, changedBy string, diff domain.DiffPayload) (*domain.HistoryEntry, error) {
	h := &domain.HistoryEntry{
		ID:        uuid.NewString(),
		BuyerID:   buyerID,
		ChangedBy: changedBy,
		ChangedAt: time.Now().UTC(),
		Diff:      diff,
	}
	if err := db.WithContext(ctx).Create(h).Error; err != nil {
		return nil, err
	}
	return h, nil
}

// ListHistoryPage returns a buyer's audit rows, newest first.
func ListHistoryPage(ctx context.Context, db *gorm.DB, buyerID string, offset, limit int) ([]domain.HistoryEntry, error) {
	var out []domain.HistoryEntry
	err := db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("changed_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountHistory returns the number of audit rows for a buyer.
func CountHistory(ctx context.Context, db *gorm.DB, buyerID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.HistoryEntry{}).
		Where("buyer_id = ?", buyerID).
		Count(&total).Error
	return total, err
}
