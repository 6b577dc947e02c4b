// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file holds the aggregate queries behind conditional
// responses: row counts and newest-change timestamps feeding ETag generation
// in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/leadstack/buyer-intake/internal/domain"
)

// latestStat runs the shared count-plus-newest pattern on a prepared query.
// The newest timestamp comes from an ORDER BY ... LIMIT 1 scan rather than
// MAX(), which SQLite would hand back as TEXT. No matching rows yields
// (0, nil, nil).
func latestStat(q *gorm.DB, column string) (int64, *time.Time, error) {
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct{ TS time.Time }
	if err := q.Select(column + " AS ts").Order(column + " DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.TS, nil
}

// BuyersStats reports how many buyers match the filter and the newest
// UpdatedAt among them. The list handler folds both into its ETag.
func BuyersStats(ctx context.Context, db *gorm.DB, f BuyerFilter) (int64, *time.Time, error) {
	return latestStat(f.apply(db.WithContext(ctx).Model(&domain.Buyer{})), "updated_at")
}

// HistoryStats reports one buyer's audit row count and newest ChangedAt,
// for the history endpoint's ETag.
func HistoryStats(ctx context.Context, db *gorm.DB, buyerID string) (int64, *time.Time, error) {
	return latestStat(db.WithContext(ctx).Model(&domain.HistoryEntry{}).Where("buyer_id = ?", buyerID), "changed_at")
}
