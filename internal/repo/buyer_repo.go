// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Buyer model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a buyer is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - CreateBuyer(ctx, db, buyer) -> *domain.Buyer, error
//     Inserts a new Buyer row, assigning UUID key and UTC timestamps.
//
//   - ListBuyersPage(ctx, db, filter, offset, limit) -> []domain.Buyer, error
//     Returns a filtered, paginated slice ordered by last update descending.
//
//   - ListBuyers(ctx, db, filter) -> []domain.Buyer, error
//     Returns every matching buyer (export path; no pagination).
//
//   - CountBuyers(ctx, db, filter) -> (int64, error)
//     Returns the number of buyers matching the filter.
//
//   - GetBuyer(ctx, db, id) -> *domain.Buyer, error
//     Fetches a single buyer by ID, or ErrNotFound if missing.
//
//   - UpdateBuyer(ctx, db, buyer) / UpdateBuyerStatus(ctx, db, id, status)
//     Persist a full-record update or a status-only update.
//
//   - DeleteBuyer(ctx, db, id) -> error
//     Removes a buyer; history rows cascade at the schema level.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.BuyerService) which enforces ownership, auditing, and
// concurrency rules.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leadstack/buyer-intake/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// BuyerFilter narrows list, count, and export queries. Zero-valued fields
// are inactive. Enum fields hold already-validated members; Query is free
// text matched case-insensitively as a substring across the searchable
// columns.
type BuyerFilter struct {
	Query        string
	City         domain.City
	PropertyType domain.PropertyType
	Status       domain.Status
	Timeline     domain.Timeline
}

// escapeLike neutralizes LIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// apply composes the filter onto q. Exact-match filters AND together; the
// search term ORs across full name, phone, email, city, property type,
// status, source, and notes. Everything is parameterized.
func (f BuyerFilter) apply(q *gorm.DB) *gorm.DB {
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Timeline != "" {
		q = q.Where("timeline = ?", f.Timeline)
	}
	if f.Query != "" {
		needle := "%" + escapeLike(strings.ToLower(f.Query)) + "%"
		cols := []string{"full_name", "phone", "email", "city", "property_type", "status", "source", "notes"}
		clauses := make([]string, len(cols))
		args := make([]any, len(cols))
		for i, col := range cols {
			clauses[i] = "lower(" + col + `) LIKE ? ESCAPE '\'`
			args[i] = needle
		}
		q = q.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	return q
}

// CreateBuyer inserts b, assigning a UUID primary key and UTC timestamps
// when unset. On success it returns the persisted record.
func CreateBuyer(ctx context.Context, db *gorm.DB, b *domain.Buyer) (*domain.Buyer, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	if err := db.WithContext(ctx).Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

// ListBuyersPage returns a filtered, paginated slice ordered by last update
// descending. Use CountBuyers for pagination metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListBuyersPage(ctx context.Context, db *gorm.DB, f BuyerFilter, offset, limit int) ([]domain.Buyer, error) {
	var out []domain.Buyer
	err := f.apply(db.WithContext(ctx)).
		Order("updated_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListBuyers returns every buyer matching the filter, ordered by last
// update descending. The export path depends on there being no pagination.
func ListBuyers(ctx context.Context, db *gorm.DB, f BuyerFilter) ([]domain.Buyer, error) {
	var out []domain.Buyer
	err := f.apply(db.WithContext(ctx).Model(&domain.Buyer{})).
		Order("updated_at desc").
		Find(&out).Error
	return out, err
}

// CountBuyers returns the number of buyers matching the filter.
func CountBuyers(ctx context.Context, db *gorm.DB, f BuyerFilter) (int64, error) {
	var total int64
	err := f.apply(db.WithContext(ctx).Model(&domain.Buyer{})).
		Count(&total).Error
	return total, err
}

// GetBuyer fetches a single buyer by ID. If the record does not exist, it
// returns ErrNotFound. On other DB errors, the raw error is returned.
func GetBuyer(ctx context.Context, db *gorm.DB, id string) (*domain.Buyer, error) {
	var b domain.Buyer
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBuyer persists every column of b (selected with "*" so cleared
// optional fields write NULL) and bumps UpdatedAt. If no rows are affected
// the record is missing and ErrNotFound is returned.
func UpdateBuyer(ctx context.Context, db *gorm.DB, b *domain.Buyer) error {
	b.UpdatedAt = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.Buyer{}).
		Where("id = ?", b.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(b)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateBuyerStatus updates only the status column (and UpdatedAt) of the
// buyer identified by id. If no rows are affected, it returns ErrNotFound.
func UpdateBuyerStatus(ctx context.Context, db *gorm.DB, id string, status domain.Status) error {
	res := db.WithContext(ctx).
		Model(&domain.Buyer{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBuyer removes a buyer row. History rows cascade via the schema
// constraint. If no rows are affected, it returns ErrNotFound.
func DeleteBuyer(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.Buyer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
