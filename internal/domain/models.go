// Package domain defines the persistence models for buyer leads and their
// change history. These types are mapped with GORM and form the core data
// layer of the intake application.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Buyer represents a single captured lead. Each buyer is owned by the user
// who created or imported it; ownership gates every mutation.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - FullName: lead name, 2-80 characters.
//   - Email: optional contact email.
//   - Phone: numeric string of 10-15 digits; indexed for lookup.
//   - City / PropertyType / Purpose / Timeline / Source / Status: closed
//     enumerations, stored as their wire strings.
//   - BHK: unit size, present only when the property type has units.
//   - BudgetMin / BudgetMax: optional budget bounds in whole currency units.
//   - Notes: optional free text, capped at 1000 characters.
//   - Tags: free-form labels, serialized as a JSON array.
//   - OwnerID: identifier of the owning user; indexed for efficient retrieval.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM; UpdatedAt doubles
//     as the concurrency token for stale-write detection.
type Buyer struct {
	ID           string       `json:"id" gorm:"type:char(36);primaryKey"`
	FullName     string       `json:"fullName" gorm:"type:varchar(80);not null"`
	Email        *string      `json:"email,omitempty" gorm:"type:varchar(254)"`
	Phone        string       `json:"phone" gorm:"type:varchar(15);not null;index"`
	City         City         `json:"city" gorm:"type:varchar(16);not null"`
	PropertyType PropertyType `json:"propertyType" gorm:"type:varchar(16);not null"`
	BHK          *BHK         `json:"bhk,omitempty" gorm:"column:bhk;type:varchar(8)"`
	Purpose      Purpose      `json:"purpose" gorm:"type:varchar(8);not null"`
	BudgetMin    *int64       `json:"budgetMin,omitempty"`
	BudgetMax    *int64       `json:"budgetMax,omitempty"`
	Timeline     Timeline     `json:"timeline" gorm:"type:varchar(16);not null"`
	Source       Source       `json:"source" gorm:"type:varchar(16);not null"`
	Status       Status       `json:"status" gorm:"type:varchar(16);not null;default:'New';index"`
	Notes        *string      `json:"notes,omitempty" gorm:"type:text"`
	Tags         TagList      `json:"tags" gorm:"type:text"`
	OwnerID      string       `json:"ownerId" gorm:"type:varchar(64);not null;index:idx_owner_buyers"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt" gorm:"index"`
}

// TableName returns the database table name for Buyer.
func (Buyer) TableName() string { return "buyers" }

// HistoryEntry records one change made to a buyer. Entries are append-only
// and cascade-deleted with their buyer.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - BuyerID: foreign key to the changed buyer (indexed with ChangedAt).
//   - ChangedBy: identifier of the acting user.
//   - ChangedAt: when the change was applied.
//   - Diff: tagged payload describing the change (see DiffPayload).
//   - Buyer: FK association, ensures cascade delete/update.
type HistoryEntry struct {
	ID        string      `json:"id" gorm:"type:char(36);primaryKey"`
	BuyerID   string      `json:"buyerId" gorm:"type:char(36);not null;index:idx_buyer_history,priority:1"`
	ChangedBy string      `json:"changedBy" gorm:"type:varchar(64);not null"`
	ChangedAt time.Time   `json:"changedAt" gorm:"index:idx_buyer_history,priority:2"`
	Diff      DiffPayload `json:"diff" gorm:"type:text;not null"`

	// Buyer is the changed lead. History is cascade-deleted if the
	// underlying buyer is removed.
	Buyer Buyer `json:"-" gorm:"foreignKey:BuyerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for HistoryEntry.
func (HistoryEntry) TableName() string { return "buyer_history" }

// TagList is a slice of free-form labels stored as a JSON array in a single
// text column. A nil list marshals as [] so the wire shape never shows null.
type TagList []string

// MarshalJSON renders a nil list as an empty JSON array.
func (t TagList) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// Value serializes the list for storage.
func (t TagList) Value() (driver.Value, error) {
	b, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan restores the list from its stored JSON form.
func (t *TagList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		return t.scanBytes([]byte(v))
	case []byte:
		return t.scanBytes(v)
	default:
		return fmt.Errorf("domain: cannot scan %T into TagList", src)
	}
}

func (t *TagList) scanBytes(b []byte) error {
	if len(b) == 0 {
		*t = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("domain: decode tag list: %w", err)
	}
	*t = out
	return nil
}
