package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// HistoryAction tags the kind of change a history entry describes.
type HistoryAction string

// Accepted HistoryAction values.
const (
	ActionCreated       HistoryAction = "CREATED"
	ActionImported      HistoryAction = "IMPORTED"
	ActionUpdated       HistoryAction = "UPDATED"
	ActionStatusChanged HistoryAction = "STATUS_CHANGED"
)

// FieldChange records a single field transition. Old and New keep the
// serialized form of the value so every field type renders uniformly and
// pointer fields distinguish absent (null) from empty.
type FieldChange struct {
	Old json.RawMessage `json:"old"`
	New json.RawMessage `json:"new"`
}

// RecordSnapshot is the full copy of a buyer's business fields stored with
// CREATED and IMPORTED entries. System fields (id, owner, timestamps) are
// deliberately absent.
type RecordSnapshot struct {
	FullName     string       `json:"fullName"`
	Email        *string      `json:"email"`
	Phone        string       `json:"phone"`
	City         City         `json:"city"`
	PropertyType PropertyType `json:"propertyType"`
	BHK          *BHK         `json:"bhk"`
	Purpose      Purpose      `json:"purpose"`
	BudgetMin    *int64       `json:"budgetMin"`
	BudgetMax    *int64       `json:"budgetMax"`
	Timeline     Timeline     `json:"timeline"`
	Source       Source       `json:"source"`
	Status       Status       `json:"status"`
	Notes        *string      `json:"notes"`
	Tags         TagList      `json:"tags"`
}

// DiffPayload is the tagged union persisted with each history entry.
// Snapshot is set for CREATED and IMPORTED actions; Changes is set for
// UPDATED and STATUS_CHANGED actions. The two never appear together.
type DiffPayload struct {
	Action   HistoryAction          `json:"action"`
	Snapshot *RecordSnapshot        `json:"snapshot,omitempty"`
	Changes  map[string]FieldChange `json:"changes,omitempty"`
}

// Validate checks that the payload's shape matches its action tag.
func (p DiffPayload) Validate() error {
	switch p.Action {
	case ActionCreated, ActionImported:
		if p.Snapshot == nil {
			return fmt.Errorf("domain: %s payload requires a snapshot", p.Action)
		}
		if p.Changes != nil {
			return fmt.Errorf("domain: %s payload must not carry changes", p.Action)
		}
	case ActionUpdated, ActionStatusChanged:
		if len(p.Changes) == 0 {
			return fmt.Errorf("domain: %s payload requires at least one change", p.Action)
		}
		if p.Snapshot != nil {
			return fmt.Errorf("domain: %s payload must not carry a snapshot", p.Action)
		}
	default:
		return fmt.Errorf("domain: unknown history action %q", string(p.Action))
	}
	return nil
}

// Value serializes the payload for storage.
func (p DiffPayload) Value() (driver.Value, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan restores the payload from its stored JSON form.
func (p *DiffPayload) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("domain: cannot scan %T into DiffPayload", src)
	}
	if err := json.Unmarshal(b, p); err != nil {
		return fmt.Errorf("domain: decode history payload: %w", err)
	}
	return p.Validate()
}
