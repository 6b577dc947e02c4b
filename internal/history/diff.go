// Package history computes the field-level deltas recorded with buyer
// mutations and builds the tagged payloads stored in the audit log.
package history

import (
	"bytes"
	"encoding/json"

	"github.com/leadstack/buyer-intake/internal/domain"
)

type fieldPair struct {
	name   string
	before any
	after  any
}

// trackedPairs lists every business field in a stable order. System fields
// (id, owner, timestamps) are never diffed.
func trackedPairs(before, after *domain.Buyer) []fieldPair {
	return []fieldPair{
		{"fullName", before.FullName, after.FullName},
		{"email", before.Email, after.Email},
		{"phone", before.Phone, after.Phone},
		{"city", before.City, after.City},
		{"propertyType", before.PropertyType, after.PropertyType},
		{"bhk", before.BHK, after.BHK},
		{"purpose", before.Purpose, after.Purpose},
		{"budgetMin", before.BudgetMin, after.BudgetMin},
		{"budgetMax", before.BudgetMax, after.BudgetMax},
		{"timeline", before.Timeline, after.Timeline},
		{"source", before.Source, after.Source},
		{"status", before.Status, after.Status},
		{"notes", before.Notes, after.Notes},
		{"tags", before.Tags, after.Tags},
	}
}

// raw serializes a tracked field value. The tracked types (strings, string
// pointers, int64 pointers, tag lists) cannot fail to marshal.
func raw(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// Changes compares two record states field by field and returns the set of
// tracked fields whose serialized value differs, as {old, new} pairs.
// Equality is structural: a reordered tag list counts as a change, a nil
// pointer differs from a pointer to the empty string. An empty result means
// the mutation was a no-op and no history entry should be written.
func Changes(before, after *domain.Buyer) map[string]domain.FieldChange {
	out := make(map[string]domain.FieldChange)
	for _, f := range trackedPairs(before, after) {
		oldRaw, newRaw := raw(f.before), raw(f.after)
		if !bytes.Equal(oldRaw, newRaw) {
			out[f.name] = domain.FieldChange{Old: oldRaw, New: newRaw}
		}
	}
	return out
}

// Snapshot copies a buyer's business fields into the payload form stored
// with CREATED and IMPORTED entries.
func Snapshot(b *domain.Buyer) *domain.RecordSnapshot {
	return &domain.RecordSnapshot{
		FullName:     b.FullName,
		Email:        b.Email,
		Phone:        b.Phone,
		City:         b.City,
		PropertyType: b.PropertyType,
		BHK:          b.BHK,
		Purpose:      b.Purpose,
		BudgetMin:    b.BudgetMin,
		BudgetMax:    b.BudgetMax,
		Timeline:     b.Timeline,
		Source:       b.Source,
		Status:       b.Status,
		Notes:        b.Notes,
		Tags:         append(domain.TagList{}, b.Tags...),
	}
}

// CreatedPayload builds the payload for a freshly created buyer.
func CreatedPayload(b *domain.Buyer) domain.DiffPayload {
	return domain.DiffPayload{Action: domain.ActionCreated, Snapshot: Snapshot(b)}
}

// ImportedPayload builds the payload for a buyer created via CSV import.
func ImportedPayload(b *domain.Buyer) domain.DiffPayload {
	return domain.DiffPayload{Action: domain.ActionImported, Snapshot: Snapshot(b)}
}

// UpdatedPayload wraps a non-empty change set produced by Changes.
func UpdatedPayload(changes map[string]domain.FieldChange) domain.DiffPayload {
	return domain.DiffPayload{Action: domain.ActionUpdated, Changes: changes}
}

// StatusChange builds the single-field payload for a status transition.
// The second return is false when old and new are equal, in which case the
// caller must not record anything.
func StatusChange(old, new domain.Status) (domain.DiffPayload, bool) {
	if old == new {
		return domain.DiffPayload{}, false
	}
	return domain.DiffPayload{
		Action: domain.ActionStatusChanged,
		Changes: map[string]domain.FieldChange{
			"status": {Old: raw(old), New: raw(new)},
		},
	}, true
}
