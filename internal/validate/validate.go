// Package validate checks a single candidate buyer record against field
// constraints and cross-field rules. It is pure: no I/O, no shared state,
// safe for concurrent use.
//
// Validation is first-error-only. Required fields are checked in a fixed
// order (fullName, phone, city, propertyType, purpose, timeline, source) so
// that the same input always surfaces the same diagnostic; cross-field
// rules run only after every per-field rule has passed.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/leadstack/buyer-intake/internal/domain"
)

var (
	phoneRE = regexp.MustCompile(`^\d{10,15}$`)
	emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Candidate carries the raw, caller-trimmed values of one buyer record.
// Enumerated fields arrive as plain strings and are checked against their
// closed sets here; optional strings use "" for absent, optional numbers nil.
type Candidate struct {
	FullName     string
	Email        string
	Phone        string
	City         string
	PropertyType string
	BHK          string
	Purpose      string
	BudgetMin    *int64
	BudgetMax    *int64
	Timeline     string
	Source       string
	Notes        string
	Tags         []string
	Status       string
}

// FieldError reports the first rule a candidate violated, attributed to a
// single field.
type FieldError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Error renders the diagnostic message. Every message names its field, so
// no extra qualification is added.
func (e *FieldError) Error() string { return e.Message }

func required(field string) *FieldError {
	return &FieldError{Field: field, Message: field + " is required"}
}

func oneOf[T ~string](field, got string, allowed []T) *FieldError {
	vals := make([]string, len(allowed))
	for i, v := range allowed {
		vals[i] = string(v)
	}
	return &FieldError{
		Field:   field,
		Value:   got,
		Message: fmt.Sprintf("%s must be one of %s", field, strings.Join(vals, ", ")),
	}
}

// Status checks a raw status value against the closed set. Status-only
// transitions bypass full-record validation, so they need this single check
// on its own.
func Status(raw string) (domain.Status, *FieldError) {
	if raw == "" {
		return "", required("status")
	}
	v, ok := domain.ParseStatus(raw)
	if !ok {
		return "", oneOf("status", raw, domain.Statuses)
	}
	return v, nil
}

// Record validates c and, on success, returns the normalized buyer with
// defaults applied: status falls back to New, tags to an empty list, and
// optional blanks become nil. System fields (id, owner, timestamps) are
// left for the storage layer to assign.
//
// On failure it returns the first violation encountered; it never
// accumulates multiple errors for one record.
func Record(c Candidate) (*domain.Buyer, *FieldError) {
	fullName := norm.NFC.String(c.FullName)
	notes := norm.NFC.String(c.Notes)

	if c.FullName == "" {
		return nil, required("fullName")
	}
	if n := utf8.RuneCountInString(fullName); n < 2 || n > 80 {
		return nil, &FieldError{Field: "fullName", Value: c.FullName, Message: "fullName must be between 2 and 80 characters"}
	}
	if c.Email != "" && !emailRE.MatchString(c.Email) {
		return nil, &FieldError{Field: "email", Value: c.Email, Message: "email must be a valid email address"}
	}
	if c.Phone == "" {
		return nil, required("phone")
	}
	if !phoneRE.MatchString(c.Phone) {
		return nil, &FieldError{Field: "phone", Value: c.Phone, Message: "phone must be 10 to 15 digits"}
	}
	if c.City == "" {
		return nil, required("city")
	}
	city, ok := domain.ParseCity(c.City)
	if !ok {
		return nil, oneOf("city", c.City, domain.Cities)
	}
	if c.PropertyType == "" {
		return nil, required("propertyType")
	}
	propertyType, ok := domain.ParsePropertyType(c.PropertyType)
	if !ok {
		return nil, oneOf("propertyType", c.PropertyType, domain.PropertyTypes)
	}
	var bhk *domain.BHK
	if c.BHK != "" {
		v, ok := domain.ParseBHK(c.BHK)
		if !ok {
			return nil, oneOf("bhk", c.BHK, domain.BHKs)
		}
		bhk = &v
	}
	if c.Purpose == "" {
		return nil, required("purpose")
	}
	purpose, ok := domain.ParsePurpose(c.Purpose)
	if !ok {
		return nil, oneOf("purpose", c.Purpose, domain.Purposes)
	}
	if c.BudgetMin != nil && *c.BudgetMin < 0 {
		return nil, &FieldError{Field: "budgetMin", Message: "budgetMin must be a non-negative integer"}
	}
	if c.BudgetMax != nil && *c.BudgetMax < 0 {
		return nil, &FieldError{Field: "budgetMax", Message: "budgetMax must be a non-negative integer"}
	}
	if c.Timeline == "" {
		return nil, required("timeline")
	}
	timeline, ok := domain.ParseTimeline(c.Timeline)
	if !ok {
		return nil, oneOf("timeline", c.Timeline, domain.Timelines)
	}
	if c.Source == "" {
		return nil, required("source")
	}
	source, ok := domain.ParseSource(c.Source)
	if !ok {
		return nil, oneOf("source", c.Source, domain.Sources)
	}
	if utf8.RuneCountInString(notes) > 1000 {
		return nil, &FieldError{Field: "notes", Message: "notes must be at most 1000 characters"}
	}
	status := domain.StatusNew
	if c.Status != "" {
		v, ok := domain.ParseStatus(c.Status)
		if !ok {
			return nil, oneOf("status", c.Status, domain.Statuses)
		}
		status = v
	}

	// Cross-field rules run after every per-field rule has passed.
	if propertyType.HasUnits() && bhk == nil {
		return nil, &FieldError{Field: "bhk", Message: "bhk is required for Apartment and Villa properties"}
	}
	if c.BudgetMin != nil && c.BudgetMax != nil && *c.BudgetMax < *c.BudgetMin {
		return nil, &FieldError{Field: "budgetMax", Message: "budgetMax must be greater than or equal to budgetMin"}
	}

	b := &domain.Buyer{
		FullName:     fullName,
		Phone:        c.Phone,
		City:         city,
		PropertyType: propertyType,
		BHK:          bhk,
		Purpose:      purpose,
		BudgetMin:    c.BudgetMin,
		BudgetMax:    c.BudgetMax,
		Timeline:     timeline,
		Source:       source,
		Status:       status,
		Tags:         domain.TagList{},
	}
	if c.Email != "" {
		email := c.Email
		b.Email = &email
	}
	if notes != "" {
		b.Notes = &notes
	}
	if len(c.Tags) > 0 {
		b.Tags = append(domain.TagList{}, c.Tags...)
	}
	return b, nil
}
