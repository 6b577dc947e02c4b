// Package services – list/export filter parsing
//
// Filter values arrive as raw query strings and must be members of the
// closed enum sets before they reach a query. Parsing happens here, once,
// so the repo layer only ever sees validated members and handlers get a
// stable sentinel (ErrInvalidFilter) to map to a 400.
package services

import (
	"fmt"
	"strings"

	"github.com/leadstack/buyer-intake/internal/domain"
	"github.com/leadstack/buyer-intake/internal/repo"
)

// FilterParams carries the raw filter inputs of a list or export request.
// Empty strings mean "not filtered".
type FilterParams struct {
	Query        string
	City         string
	PropertyType string
	Status       string
	Timeline     string
}

// ParseFilter validates p against the enum sets and returns the storage
// filter. An unknown member yields ErrInvalidFilter (wrapped with the field
// and offending value) before any query runs.
func ParseFilter(p FilterParams) (repo.BuyerFilter, error) {
	f := repo.BuyerFilter{Query: strings.TrimSpace(p.Query)}

	if v := strings.TrimSpace(p.City); v != "" {
		m, ok := domain.ParseCity(v)
		if !ok {
			return repo.BuyerFilter{}, fmt.Errorf("%w: unknown city %q", ErrInvalidFilter, v)
		}
		f.City = m
	}
	if v := strings.TrimSpace(p.PropertyType); v != "" {
		m, ok := domain.ParsePropertyType(v)
		if !ok {
			return repo.BuyerFilter{}, fmt.Errorf("%w: unknown propertyType %q", ErrInvalidFilter, v)
		}
		f.PropertyType = m
	}
	if v := strings.TrimSpace(p.Status); v != "" {
		m, ok := domain.ParseStatus(v)
		if !ok {
			return repo.BuyerFilter{}, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, v)
		}
		f.Status = m
	}
	if v := strings.TrimSpace(p.Timeline); v != "" {
		m, ok := domain.ParseTimeline(v)
		if !ok {
			return repo.BuyerFilter{}, fmt.Errorf("%w: unknown timeline %q", ErrInvalidFilter, v)
		}
		f.Timeline = m
	}
	return f, nil
}
