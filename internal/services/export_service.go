// Package services – ExportService
//
// This file implements ExportService, which renders the filtered buyer
// list as a CSV download. Export intentionally has no pagination: the
// caller gets every matching record in the listing order (updated_at
// descending), in exactly the fixed column layout the importer accepts.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/leadstack/buyer-intake/internal/exporter"
	"github.com/leadstack/buyer-intake/internal/repo"
)

// ExportService builds CSV exports of the buyer list.
type ExportService struct {
	// DB is the GORM handle used for the export query.
	DB *gorm.DB

	// Now supplies the timestamp used in the download filename.
	// Defaults to time.Now; tests pin it.
	Now func() time.Time
}

// Export validates the raw filters, fetches every matching buyer, and
// returns the download filename plus the rendered CSV document. Unknown
// filter members yield ErrInvalidFilter before any query runs.
func (s *ExportService) Export(ctx context.Context, p FilterParams) (filename, csv string, err error) {
	f, err := ParseFilter(p)
	if err != nil {
		return "", "", err
	}

	buyers, err := repo.ListBuyers(ctx, s.DB, f)
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return exporter.Filename(now, filterLabels(p)), exporter.Render(buyers), nil
}

// filterLabels renders the active filters in a fixed order so the same
// query always produces the same filename.
func filterLabels(p FilterParams) []exporter.FilterLabel {
	return []exporter.FilterLabel{
		{Key: "q", Value: p.Query},
		{Key: "city", Value: p.City},
		{Key: "propertyType", Value: p.PropertyType},
		{Key: "status", Value: p.Status},
		{Key: "timeline", Value: p.Timeline},
	}
}
