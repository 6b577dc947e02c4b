// Package services – ImportService
//
// This file implements ImportService, which turns an uploaded CSV file into
// committed buyer rows. The scan itself (intake caps, header mapping,
// per-row validation) lives in the importer package and never touches
// storage; this service owns the gate decision and the atomic commit.
//
// Failure classes are kept strictly apart:
//   - file-level violations surface as *importer.FatalError (client error),
//   - row-level violations veto the batch and come back inside the report,
//   - a failed commit transaction is a server error, never a row error.
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/leadstack/buyer-intake/internal/history"
	"github.com/leadstack/buyer-intake/internal/importer"
	"github.com/leadstack/buyer-intake/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ImportService commits scanned CSV batches on behalf of a user.
type ImportService struct {
	// DB is the GORM handle; the commit runs as one transaction on it.
	DB *gorm.DB
}

// Import scans content and, when every row is valid, inserts all records
// (owned by userID) together with their IMPORTED history entries in a
// single transaction. Any invalid row blocks the whole batch; the report
// then lists every row error and nothing is inserted.
func (s *ImportService) Import(ctx context.Context, userID string, content []byte) (*importer.Report, error) {
	tr := otel.Tracer("services/ImportService")
	ctx, span := tr.Start(ctx, "Import",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("file.bytes", len(content)),
		),
	)
	defer span.End()

	res, err := importer.Scan(content)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("rows.total", res.Total),
		attribute.Int("rows.valid", len(res.Pending)),
		attribute.Int("rows.invalid", len(res.Errors)),
	)

	if len(res.Errors) > 0 {
		return importer.FailureReport(res), nil
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range res.Pending {
			p.Record.OwnerID = userID
			if _, err := repo.CreateBuyer(ctx, tx, p.Record); err != nil {
				return fmt.Errorf("row %d: %w", p.Row, err)
			}
			if _, err := repo.CreateHistory(ctx, tx, p.Record.ID, userID, history.ImportedPayload(p.Record)); err != nil {
				return fmt.Errorf("row %d history: %w", p.Row, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import commit: %w", err)
	}

	return importer.CommitReport(res), nil
}
