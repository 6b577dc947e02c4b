package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leadstack/buyer-intake/internal/domain"
	"github.com/leadstack/buyer-intake/internal/importer"
)

const importHeader = "fullName,email,phone,city,propertyType,bhk,purpose,budgetMin,budgetMax,timeline,source,notes,tags,status"

func importCSV(rows ...string) []byte {
	return []byte(importHeader + "\n" + strings.Join(rows, "\n") + "\n")
}

func TestImport_CommitsBatchAtomically(t *testing.T) {
	db := newTestDB(t)
	svc := &ImportService{DB: db}

	content := importCSV(
		"Asha Verma,asha@example.com,9876543210,Mohali,Apartment,TWO,Buy,5000000,6000000,ZERO_TO_3M,Website,corner unit,\"hot, broker\",New",
		"Rohan Gupta,,9123456789,Panchkula,Plot,,Buy,,,EXPLORING,Referral,,,",
	)

	rep, err := svc.Import(context.Background(), "agent-1", content)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !rep.Success || rep.TotalRows != 2 || rep.ValidRows != 2 || rep.InsertedCount != 2 {
		t.Fatalf("report = %+v; want full success for 2 rows", rep)
	}
	if len(rep.Errors) != 0 {
		t.Fatalf("errors = %v; want none", rep.Errors)
	}

	var buyers []domain.Buyer
	if err := db.Order("full_name asc").Find(&buyers).Error; err != nil {
		t.Fatalf("load buyers: %v", err)
	}
	if len(buyers) != 2 {
		t.Fatalf("buyer rows = %d; want 2", len(buyers))
	}
	for _, b := range buyers {
		if b.OwnerID != "agent-1" {
			t.Fatalf("owner = %q; want agent-1", b.OwnerID)
		}
		rows := historyRows(t, db, b.ID)
		if len(rows) != 1 || rows[0].Diff.Action != domain.ActionImported {
			t.Fatalf("buyer %s history = %+v; want one IMPORTED entry", b.FullName, rows)
		}
		if rows[0].Diff.Snapshot == nil || rows[0].Diff.Snapshot.FullName != b.FullName {
			t.Fatalf("snapshot mismatch for %s: %+v", b.FullName, rows[0].Diff.Snapshot)
		}
	}
}

func TestImport_GateBlocksWholeBatch(t *testing.T) {
	db := newTestDB(t)
	svc := &ImportService{DB: db}

	content := importCSV(
		"Asha Verma,,9876543210,Mohali,Apartment,TWO,Buy,,,ZERO_TO_3M,Website,,,",
		"Bad Row,,12,Mohali,Apartment,TWO,Buy,,,ZERO_TO_3M,Website,,,",
	)

	rep, err := svc.Import(context.Background(), "agent-1", content)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if rep.Success || rep.InsertedCount != 0 {
		t.Fatalf("report = %+v; want blocked batch", rep)
	}
	if rep.TotalRows != 2 || rep.ValidRows != 1 || len(rep.Errors) != 1 {
		t.Fatalf("report counts = %+v", rep)
	}
	if rep.Errors[0].Row != 3 || !strings.Contains(rep.Errors[0].Message, "phone") {
		t.Fatalf("row error = %+v; want phone error on file line 3", rep.Errors[0])
	}

	var count int64
	db.Model(&domain.Buyer{}).Count(&count)
	if count != 0 {
		t.Fatalf("blocked batch inserted %d rows; want 0", count)
	}
}

func TestImport_FatalFileErrors(t *testing.T) {
	db := newTestDB(t)
	svc := &ImportService{DB: db}

	_, err := svc.Import(context.Background(), "u1", nil)
	var fatal *importer.FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("expected FatalError for empty file, got %v", err)
	}

	_, err = svc.Import(context.Background(), "u1", []byte("name,phone\nAsha,987\n"))
	if !errors.As(err, &fatal) || !strings.Contains(fatal.Message, "missing required columns") {
		t.Fatalf("expected header FatalError, got %v", err)
	}
}

// The commit transaction failing must not leave partial rows behind, and
// must surface as a plain error rather than a row-error report.
func TestImport_CommitFailureRollsBack(t *testing.T) {
	db := newTestDBPartial(t, true /*buyer*/, false /*history*/)
	svc := &ImportService{DB: db}

	content := importCSV(
		"Asha Verma,,9876543210,Mohali,Apartment,TWO,Buy,,,ZERO_TO_3M,Website,,,",
	)

	rep, err := svc.Import(context.Background(), "u1", content)
	if err == nil {
		t.Fatalf("expected commit error, got report %+v", rep)
	}
	var fatal *importer.FatalError
	if errors.As(err, &fatal) {
		t.Fatalf("commit failure must not masquerade as a file error: %v", err)
	}

	var count int64
	db.Model(&domain.Buyer{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed commit left %d buyer rows; want 0", count)
	}
}
