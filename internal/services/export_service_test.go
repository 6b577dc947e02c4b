package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExport_FilteredCSV(t *testing.T) {
	db := newTestDB(t)
	buyers := NewBuyerService(db)
	ctx := context.Background()

	a := validCandidate()
	if _, err := buyers.Create(ctx, "u1", a); err != nil {
		t.Fatalf("seed: %v", err)
	}
	b := validCandidate()
	b.FullName = "Rohan Gupta"
	b.Phone = "9123456789"
	b.City = "Panchkula"
	if _, err := buyers.Create(ctx, "u1", b); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := &ExportService{
		DB:  db,
		Now: func() time.Time { return time.Date(2025, 4, 12, 10, 30, 0, 0, time.UTC) },
	}

	name, csv, err := svc.Export(ctx, FilterParams{City: "Panchkula"})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if name != "buyers-2025-04-12-city-Panchkula.csv" {
		t.Fatalf("filename = %q", name)
	}

	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d; want header + 1 row:\n%s", len(lines), csv)
	}
	if lines[0] != importHeader {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Rohan Gupta,") || !strings.HasSuffix(lines[1], ",New") {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestExport_EmptyResultKeepsHeader(t *testing.T) {
	db := newTestDB(t)
	svc := &ExportService{DB: db}

	name, csv, err := svc.Export(context.Background(), FilterParams{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasPrefix(name, "buyers-") || !strings.HasSuffix(name, ".csv") {
		t.Fatalf("filename = %q", name)
	}
	if strings.TrimRight(csv, "\n") != importHeader {
		t.Fatalf("empty export = %q; want header only", csv)
	}
}

func TestExport_InvalidFilter(t *testing.T) {
	db := newTestDB(t)
	svc := &ExportService{DB: db}

	_, _, err := svc.Export(context.Background(), FilterParams{Status: "Archived"})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}
