// Package importer drives the CSV bulk-import scan: file-level intake
// checks, header mapping, per-row decode and validation, and the
// all-or-nothing gate that decides whether anything may be committed.
//
// The scan never touches storage. It classifies problems into two kinds:
// fatal file-level violations (size, row cap, header) returned as a
// FatalError, and row-level violations collected per row. A single bad row
// vetoes the whole batch; that is policy, not an accident.
package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leadstack/buyer-intake/internal/buyercsv"
	"github.com/leadstack/buyer-intake/internal/domain"
	"github.com/leadstack/buyer-intake/internal/validate"
)

const (
	// MaxFileBytes caps the accepted upload size.
	MaxFileBytes = 5 << 20
	// MaxRows caps the number of data rows per file, header excluded.
	MaxRows = 200
)

// FatalError is a whole-file violation: nothing was scanned row by row and
// nothing may be committed. It maps to a client error, not a server error.
type FatalError struct {
	Message string
}

func (e *FatalError) Error() string { return e.Message }

// RowError is one data row's first validation failure. Row numbers are
// user-facing file line numbers: the header is line 1, so the first data
// row reports as row 2.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// PendingRow is a validated record waiting on the commit gate.
type PendingRow struct {
	Row    int
	Record *domain.Buyer
}

// ScanResult is the complete outcome of scanning one file.
type ScanResult struct {
	Pending []PendingRow
	Errors  []RowError
	Total   int
}

// Report is the wire shape returned to the caller of an import request.
type Report struct {
	Success       bool       `json:"success"`
	TotalRows     int        `json:"totalRows"`
	ValidRows     int        `json:"validRows"`
	Errors        []RowError `json:"errors"`
	InsertedCount int        `json:"insertedCount"`
}

// FailureReport builds the blocked-batch report: full error list, nothing
// inserted.
func FailureReport(res *ScanResult) *Report {
	return &Report{
		Success:       false,
		TotalRows:     res.Total,
		ValidRows:     len(res.Pending),
		Errors:        res.Errors,
		InsertedCount: 0,
	}
}

// CommitReport builds the success report after every pending row was
// persisted.
func CommitReport(res *ScanResult) *Report {
	return &Report{
		Success:       true,
		TotalRows:     res.Total,
		ValidRows:     len(res.Pending),
		Errors:        []RowError{},
		InsertedCount: len(res.Pending),
	}
}

// Scan runs the full file scan. It returns a FatalError for file-level
// violations; otherwise the ScanResult carries every row outcome and the
// caller applies the gate.
func Scan(content []byte) (*ScanResult, error) {
	if len(content) == 0 {
		return nil, &FatalError{Message: "file is empty"}
	}
	if len(content) > MaxFileBytes {
		return nil, &FatalError{Message: fmt.Sprintf("file exceeds the %dMB size limit", MaxFileBytes>>20)}
	}

	lines := buyercsv.SplitLines(string(content))
	var dataLines []string
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) != "" {
			dataLines = append(dataLines, line)
		}
	}
	if len(dataLines) == 0 {
		return nil, &FatalError{Message: "file has no data rows"}
	}
	if len(dataLines) > MaxRows {
		return nil, &FatalError{Message: fmt.Sprintf("too many rows: %d exceeds the %d row limit", len(dataLines), MaxRows)}
	}

	header := buyercsv.SplitFields(lines[0])
	if err := buyercsv.CheckHeader(header, buyercsv.Columns); err != nil {
		return nil, &FatalError{Message: err.Error()}
	}

	// Header order is caller's choice; columns are addressed by name from
	// here on.
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}

	res := &ScanResult{Total: len(dataLines)}
	for i, line := range dataLines {
		rowNum := i + 2 // header is line 1

		fields := buyercsv.SplitFields(line)
		if len(fields) > len(header) {
			res.Errors = append(res.Errors, RowError{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d", len(fields), len(header)),
			})
			continue
		}
		fields = buyercsv.Pad(fields, len(header))
		get := func(name string) string { return fields[colIdx[name]] }

		c := validate.Candidate{
			FullName:     get("fullName"),
			Email:        get("email"),
			Phone:        get("phone"),
			City:         get("city"),
			PropertyType: get("propertyType"),
			BHK:          get("bhk"),
			Purpose:      get("purpose"),
			Timeline:     get("timeline"),
			Source:       get("source"),
			Notes:        get("notes"),
			Tags:         buyercsv.SplitTags(get("tags")),
			Status:       get("status"),
		}

		bad := false
		if v, err := parseBudget("budgetMin", get("budgetMin")); err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: err.Error()})
			bad = true
		} else {
			c.BudgetMin = v
		}
		if !bad {
			if v, err := parseBudget("budgetMax", get("budgetMax")); err != nil {
				res.Errors = append(res.Errors, RowError{Row: rowNum, Message: err.Error()})
				bad = true
			} else {
				c.BudgetMax = v
			}
		}
		if bad {
			continue
		}

		record, ferr := validate.Record(c)
		if ferr != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: ferr.Error()})
			continue
		}
		res.Pending = append(res.Pending, PendingRow{Row: rowNum, Record: record})
	}
	return res, nil
}

// parseBudget turns a raw budget cell into an optional integer. Blank
// means absent; anything else must be a whole number.
func parseBudget(field, raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number", field)
	}
	return &v, nil
}
