// Package exporter renders buyer lists as CSV text for download. The
// caller supplies the already-filtered, already-sorted records; this
// package only formats.
package exporter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leadstack/buyer-intake/internal/buyercsv"
	"github.com/leadstack/buyer-intake/internal/domain"
)

// Render produces the full CSV document: the fixed 14-column header
// followed by one line per buyer, each field escaped as needed. Tag lists
// are joined with ", "; absent optional values render as empty cells.
func Render(buyers []domain.Buyer) string {
	var b strings.Builder
	b.WriteString(buyercsv.EncodeRow(buyercsv.Columns))
	b.WriteByte('\n')
	for i := range buyers {
		b.WriteString(buyercsv.EncodeRow(row(&buyers[i])))
		b.WriteByte('\n')
	}
	return b.String()
}

func row(b *domain.Buyer) []string {
	return []string{
		b.FullName,
		strDeref(b.Email),
		b.Phone,
		string(b.City),
		string(b.PropertyType),
		bhkCell(b.BHK),
		string(b.Purpose),
		budgetCell(b.BudgetMin),
		budgetCell(b.BudgetMax),
		string(b.Timeline),
		string(b.Source),
		strDeref(b.Notes),
		buyercsv.JoinTags(b.Tags),
		string(b.Status),
	}
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func bhkCell(b *domain.BHK) string {
	if b == nil {
		return ""
	}
	return string(*b)
}

func budgetCell(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// FilterLabel is one active filter rendered into the download filename.
type FilterLabel struct {
	Key   string
	Value string
}

// Filename derives a deterministic download name from the export date and
// the active filters, e.g. "buyers-2025-04-12-city-Mohali-status-New.csv".
// Filter values are slugged so the name stays filesystem-safe.
func Filename(now time.Time, labels []FilterLabel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "buyers-%s", now.UTC().Format("2006-01-02"))
	for _, l := range labels {
		if v := slug(l.Value); v != "" {
			fmt.Fprintf(&b, "-%s-%s", l.Key, v)
		}
	}
	b.WriteString(".csv")
	return b.String()
}

// slug keeps letters, digits, and dashes, folding runs of anything else
// into a single dash.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
