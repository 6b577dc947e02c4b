// Package buyercsv implements the small CSV grammar shared by the buyer
// import and export paths: comma-separated fields, double-quote delimited
// values, doubled-quote escaping, and the fixed 14-column buyer schema.
// It does no semantic validation; that belongs to the validate package.
package buyercsv

import (
	"fmt"
	"strings"
)

// Columns is the canonical buyer column list, in wire order. Import files
// must declare every name in their header; exports emit exactly this header.
var Columns = []string{
	"fullName", "email", "phone", "city", "propertyType", "bhk", "purpose",
	"budgetMin", "budgetMax", "timeline", "source", "notes", "tags", "status",
}

// ColumnCount is the expected number of fields per row.
const ColumnCount = 14

// SplitLines breaks raw file content into lines. CRLF is normalized to LF
// and a UTF-8 byte order mark on the first line is dropped. Blank lines are
// kept; callers filter them before per-row processing.
func SplitLines(text string) []string {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// SplitFields decodes one line into its raw field values. Unquoted fields
// are trimmed of surrounding whitespace; quoted fields are preserved as
// written, with "" collapsing to a literal quote. The line is assumed to be
// a complete record: embedded newlines inside quoted fields are not
// supported because callers split on newlines first.
func SplitFields(line string) []string {
	var (
		fields  []string
		cur     strings.Builder
		inQuote bool
		quoted  bool
	)
	flush := func() {
		v := cur.String()
		if !quoted {
			v = strings.TrimSpace(v)
		}
		fields = append(fields, v)
		cur.Reset()
		quoted = false
	}
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuote:
			if ch == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					cur.WriteByte('"')
					i++
				} else {
					inQuote = false
				}
			} else {
				cur.WriteByte(ch)
			}
		case ch == '"':
			// Padding between a comma and an opening quote is not data.
			if strings.TrimSpace(cur.String()) == "" {
				cur.Reset()
			}
			inQuote = true
			quoted = true
		case ch == ',':
			flush()
		default:
			// Padding after a closing quote is not data either.
			if quoted && (ch == ' ' || ch == '\t') {
				continue
			}
			cur.WriteByte(ch)
		}
	}
	flush()
	return fields
}

// Pad extends fields with empty strings up to n entries. Rows that already
// have n or more entries are returned unchanged.
func Pad(fields []string, n int) []string {
	for len(fields) < n {
		fields = append(fields, "")
	}
	return fields
}

// CheckHeader verifies that every required column name appears in the
// decoded header row, in any order. Extra columns are tolerated. The
// returned error names every missing column at once; a bad header is a
// whole-file problem, not a row problem.
func CheckHeader(header []string, required []string) error {
	have := make(map[string]struct{}, len(header))
	for _, h := range header {
		have[strings.TrimSpace(h)] = struct{}{}
	}
	var missing []string
	for _, want := range required {
		if _, ok := have[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// EscapeField quotes v when it contains a comma, double quote, or newline,
// doubling any internal quotes. Plain values pass through untouched.
func EscapeField(v string) string {
	if !strings.ContainsAny(v, ",\"\n\r") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// EncodeRow renders one CSV record line from its field values.
func EncodeRow(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeField(f)
	}
	return strings.Join(escaped, ",")
}

// SplitTags parses a comma-separated tag string into a trimmed list with
// empty entries dropped. Joining the result with ", " and re-parsing yields
// the same list.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinTags renders a tag list in the form SplitTags accepts.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
