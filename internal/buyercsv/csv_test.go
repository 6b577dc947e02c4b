package buyercsv

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitFields(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"trims unquoted", "  a , b ,c  ", []string{"a", "b", "c"}},
		{"quoted comma", `"Acme, Inc.",b`, []string{"Acme, Inc.", "b"}},
		{"doubled quote", `"say ""hi""",b`, []string{`say "hi"`, "b"}},
		{"quoted keeps whitespace", `"  ",b`, []string{"  ", "b"}},
		{"space before quote", ` "Acme, Inc." ,b`, []string{"Acme, Inc.", "b"}},
		{"empty fields", "a,,c,", []string{"a", "", "c", ""}},
		{"single empty line", "", []string{""}},
		{"unterminated quote", `"abc`, []string{"abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitFields(tc.line)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitFields(%q) = %#v; want %#v", tc.line, got, tc.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("\uFEFFh1,h2\r\na,b\rc,d\n")
	want := []string{"h1,h2", "a,b", "c,d", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitLines = %#v; want %#v", got, want)
	}
}

func TestPad(t *testing.T) {
	got := Pad([]string{"a"}, 3)
	if !reflect.DeepEqual(got, []string{"a", "", ""}) {
		t.Fatalf("Pad = %#v", got)
	}
	full := []string{"a", "b", "c"}
	if got := Pad(full, 3); len(got) != 3 {
		t.Fatalf("Pad of full row changed length to %d", len(got))
	}
}

func TestCheckHeader(t *testing.T) {
	if err := CheckHeader(Columns, Columns); err != nil {
		t.Fatalf("full header rejected: %v", err)
	}

	// Order must not matter and extras must be tolerated.
	shuffled := append([]string{"extra"}, Columns[7:]...)
	shuffled = append(shuffled, Columns[:7]...)
	if err := CheckHeader(shuffled, Columns); err != nil {
		t.Fatalf("reordered header rejected: %v", err)
	}

	header := append([]string{}, Columns[:11]...) // drop notes, tags, status
	err := CheckHeader(header, Columns)
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	msg := err.Error()
	for _, col := range []string{"notes", "tags", "status"} {
		if !strings.Contains(msg, col) {
			t.Fatalf("error %q should name missing column %q", msg, col)
		}
	}
}

func TestEscapeField(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain", "plain"},
		{"Acme, Inc.", `"Acme, Inc."`},
		{`5 "corner" plot`, `"5 ""corner"" plot"`},
		{"line1\nline2", "\"line1\nline2\""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := EscapeField(tc.in); got != tc.want {
			t.Fatalf("EscapeField(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestEncodeRow_RoundTrip(t *testing.T) {
	in := []string{"Acme, Inc.", `say "hi"`, "plain", ""}
	line := EncodeRow(in)
	got := SplitFields(line)
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip produced %#v; want %#v", got, in)
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags("tag1, , tag3")
	want := []string{"tag1", "tag3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitTags = %#v; want %#v", got, want)
	}

	// Round trip: join then re-parse yields the same list.
	again := SplitTags(JoinTags(got))
	if !reflect.DeepEqual(again, got) {
		t.Fatalf("round trip produced %#v; want %#v", again, got)
	}

	if SplitTags("   ") != nil {
		t.Fatal("whitespace-only input should yield no tags")
	}
}
