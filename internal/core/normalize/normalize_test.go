package normalize

import (
	"testing"
)

func TestNormalize_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity ascii", in: "10/30/2025 12:11 PM", out: "10/30/2025 12:11 PM"},
		{name: "empty", in: "", out: ""},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'I', 'N', 'C', 0x80, '-', '4', '2'}),
			out:  "INC-42",
		},
		{name: "case preserved", in: "Oct 30, 2025", out: "Oct 30, 2025"},
		{name: "remove zero-widths", in: "INC\u200B-42\u200D", out: "INC-42"},
		{name: "remove bidi marks", in: "\u200E10/30/2025\u200F", out: "10/30/2025"},
		{name: "fullwidth digits", in: "１０／３０／２０２５ １２：１１ ＰＭ", out: "10/30/2025 12:11 PM"},
		{name: "nbsp between date and time", in: "Oct\u00a030, 2025\u00a012:11", out: "Oct 30, 2025 12:11"},
		{name: "collapse whitespace and newlines", in: "  Oct 30\n\t2025 \r\n 12:11  ", out: "Oct 30 2025 12:11"},
		{name: "control chars dropped", in: "INC\x00-\x0742\x7f", out: "INC-42"},
		{name: "c1 control dropped", in: "INC\u0085-42", out: "INC-42"},
		{name: "bom", in: "\uFEFFINC-7", out: "INC-7"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.in)
			if got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
			if again := n.Normalize(got); again != got {
				t.Fatalf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSelection_UsesSharedNormalizer(t *testing.T) {
	if got := Selection(" ＩＮＣ-42 "); got != "INC-42" {
		t.Fatalf("Selection = %q", got)
	}
}

func TestCollapseSpaces(t *testing.T) {
	in := " \t a \n b   c \r\n "
	want := "a b c"
	if got := collapseSpaces(in); got != want {
		t.Fatalf("collapseSpaces(%q) = %q, want %q", in, got, want)
	}
}

func TestSanitize(t *testing.T) {
	clean := "plain\ttext\nok"
	if got := Sanitize(clean); got != clean {
		t.Fatalf("clean input changed: %q", got)
	}
	if got := Sanitize("a\x00b\x1bc\x7fd"); got != "abcd" {
		t.Fatalf("Sanitize = %q", got)
	}
	if got := Sanitize(string([]byte{'x', 0xc3})); got != "x" {
		t.Fatalf("Sanitize invalid utf8 = %q", got)
	}
}
