package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

func TestFormatMoney(t *testing.T) {
	Configure("₹", "en")
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{1562.5, "₹1,563"},
		{1234567.4, "₹1,234,567"},
		{-4000, "-₹4,000"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	Configure("$", "en")
	defer Configure("₹", "en")
	if got := FormatAmount(1250); got != "$1,250" {
		t.Errorf("FormatAmount(1250) = %q", got)
	}
	if got := FormatAmount(45.5); got != "$45.50" {
		t.Errorf("FormatAmount(45.5) = %q", got)
	}
}

func TestFormatRunway(t *testing.T) {
	if got := FormatRunway(model.UnboundedRunway); got != "∞ days" {
		t.Errorf("FormatRunway(sentinel) = %q", got)
	}
	if got := FormatRunway(1); got != "1 day" {
		t.Errorf("FormatRunway(1) = %q", got)
	}
	if got := FormatRunway(42); got != "42 days" {
		t.Errorf("FormatRunway(42) = %q", got)
	}
}

func TestFormatCountdown(t *testing.T) {
	if got := FormatCountdown(90061); got != "1d 01h 01m 01s" {
		t.Errorf("FormatCountdown = %q", got)
	}
}

func TestFormatWhen(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	if got := FormatWhen(now.Add(-3*time.Hour), now); got != "3 hours ago" {
		t.Errorf("FormatWhen(3h) = %q", got)
	}
	if got := FormatWhen(now.AddDate(0, 0, -30), now); got != "16 May 2025" {
		t.Errorf("FormatWhen(30d) = %q", got)
	}
}

func TestRenderTable_AlignsMultibyteCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Spent"},
		Rows: [][]string{
			{"Food & Drinks", "₹1,200"},
			{"---"},
			{"Total", "₹12,000"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	for _, l := range lines[1:] {
		if w, want := len([]rune(stripANSI(l))), len([]rune(stripANSI(lines[0]))); w != want {
			t.Errorf("line %q has width %d, want %d", stripANSI(l), w, want)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 50, 100}); got != "▁▄█" {
		t.Errorf("RenderSparkline = %q", got)
	}
	if got := RenderSparkline([]float64{0, 0}); got != "▁▁" {
		t.Errorf("RenderSparkline(zeros) = %q", got)
	}
}
