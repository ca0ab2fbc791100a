package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{80, 3}, {81, 4}, {7, 7}, {100, 1}} {
		widths := LayoutRow(tc.total, tc.n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
		if widths[0] < widths[len(widths)-1] {
			t.Errorf("LayoutRow(%d, %d) = %v, remainder should go first", tc.total, tc.n, widths)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")
	defer theme.SetActive("emerald")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Errorf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("padding line %d has no ANSI styling", i)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Safe today", Value: "₹1,250"},
		{Label: "Runway", Value: "140 days"},
		{Label: "Score", Value: "82%", Hint: "on track"},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestColumnChartHeight(t *testing.T) {
	chart := ColumnChart([]float64{0, 100, 50}, []string{"Mon", "Tue", "Today"}, theme.Active.Accent, 30, 4)
	lines := strings.Split(chart, "\n")
	// rows + axis + labels
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6", len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "Today") {
		t.Errorf("label row %q missing Today", lines[len(lines)-1])
	}
}

func TestTabAtXRoundTrip(t *testing.T) {
	pos := 1
	for i, tab := range Tabs {
		w := TabVisualWidth(tab, i == 0)
		if got := TabAtX(pos, 0); got != i {
			t.Errorf("TabAtX(%d) = %d, want %d", pos, got, i)
		}
		if got := TabAtX(pos+w-1, 0); got != i {
			t.Errorf("TabAtX(%d) = %d, want %d", pos+w-1, got, i)
		}
		pos += w + 2
	}
	if TabAtX(0, 0) != -1 {
		t.Error("column 0 is padding")
	}
}

func TestTabIdxByKey(t *testing.T) {
	if TabIdxByKey('l') != 2 {
		t.Errorf("TabIdxByKey('l') = %d, want 2", TabIdxByKey('l'))
	}
	if TabIdxByKey('z') != -1 {
		t.Error("unknown key should return -1")
	}
}
