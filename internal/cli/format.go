// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

var (
	currency = "₹"
	printer  = message.NewPrinter(language.English)
)

// Configure sets the currency symbol and the locale used for digit grouping.
// An unparseable locale falls back to English.
func Configure(symbol, locale string) {
	if symbol != "" {
		currency = symbol
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	printer = message.NewPrinter(tag)
}

// Currency returns the configured currency symbol.
func Currency() string { return currency }

// FormatNumber groups digits for the configured locale.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatMoney formats an amount in whole currency units.
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return currency + "n/a"
	}
	n := int64(math.Round(v))
	if n < 0 {
		return "-" + currency + FormatNumber(-n)
	}
	return currency + FormatNumber(n)
}

// FormatAmount formats an entry amount, keeping paise/cents when present.
func FormatAmount(v float64) string {
	if v == math.Trunc(v) {
		return FormatMoney(v)
	}
	whole := math.Trunc(v)
	frac := int64(math.Round(math.Abs(v-whole) * 100))
	if frac == 100 {
		return FormatMoney(v)
	}
	return fmt.Sprintf("%s.%02d", FormatMoney(whole), frac)
}

// FormatSigned formats v with an explicit sign.
func FormatSigned(v float64) string {
	if v >= 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatPercent formats a 0-100 value.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

// FormatRunway formats days of runway, showing the unbounded sentinel as ∞.
func FormatRunway(days int) string {
	if days >= model.UnboundedRunway {
		return "∞ days"
	}
	return FormatDays(days)
}

// FormatDays formats a day count.
func FormatDays(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d day", n)
	}
	return fmt.Sprintf("%d days", n)
}

// FormatCountdown formats seconds as "Dd HHh MMm SSs".
func FormatCountdown(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	d := secs / 86400
	h := (secs % 86400) / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%dd %02dh %02dm %02ds", d, h, m, s)
}

// FormatWhen formats a ledger timestamp relative to now.
func FormatWhen(t, now time.Time) string {
	if now.Sub(t) < 7*24*time.Hour && !t.After(now) {
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return t.Format("02 Jan 2006")
}
