// Package theme defines color themes for the finflex dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color
	Surface      lipgloss.Color // cards and panels
	SurfaceHover lipgloss.Color // selected rows, active tab
	Border       lipgloss.Color
	BorderAccent lipgloss.Color
	TextDim      lipgloss.Color
	TextMuted    lipgloss.Color
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	Safe         lipgloss.Color // under budget, goal progress
	Warn         lipgloss.Color
	Danger       lipgloss.Color // over budget
	Info         lipgloss.Color
	Fixed        lipgloss.Color // fixed bills
}

// Emerald is the default theme: slate surfaces with emerald accents.
var Emerald = Theme{
	Name:         "emerald",
	Background:   lipgloss.Color("#020617"),
	Surface:      lipgloss.Color("#0F172A"),
	SurfaceHover: lipgloss.Color("#1E293B"),
	Border:       lipgloss.Color("#334155"),
	BorderAccent: lipgloss.Color("#10B981"),
	TextDim:      lipgloss.Color("#475569"),
	TextMuted:    lipgloss.Color("#94A3B8"),
	TextPrimary:  lipgloss.Color("#F8FAFC"),
	Accent:       lipgloss.Color("#10B981"),
	Safe:         lipgloss.Color("#34D399"),
	Warn:         lipgloss.Color("#F59E0B"),
	Danger:       lipgloss.Color("#F43F5E"),
	Info:         lipgloss.Color("#38BDF8"),
	Fixed:        lipgloss.Color("#A78BFA"),
}

// FlexokiDark is a warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	Safe:         lipgloss.Color("#879A39"),
	Warn:         lipgloss.Color("#DA702C"),
	Danger:       lipgloss.Color("#D14D41"),
	Info:         lipgloss.Color("#4385BE"),
	Fixed:        lipgloss.Color("#8B7EC8"),
}

// Terminal uses the 16 ANSI colors so it follows the terminal's palette.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	Safe:         lipgloss.Color("2"),
	Warn:         lipgloss.Color("3"),
	Danger:       lipgloss.Color("1"),
	Info:         lipgloss.Color("4"),
	Fixed:        lipgloss.Color("5"),
}

// All lists the available themes.
var All = []Theme{Emerald, FlexokiDark, Terminal}

// Active is the currently selected theme.
var Active = Emerald

// ByName returns the theme with the given name, or Emerald.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Emerald
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Next returns the name of the theme after the active one.
func Next() string {
	for i, t := range All {
		if t.Name == Active.Name {
			return All[(i+1)%len(All)].Name
		}
	}
	return All[0].Name
}
