package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/cli"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/components"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/theme"
)

// ledgerState is the Ledger tab's cursor and filter.
type ledgerState struct {
	search    textinput.Model
	searching bool
	query     string
	cursor    int
}

func (s *ledgerState) move(delta, n int) {
	s.cursor += delta
	s.clamp(n)
}

func (s *ledgerState) clamp(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *ledgerState) clearSearch() {
	s.query = ""
	s.search.SetValue("")
	s.search.Blur()
	s.searching = false
	s.cursor = 0
}

func (a App) updateLedgerSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.ledgerState.searching = false
		a.ledgerState.search.Blur()
		return a, nil
	case "esc":
		a.ledgerState.clearSearch()
		return a, nil
	}

	var cmd tea.Cmd
	a.ledgerState.search, cmd = a.ledgerState.search.Update(msg)
	a.ledgerState.query = strings.TrimSpace(a.ledgerState.search.Value())
	a.ledgerState.cursor = 0
	return a, cmd
}

// filteredTransactions returns the ledger, newest first, matching the query
// against category and note.
func (a App) filteredTransactions() []model.Transaction {
	q := strings.ToLower(a.ledgerState.query)
	if q == "" {
		return a.ledger.Transactions
	}
	var out []model.Transaction
	for _, tx := range a.ledger.Transactions {
		if strings.Contains(strings.ToLower(tx.Category.Name()), q) ||
			strings.Contains(strings.ToLower(tx.Note), q) {
			out = append(out, tx)
		}
	}
	return out
}

func (a App) renderLedgerTab(cw, h int) string {
	t := theme.Active
	txs := a.filteredTransactions()
	inner := components.CardInnerWidth(cw)

	title := fmt.Sprintf("Ledger · %d entries", len(txs))
	if a.ledgerState.query != "" {
		title += fmt.Sprintf(" matching %q", a.ledgerState.query)
	}

	var b strings.Builder
	if a.ledgerState.searching {
		b.WriteString(a.ledgerState.search.View())
		b.WriteString("\n")
	}

	if len(txs) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("No transactions. Add one with: finflex add <amount> <category>"))
		return components.ContentCard(title, b.String(), cw)
	}

	const whenW, amountW = 14, 12
	catW := min(20, inner/4)
	noteW := max(inner-whenW-amountW-catW-3, 0)

	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	b.WriteString(headStyle.Render(fmt.Sprintf("%-*s %-*s %*s %s", whenW, "When", catW, "Category", amountW, "Amount", "Note")))
	b.WriteString("\n")

	// Card border, title and header take 5 lines.
	visible := max(h-5, 1)
	if a.ledgerState.searching {
		visible--
	}
	start := 0
	if a.ledgerState.cursor >= visible {
		start = a.ledgerState.cursor - visible + 1
	}
	end := min(start+visible, len(txs))

	now := a.now()
	for i := start; i < end; i++ {
		tx := txs[i]
		bg := t.Surface
		if i == a.ledgerState.cursor {
			bg = t.SurfaceHover
		}
		catColor := t.TextPrimary
		if tx.IsFixed {
			catColor = t.Fixed
		}
		cell := func(fg lipgloss.Color, s string) string {
			return lipgloss.NewStyle().Foreground(fg).Background(bg).Render(s)
		}
		line := cell(t.TextMuted, fmt.Sprintf("%-*s ", whenW, truncStr(cli.FormatWhen(tx.Timestamp, now), whenW))) +
			cell(catColor, fmt.Sprintf("%-*s ", catW, truncStr(tx.Category.Name(), catW))) +
			cell(t.TextPrimary, fmt.Sprintf("%*s ", amountW, cli.FormatAmount(tx.Amount))) +
			cell(t.TextDim, fmt.Sprintf("%-*s", noteW, truncStr(tx.Note, noteW)))
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return components.ContentCard(title, b.String(), cw)
}
