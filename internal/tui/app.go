// Package tui provides the interactive Bubble Tea dashboard for finflex.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/config"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/pipeline"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/store"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/components"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/theme"
)

// LedgerLoadedMsg is sent when the ledger has been read from the store.
type LedgerLoadedMsg struct {
	Ledger pipeline.Ledger
	Err    error
}

// ProfileSavedMsg is sent after the setup wizard's profile is persisted.
type ProfileSavedMsg struct {
	Err error
}

type tickMsg time.Time

const (
	tabDashboard = iota
	tabCategories
	tabLedger
	tabPath
)

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 140
	minContentHeight = 5
	loadTimeout      = 10 * time.Second
)

// App is the root Bubble Tea model.
type App struct {
	repo store.Repository
	cfg  config.Config
	log  logrus.FieldLogger
	now  func() time.Time

	// Data
	ledger   pipeline.Ledger
	snap     model.Snapshot
	loaded   bool
	loadErr  error
	loadedAt time.Time

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	status    string

	ledgerState ledgerState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	spinner         spinner.Model
	refreshInterval time.Duration
}

// NewApp creates the dashboard model. cfg supplies the theme and refresh rate.
func NewApp(repo store.Repository, cfg config.Config, log logrus.FieldLogger) App {
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	search := textinput.New()
	search.Placeholder = "filter by category or note"
	search.CharLimit = 64
	search.Prompt = "/ "

	return App{
		repo:            repo,
		cfg:             cfg,
		log:             log,
		now:             time.Now,
		spinner:         sp,
		refreshInterval: cfg.RefreshInterval(),
		ledgerState:     ledgerState{search: search},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		loadLedgerCmd(a.repo),
		tickCmd(a.refreshInterval),
	)
}

// recompute derives a fresh snapshot from the loaded ledger.
func (a *App) recompute() {
	a.snap = a.ledger.Snapshot(a.now())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := components.TabAtX(msg.X, a.activeTab); tab >= 0 {
					a.activeTab = tab
				}
			}
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabLedger {
				a.ledgerState.move(-1, len(a.filteredTransactions()))
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabLedger {
				a.ledgerState.move(1, len(a.filteredTransactions()))
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Ledger search mode intercepts all keys when active
		if a.activeTab == tabLedger && a.ledgerState.searching {
			return a.updateLedgerSearch(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "t":
			a.cycleTheme()
			return a, nil
		case "r":
			a.status = "reloading"
			return a, loadLedgerCmd(a.repo)
		case "e":
			a.startSetup()
			return a, a.setupForm.Init()
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		if a.activeTab == tabLedger {
			switch key {
			case "/":
				a.ledgerState.searching = true
				return a, a.ledgerState.search.Focus()
			case "j", "down":
				a.ledgerState.move(1, len(a.filteredTransactions()))
				return a, nil
			case "k", "up":
				a.ledgerState.move(-1, len(a.filteredTransactions()))
				return a, nil
			case "esc":
				a.ledgerState.clearSearch()
				return a, nil
			}
		}

		if len(key) == 1 {
			if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case LedgerLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		a.status = ""
		if msg.Err != nil {
			a.log.WithError(msg.Err).Warn("loading ledger")
			return a, nil
		}
		a.ledger = msg.Ledger
		a.loadedAt = a.now()
		a.recompute()
		a.ledgerState.clamp(len(a.filteredTransactions()))

		if !a.ledger.HasProfile {
			a.startSetup()
			return a, a.setupForm.Init()
		}
		return a, nil

	case ProfileSavedMsg:
		if msg.Err != nil {
			a.status = "save failed: " + msg.Err.Error()
			return a, nil
		}
		return a, loadLedgerCmd(a.repo)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		if a.loaded && a.loadErr == nil {
			a.recompute()
		}
		return a, tickCmd(a.refreshInterval)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.ledgerState.searching {
		var cmd tea.Cmd
		a.ledgerState.search, cmd = a.ledgerState.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) startSetup() {
	a.needSetup = true
	a.setupVals = newSetupValues(a.ledger.Profile, theme.Active.Name)
	a.setupForm = newSetupForm(a.setupVals)
	if a.width > 0 {
		a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
	}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.setupForm = nil
		a.needSetup = false
		p, err := a.setupVals.profile()
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		if a.setupVals.themeName != theme.Active.Name {
			theme.SetActive(a.setupVals.themeName)
			a.saveTheme()
		}
		return a, saveProfileCmd(a.repo, p)
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
		return a, nil
	}
	return a, cmd
}

func (a *App) cycleTheme() {
	theme.SetActive(theme.Next())
	a.spinner.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)
	a.saveTheme()
	a.status = "theme: " + theme.Active.Name
}

// saveTheme persists the active theme. Failures only affect the next start.
func (a *App) saveTheme() {
	a.cfg.Appearance.Theme = theme.Active.Name
	if err := config.Save(a.cfg); err != nil {
		a.log.WithError(err).Debug("saving theme")
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.loadErr != nil {
		return a.viewError()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	t := theme.Active
	msg := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Background).
		Render(fmt.Sprintf("Terminal too narrow: %d columns, need %d", a.width, minTerminalWidth))
	return lipgloss.Place(a.width, max(a.height, 3), lipgloss.Center, lipgloss.Center, msg,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoading() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	text := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(" Opening ledger...")
	card := cardStyle.Render(a.spinner.View() + text)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewError() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Danger).
		Background(t.Surface).
		Padding(1, 3)
	title := lipgloss.NewStyle().Foreground(t.Danger).Background(t.Surface).Bold(true).Render("Could not load the ledger")
	body := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(a.loadErr.Error())
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("[r] retry  [q] quit")
	card := cardStyle.Render(title + "\n\n" + body + "\n\n" + hint)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Info).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	bindings := []struct{ key, desc string }{
		{"d c l p", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move through the ledger"},
		{"/", "Filter the ledger"},
		{"Esc", "Clear filter"},
		{"e", "Edit profile"},
		{"t", "Cycle theme"},
		{"r", "Reload from disk"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "%s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	right := a.status
	if right == "" {
		right = a.snap.At.Format("Mon 02 Jan 15:04:05")
	}
	statusBar := components.RenderStatusBar(w, "", right)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabDashboard:
		content = a.renderDashboardTab(cw)
	case tabCategories:
		content = a.renderCategoriesTab(cw)
	case tabLedger:
		content = a.renderLedgerTab(cw, contentH)
	case tabPath:
		content = a.renderPathTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

func tickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadLedgerCmd(repo store.Repository) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		l, err := pipeline.LoadLedger(ctx, repo)
		return LedgerLoadedMsg{Ledger: l, Err: err}
	}
}

func saveProfileCmd(repo store.Repository, p model.Profile) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return ProfileSavedMsg{Err: repo.SaveProfile(ctx, p)}
	}
}

// Run starts the dashboard in the alternate screen and blocks until exit.
func Run(repo store.Repository, cfg config.Config, log logrus.FieldLogger) error {
	p := tea.NewProgram(NewApp(repo, cfg, log), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
