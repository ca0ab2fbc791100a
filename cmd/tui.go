package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	// Force TrueColor so background styling always produces ANSI codes.
	if !flagNoColor {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	if err := tui.Run(e.repo, e.cfg, e.log); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
