package commands

import (
	"context"

	"github.com/reign/calleditor/internal/app"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

func addUI(topLevel *cobra.Command, g *globalOptions) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the call-log editor TUI",
		Example: `
calleditor ui
calleditor --config ./calleditor.yaml
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, g)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command, g *globalOptions) error {
	e, err := loadEnv(g, envOptions{logToFile: true})
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	e.log.Info().Int("limit", e.repo.Limit()).Msg("starting tui")
	p := tea.NewProgram(
		app.New(e.repo, e.store, e.log),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	return err
}
