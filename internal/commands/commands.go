// Package commands wires the calleditor cobra command tree.
package commands

import (
	"github.com/spf13/cobra"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// New builds the root command. Running it without a subcommand opens the
// TUI.
func New(info BuildInfo) *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "calleditor",
		Short:        "Browse and edit the device call log.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, g)
		},
	}
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ./.calleditor.yaml or ~/.calleditor.yaml)")

	addCommands(cmd, g, info)
	return cmd
}

func addCommands(topLevel *cobra.Command, g *globalOptions, info BuildInfo) {
	addUI(topLevel, g)
	addList(topLevel, g)
	addAdd(topLevel, g)
	addPermissions(topLevel, g)
	addServe(topLevel, g)
	addMCP(topLevel, g, info)
	addVersion(topLevel, info)
}

type globalOptions struct {
	configPath string
}
