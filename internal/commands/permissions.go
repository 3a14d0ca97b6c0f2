package commands

import (
	"github.com/reign/calleditor/internal/calllog"
	"github.com/spf13/cobra"
)

type grantOptions struct {
	read  bool
	write bool
}

// selected returns the chosen capabilities, both when neither flag is set.
func (o grantOptions) selected() []calllog.Capability {
	if !o.read && !o.write {
		return calllog.Capabilities
	}
	var out []calllog.Capability
	if o.read {
		out = append(out, calllog.ReadCallLog)
	}
	if o.write {
		out = append(out, calllog.WriteCallLog)
	}
	return out
}

func addPermissions(topLevel *cobra.Command, g *globalOptions) {
	output := outputTable

	cmd := &cobra.Command{
		Use:     "permissions",
		Aliases: []string{"perms"},
		Short:   "show or change the call-log grants",
		Example: `
calleditor permissions
calleditor permissions grant
calleditor permissions revoke --write
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateOutput(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return showGrants(cmd, g, output)
		},
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", outputTable, "Output format. One of 'table' or 'json'.")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "show the current grants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showGrants(cmd, g, output)
		},
	})
	cmd.AddCommand(newSetGrantsCommand(g, &output, "grant", "grant call-log access", true))
	cmd.AddCommand(newSetGrantsCommand(g, &output, "revoke", "revoke call-log access", false))

	topLevel.AddCommand(cmd)
}

func newSetGrantsCommand(g *globalOptions, output *string, use, short string, granted bool) *cobra.Command {
	o := grantOptions{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(*output); err != nil {
				return err
			}
			e, err := loadEnv(g, envOptions{})
			if err != nil {
				return err
			}
			defer e.Close()

			change := map[calllog.Capability]bool{}
			for _, c := range o.selected() {
				change[c] = granted
			}
			if err := e.store.SetGrants(cmd.Context(), change); err != nil {
				return err
			}
			e.log.Info().Interface("grants", change).Msg("grants recorded")

			grants, err := e.store.Grants(cmd.Context())
			if err != nil {
				return err
			}
			return printGrants(cmd.OutOrStdout(), grants, *output)
		},
	}
	cmd.Flags().BoolVar(&o.read, "read", false, "Only the read capability.")
	cmd.Flags().BoolVar(&o.write, "write", false, "Only the write capability.")
	return cmd
}

func showGrants(cmd *cobra.Command, g *globalOptions, output string) error {
	e, err := loadEnv(g, envOptions{})
	if err != nil {
		return err
	}
	defer e.Close()

	grants, err := e.store.Grants(cmd.Context())
	if err != nil {
		return err
	}
	return printGrants(cmd.OutOrStdout(), grants, output)
}
