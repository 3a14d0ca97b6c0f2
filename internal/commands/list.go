package commands

import (
	"github.com/spf13/cobra"
)

func addList(topLevel *cobra.Command, g *globalOptions) {
	output := outputTable

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list the most recent calls",
		Example: `
calleditor list
calleditor list --output json
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateOutput(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(g, envOptions{})
			if err != nil {
				return err
			}
			defer e.Close()

			calls, err := e.svc.ListCalls(cmd.Context())
			if err != nil {
				return err
			}
			return printCalls(cmd.OutOrStdout(), calls, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format. One of 'table' or 'json'.")

	topLevel.AddCommand(cmd)
}
