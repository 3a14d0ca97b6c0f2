package commands

import (
	"github.com/reign/calleditor/internal/service"
	"github.com/spf13/cobra"
)

func addAdd(topLevel *cobra.Command, g *globalOptions) {
	opts := service.AddCallOptions{}
	output := outputTable

	cmd := &cobra.Command{
		Use:   "add",
		Short: "record a call, or an edited copy of an existing one",
		Long: `Record a call in the call log.

With --from, the fields of an existing entry are copied first and the given
flags override them. Edits are always written as a new record.`,
		Example: `
calleditor add --number 555-0100 --type outgoing --duration 00:04:12
calleditor add --from 42 --date 01/02/2024 --time "09:30 AM"
calleditor add --number 555-0100 --type missed
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

			calls, err := e.svc.AddCall(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printCalls(cmd.OutOrStdout(), calls, output)
		},
	}

	cmd.Flags().StringVar(&opts.BaseID, "from", "", "Entry id to copy values from.")
	cmd.Flags().StringVar(&opts.Number, "number", "", "Phone number.")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Cached contact name.")
	cmd.Flags().StringVar(&opts.Date, "date", "", "Date as dd/MM/yyyy (default today).")
	cmd.Flags().StringVar(&opts.Time, "time", "", "Time as hh:mm AM/PM (default now).")
	cmd.Flags().StringVar(&opts.Duration, "duration", "", "Duration as HH:mm:ss (ignored for missed calls).")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Call type: incoming, outgoing or missed (default incoming).")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format. One of 'table' or 'json'.")

	topLevel.AddCommand(cmd)
}
