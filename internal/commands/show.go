package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/fareview/internal/export"
	"github.com/cleared-dev/fareview/internal/render"
)

func newShowCommand(configPath *string) *cobra.Command {
	var asCSV bool
	var noAmount bool
	var grouped bool

	cmd := &cobra.Command{
		Use:   "show <card>",
		Short: "Print the transaction history for a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}

			stmt, err := a.service.Statement(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asCSV {
				return export.WriteEntries(out, stmt.Entries)
			}
			return render.WriteTable(out, stmt, render.TableOptions{
				Money:      a.money,
				ShowAmount: a.cfg.Display.ShowAmount && !noAmount,
				Grouped:    grouped,
			})
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV instead of a table")
	cmd.Flags().BoolVar(&noAmount, "no-amount", false, "hide the amount column")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "number runs of same-day transactions")

	return cmd
}
