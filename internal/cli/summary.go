package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/budgetwise/internal/calculator"
	"github.com/mmynk/budgetwise/internal/cycle"
	"github.com/mmynk/budgetwise/internal/models"
)

type view string

const (
	viewAll        view = "all"
	viewCumulative view = "cumulative"
	viewIncome     view = "income"
	viewExpense    view = "expense"
)

func newSummaryCommand(root *rootOptions) *cobra.Command {
	var (
		count  int
		unit   string
		person string
		only   string
		from   string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the cumulative, income and expense views for a cycle",
		Example: `  budget summary
  budget summary --cycle 2 --unit week --person Alice
  budget summary --view expense
  budget summary --from household.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := cycle.ParseUnit(unit)
			if err != nil {
				return err
			}
			v := view(only)
			switch v {
			case viewAll, viewCumulative, viewIncome, viewExpense:
			default:
				return fmt.Errorf("unknown view %q: must be all, cumulative, income or expense", only)
			}

			b, err := root.snapshot(cmd.Context(), from)
			if err != nil {
				return err
			}
			ix := models.NewIndex(b)

			req := calculator.Request{Cycle: cycle.New(count, u)}
			if person != "" {
				p, ok := ix.LookupPerson(person)
				if !ok {
					return fmt.Errorf("no person with ID or name %q", person)
				}
				req.PersonID = p.ID
			}

			summary, err := calculator.BuildSummary(b, req)
			if err != nil {
				return err
			}
			for _, sk := range summary.Skipped {
				slog.Warn("Skipping transaction with invalid billing cycle",
					"transaction_id", sk.TransactionID,
					"name", sk.Name,
					"reason", sk.Reason,
				)
			}

			r := newRenderer(ix, root.cfg.Currency)
			fmt.Fprintln(cmd.OutOrStdout(), r.header(summary))
			if v == viewAll || v == viewCumulative {
				fmt.Fprintln(cmd.OutOrStdout(), r.cumulative(summary))
			}
			if v == viewAll || v == viewIncome {
				fmt.Fprintln(cmd.OutOrStdout(), r.breakdown("Income", summary.Income, summary.TotalIncome))
			}
			if v == viewAll || v == viewExpense {
				fmt.Fprintln(cmd.OutOrStdout(), r.breakdown("Expenses", summary.Expense, summary.TotalExpense))
			}
			if len(summary.Skipped) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), r.skipped(summary.Skipped))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "read an export file instead of the store")
	cmd.Flags().IntVar(&count, "cycle", 1, "number of units in the reporting cycle")
	cmd.Flags().StringVar(&unit, "unit", string(cycle.Month), "day, week, month or year")
	cmd.Flags().StringVar(&person, "person", "", "only count this person's share (ID or name)")
	cmd.Flags().StringVar(&only, "view", string(viewAll), "all, cumulative, income or expense")
	return cmd
}
