package cli

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mmynk/budgetwise/internal/calculator"
	"github.com/mmynk/budgetwise/internal/cycle"
	"github.com/mmynk/budgetwise/internal/models"
)

func newBalancesCommand(root *rootOptions) *cobra.Command {
	var (
		count int
		unit  string
		from  string
	)

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show who fronts transactions for whom and how to settle up",
		Example: `  budget balances
  budget balances --cycle 1 --unit year`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := cycle.ParseUnit(unit)
			if err != nil {
				return err
			}
			targetDays, err := cycle.New(count, u).Days()
			if err != nil {
				return err
			}

			b, err := root.snapshot(cmd.Context(), from)
			if err != nil {
				return err
			}

			balances, transfers, skipped := calculator.Balances(b, targetDays)
			r := newRenderer(models.NewIndex(b), root.cfg.Currency)
			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(fmt.Sprintf("Balances per %s", cycle.New(count, u))))
			fmt.Fprintln(cmd.OutOrStdout(), r.balances(balances, transfers))
			if len(skipped) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), r.skipped(skipped))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "read an export file instead of the store")
	cmd.Flags().IntVar(&count, "cycle", 1, "number of units in the reporting cycle")
	cmd.Flags().StringVar(&unit, "unit", string(cycle.Month), "day, week, month or year")
	return cmd
}

func (r *renderer) personName(id string) string {
	if p, ok := r.ix.Person(id); ok {
		return p.Name
	}
	return id
}

func (r *renderer) balances(balances []calculator.Balance, transfers []calculator.Transfer) string {
	if len(balances) == 0 {
		return mutedStyle.Render("No transactions paid through an owned payment method.")
	}

	rows := make([][]string, 0, len(balances))
	for _, bal := range balances {
		rows = append(rows, []string{
			r.personName(bal.PersonID),
			r.formatMoney(bal.Flow),
			r.formatMoney(bal.Share),
			r.formatMoney(bal.Net),
		})
	}
	t := r.newTable("Person", "Through own methods", "Own share", "Net").
		Rows(rows...).
		StyleFunc(func(i, col int) lipgloss.Style {
			if i == table.HeaderRow {
				return headerStyle
			}
			if col == 3 {
				return r.amountStyle(balances[i].Net)
			}
			return cellStyle
		})

	out := t.String()
	if len(transfers) == 0 {
		return out + "\n" + mutedStyle.Render("Everyone is square.")
	}
	for _, tr := range transfers {
		out += fmt.Sprintf("\n%s pays %s %s", r.personName(tr.From), r.personName(tr.To), money.New(tr.Amount.Cents, r.currency).Display())
	}
	return out
}

