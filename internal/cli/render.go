package cli

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmynk/budgetwise/internal/calculator"
	"github.com/mmynk/budgetwise/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	incomeStyle  = cellStyle.Foreground(lipgloss.Color("10")) // green
	expenseStyle = cellStyle.Foreground(lipgloss.Color("9"))  // red
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type renderer struct {
	ix       *models.Index
	currency string
}

func newRenderer(ix *models.Index, currency string) *renderer {
	return &renderer{ix: ix, currency: currency}
}

func (r *renderer) header(s *calculator.Summary) string {
	title := fmt.Sprintf("Budget per %s (%d days)", s.Cycle, s.TargetDays)
	if s.PersonID != "" {
		if p, ok := r.ix.Person(s.PersonID); ok {
			title += " for " + p.Name
		}
	}
	return titleStyle.Render(title)
}

// formatMoney shows m in the display currency, with an explicit sign for
// positive amounts.
func (r *renderer) formatMoney(m models.Money) string {
	s := money.New(m.Cents, r.currency).Display()
	if m.Sign() > 0 {
		s = "+" + s
	}
	return s
}

func (r *renderer) amountStyle(m models.Money) lipgloss.Style {
	switch {
	case m.Sign() > 0:
		return incomeStyle
	case m.Sign() < 0:
		return expenseStyle
	}
	return cellStyle
}

// categoryCell is the category name tinted with its accent color. Unknown
// rows use the plain default.
func (r *renderer) categoryCell(id string, unknown bool) string {
	if unknown {
		return models.UnknownCategoryName
	}
	return r.ix.CategoryName(id)
}

func (r *renderer) categoryStyle(id string, unknown bool) lipgloss.Style {
	if unknown {
		return cellStyle
	}
	c, _ := r.ix.Category(id)
	return cellStyle.
		Background(lipgloss.Color(c.AccentColor(models.DefaultAccent))).
		Foreground(lipgloss.Color("0"))
}

func (r *renderer) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...)
}

func (r *renderer) cumulative(s *calculator.Summary) string {
	if len(s.Cumulative) == 0 {
		return mutedStyle.Render("No transactions in this cycle.")
	}

	rows := make([][]string, 0, len(s.Cumulative))
	for _, row := range s.Cumulative {
		rows = append(rows, []string{
			r.categoryCell(row.CategoryID, row.Unknown),
			r.formatMoney(row.Subtotal),
			r.formatMoney(row.CumulativeTotal),
		})
	}

	t := r.newTable("Category", "Subtotal", "Cumulative").
		Rows(rows...).
		StyleFunc(func(i, col int) lipgloss.Style {
			if i == table.HeaderRow {
				return headerStyle
			}
			row := s.Cumulative[i]
			switch col {
			case 0:
				return r.categoryStyle(row.CategoryID, row.Unknown)
			case 1:
				return r.amountStyle(row.Subtotal)
			default:
				return r.amountStyle(row.CumulativeTotal)
			}
		})
	return titleStyle.Render("Cumulative") + "\n" + t.String()
}

func (r *renderer) breakdown(title string, rows []calculator.BreakdownRow, total models.Money) string {
	if len(rows) == 0 {
		return titleStyle.Render(title) + "\n" + mutedStyle.Render("None.")
	}

	cells := make([][]string, 0, len(rows)+1)
	for _, row := range rows {
		cells = append(cells, []string{
			r.categoryCell(row.CategoryID, row.Unknown),
			r.formatMoney(row.Subtotal),
			fmt.Sprintf("%.2f%%", row.Percent),
		})
	}
	cells = append(cells, []string{"Total", r.formatMoney(total), ""})

	t := r.newTable("Category", "Subtotal", "Share").
		Rows(cells...).
		StyleFunc(func(i, col int) lipgloss.Style {
			if i == table.HeaderRow || i == len(rows) {
				return headerStyle
			}
			row := rows[i]
			switch col {
			case 0:
				return r.categoryStyle(row.CategoryID, row.Unknown)
			case 1:
				return r.amountStyle(row.Subtotal)
			default:
				return cellStyle
			}
		})
	return titleStyle.Render(title) + "\n" + t.String()
}

func (r *renderer) skipped(skipped []calculator.Skipped) string {
	lines := make([]string, 0, len(skipped))
	for _, sk := range skipped {
		lines = append(lines, fmt.Sprintf("  %s (%s): %s", sk.Name, sk.TransactionID, sk.Reason))
	}
	return mutedStyle.Render("Skipped:\n" + strings.Join(lines, "\n"))
}
