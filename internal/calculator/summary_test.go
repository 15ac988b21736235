package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/mmynk/budgetwise/internal/cycle"
	"github.com/mmynk/budgetwise/internal/models"
)

// testBudget has one transaction per interesting case: income, a shared
// expense, a weekly expense, income in a deleted category, an invalid cycle
// and an empty category.
func testBudget() *models.Budget {
	monthly := cycle.New(1, cycle.Month)
	return &models.Budget{
		People: []models.Person{
			{ID: "me", Name: "Me!"},
			{ID: "other", Name: "Other"},
		},
		Categories: []models.Category{
			{ID: "salaries", Name: "Salaries"},
			{ID: "housing", Name: "Housing"},
			{ID: "food", Name: "Groceries"},
			{ID: "leisure", Name: "Leisure"},
		},
		Transactions: []models.Transaction{
			{ID: "t1", Name: "Salary", CategoryID: "salaries", Amount: models.MustMoney(5432.10),
				BillingCycle: monthly, Payers: models.Payers{"me": 100}},
			{ID: "t2", Name: "Rent", CategoryID: "housing", Amount: models.MustMoney(-1234.56),
				BillingCycle: monthly, Payers: models.Payers{"me": 50, "other": 50}},
			{ID: "t3", Name: "Groceries", CategoryID: "food", Amount: models.MustMoney(-100),
				BillingCycle: cycle.New(1, cycle.Week), Payers: models.Payers{"me": 100}},
			{ID: "t4", Name: "Side gig", CategoryID: "deleted", Amount: models.MustMoney(200),
				BillingCycle: cycle.New(2, cycle.Week), Payers: models.Payers{"other": 100}},
			{ID: "t5", Name: "Broken", CategoryID: "food", Amount: models.MustMoney(-50),
				BillingCycle: cycle.New(0, cycle.Month), Payers: models.Payers{"me": 100}},
		},
	}
}

func TestBuildSummary(t *testing.T) {
	monthly := cycle.New(1, cycle.Month)

	tests := []struct {
		name         string
		req          Request
		wantErr      bool
		validateFunc func(t *testing.T, s *Summary)
	}{
		{
			name: "everyone over a month",
			req:  Request{Cycle: monthly},
			validateFunc: func(t *testing.T, s *Summary) {
				// 5432.10, 0 (skipped), -428.57, -1234.56 then unknown 428.58
				wantCumulative := []CumulativeRow{
					{CategoryID: "salaries", Subtotal: models.Cents(543210), CumulativeTotal: models.Cents(543210)},
					{CategoryID: "food", Subtotal: models.Cents(-42857), CumulativeTotal: models.Cents(500353)},
					{CategoryID: "housing", Subtotal: models.Cents(-123456), CumulativeTotal: models.Cents(376897)},
					{Unknown: true, Subtotal: models.Cents(42858), CumulativeTotal: models.Cents(419755)},
				}
				assertCumulative(t, s.Cumulative, wantCumulative)

				if s.TotalIncome != models.Cents(586068) {
					t.Errorf("TotalIncome = %s, want 5860.68", s.TotalIncome)
				}
				if s.TotalExpense != models.Cents(-166313) {
					t.Errorf("TotalExpense = %s, want -1663.13", s.TotalExpense)
				}

				assertBreakdown(t, "income", s.Income, []BreakdownRow{
					{CategoryID: "salaries", Subtotal: models.Cents(543210), Percent: 92.6873},
					{Unknown: true, Subtotal: models.Cents(42858), Percent: 7.3127},
				})
				assertBreakdown(t, "expense", s.Expense, []BreakdownRow{
					{CategoryID: "housing", Subtotal: models.Cents(-123456), Percent: 74.2305},
					{CategoryID: "food", Subtotal: models.Cents(-42857), Percent: 25.7695},
				})

				if len(s.Skipped) != 1 || s.Skipped[0].TransactionID != "t5" {
					t.Errorf("Skipped = %+v, want only t5", s.Skipped)
				}
				if s.TargetDays != 30 {
					t.Errorf("TargetDays = %d, want 30", s.TargetDays)
				}
			},
		},
		{
			name: "filtered to me",
			req:  Request{Cycle: monthly, PersonID: "me"},
			validateFunc: func(t *testing.T, s *Summary) {
				assertCumulative(t, s.Cumulative, []CumulativeRow{
					{CategoryID: "salaries", Subtotal: models.Cents(543210), CumulativeTotal: models.Cents(543210)},
					{CategoryID: "food", Subtotal: models.Cents(-42857), CumulativeTotal: models.Cents(500353)},
					{CategoryID: "housing", Subtotal: models.Cents(-61728), CumulativeTotal: models.Cents(438625)},
				})
				if s.TotalIncome != models.Cents(543210) {
					t.Errorf("TotalIncome = %s, want 5432.10", s.TotalIncome)
				}
				if s.TotalExpense != models.Cents(-104585) {
					t.Errorf("TotalExpense = %s, want -1045.85", s.TotalExpense)
				}
				assertBreakdown(t, "income", s.Income, []BreakdownRow{
					{CategoryID: "salaries", Subtotal: models.Cents(543210), Percent: 100},
				})
			},
		},
		{
			name: "filtered to other",
			req:  Request{Cycle: monthly, PersonID: "other"},
			validateFunc: func(t *testing.T, s *Summary) {
				assertCumulative(t, s.Cumulative, []CumulativeRow{
					{CategoryID: "housing", Subtotal: models.Cents(-61728), CumulativeTotal: models.Cents(-61728)},
					{Unknown: true, Subtotal: models.Cents(42858), CumulativeTotal: models.Cents(-18870)},
				})
				assertBreakdown(t, "income", s.Income, []BreakdownRow{
					{Unknown: true, Subtotal: models.Cents(42858), Percent: 100},
				})
				assertBreakdown(t, "expense", s.Expense, []BreakdownRow{
					{CategoryID: "housing", Subtotal: models.Cents(-61728), Percent: 100},
				})
			},
		},
		{
			name: "nobody's share is empty",
			req:  Request{Cycle: monthly, PersonID: "stranger"},
			validateFunc: func(t *testing.T, s *Summary) {
				if len(s.Cumulative) != 0 || len(s.Income) != 0 || len(s.Expense) != 0 {
					t.Errorf("expected empty views, got %+v", s)
				}
				if !s.TotalIncome.IsZero() || !s.TotalExpense.IsZero() {
					t.Errorf("totals = %s / %s, want zero", s.TotalIncome, s.TotalExpense)
				}
			},
		},
		{
			name:    "invalid report cycle",
			req:     Request{Cycle: cycle.New(0, cycle.Month)},
			wantErr: true,
		},
		{
			name:    "unknown report unit",
			req:     Request{Cycle: cycle.New(1, cycle.Unit("quarter"))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := BuildSummary(testBudget(), tt.req)
			if tt.wantErr {
				if !errors.Is(err, cycle.ErrInvalidCycle) {
					t.Errorf("BuildSummary() error = %v, want ErrInvalidCycle", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildSummary() unexpected error: %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, s)
			}
		})
	}
}

func TestBuildSummarySalaryScenario(t *testing.T) {
	b := &models.Budget{
		People:     []models.Person{{ID: "me", Name: "Me!"}},
		Categories: []models.Category{{ID: "salaries", Name: "Salaries"}},
		Transactions: []models.Transaction{{
			ID: "salary", Name: "Salary", CategoryID: "salaries",
			Amount:       models.MustMoney(5432.10),
			BillingCycle: cycle.New(1, cycle.Month),
			Payers:       models.Payers{"me": 100},
		}},
	}

	s, err := BuildSummary(b, Request{Cycle: cycle.New(1, cycle.Month)})
	if err != nil {
		t.Fatalf("BuildSummary() error: %v", err)
	}
	if len(s.Cumulative) != 1 || s.Cumulative[0].Subtotal != models.Cents(543210) {
		t.Errorf("Cumulative = %+v, want Salaries 5432.10", s.Cumulative)
	}
	if s.TotalIncome != models.Cents(543210) {
		t.Errorf("TotalIncome = %s, want 5432.10", s.TotalIncome)
	}
	if len(s.Expense) != 0 || !s.TotalExpense.IsZero() {
		t.Errorf("expected no expenses, got %+v / %s", s.Expense, s.TotalExpense)
	}
}

// The cumulative subtotals, unknown bucket included, add up to the sum of
// every attributed amount for any cycle and person.
func TestSummaryConservation(t *testing.T) {
	b := testBudget()
	cycles := []cycle.Cycle{
		cycle.New(1, cycle.Day),
		cycle.New(2, cycle.Week),
		cycle.New(1, cycle.Month),
		cycle.New(3, cycle.Month),
		cycle.New(1, cycle.Year),
	}

	for _, c := range cycles {
		for _, person := range []string{"", "me", "other", "stranger"} {
			s, err := BuildSummary(b, Request{Cycle: c, PersonID: person})
			if err != nil {
				t.Fatalf("BuildSummary(%s, %q) error: %v", c, person, err)
			}
			days, _ := c.Days()

			var want models.Money
			for i := range b.Transactions {
				amount, err := AmountFor(&b.Transactions[i], days, person)
				if err == nil {
					want = want.Add(amount)
				}
			}

			var got models.Money
			for _, row := range s.Cumulative {
				got = got.Add(row.Subtotal)
			}
			if got != want {
				t.Errorf("%s / %q: cumulative sum = %s, want %s", c, person, got, want)
			}
			if n := len(s.Cumulative); n > 0 && s.Cumulative[n-1].CumulativeTotal != want {
				t.Errorf("%s / %q: last cumulative total = %s, want %s", c, person, s.Cumulative[n-1].CumulativeTotal, want)
			}
			if got != s.TotalIncome.Add(s.TotalExpense) {
				t.Errorf("%s / %q: income + expense = %s, want %s", c, person, s.TotalIncome.Add(s.TotalExpense), got)
			}
		}
	}
}

func TestSubtotals(t *testing.T) {
	b := testBudget()

	sums, skipped := Subtotals(b, 30, "", nil)

	if _, ok := sums["leisure"]; !ok {
		t.Error("category without transactions should have a key")
	}
	if got := sums["deleted"]; got != models.Cents(42858) {
		t.Errorf("dangling key = %s, want 428.58", got)
	}
	if got := sums["food"]; got != models.Cents(-42857) {
		t.Errorf("food = %s, want -428.57 without the invalid transaction", got)
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %d, want 1", len(skipped))
	}

	t.Run("dangling category is only in the unknown key", func(t *testing.T) {
		ix := models.NewIndex(b)
		for id, amount := range sums {
			if _, ok := ix.Category(id); ok && id != "salaries" && amount.Sign() > 0 {
				t.Errorf("income leaked into %s: %s", id, amount)
			}
		}
	})

	t.Run("income and expense exclusion", func(t *testing.T) {
		income, _ := Subtotals(b, 30, "", ExcludeNonIncome)
		expense, _ := Subtotals(b, 30, "", ExcludeNonExpense)
		for id := range sums {
			if income[id].Sign() < 0 {
				t.Errorf("income[%s] = %s, want >= 0", id, income[id])
			}
			if expense[id].Sign() > 0 {
				t.Errorf("expense[%s] = %s, want <= 0", id, expense[id])
			}
			if income[id].Add(expense[id]) != sums[id] {
				t.Errorf("%s: income + expense = %s, want %s", id, income[id].Add(expense[id]), sums[id])
			}
		}
	})

	t.Run("empty category id is its own key", func(t *testing.T) {
		b := &models.Budget{Transactions: []models.Transaction{
			*tx("Cash", 10, cycle.New(1, cycle.Day), models.Payers{"me": 100}),
		}}
		sums, _ := Subtotals(b, 1, "", nil)
		if got := sums[""]; got != models.Cents(1000) {
			t.Errorf(`sums[""] = %s, want 10.00`, got)
		}
	})
}

func assertCumulative(t *testing.T, got, want []CumulativeRow) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("cumulative has %d rows, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cumulative[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func assertBreakdown(t *testing.T, view string, got, want []BreakdownRow) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s has %d rows, want %d: %+v", view, len(got), len(want), got)
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.CategoryID != w.CategoryID || g.Unknown != w.Unknown || g.Subtotal != w.Subtotal {
			t.Errorf("%s[%d] = %+v, want %+v", view, i, g, w)
		}
		if math.Abs(g.Percent-w.Percent) > 0.01 {
			t.Errorf("%s[%d] percent = %v, want %v", view, i, g.Percent, w.Percent)
		}
	}
}
