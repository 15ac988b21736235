package calculator

import (
	"cmp"
	"maps"
	"slices"

	"github.com/mmynk/budgetwise/internal/models"
)

// Balance is one person's position over a cycle.
type Balance struct {
	PersonID string `json:"person_id"`

	// Flow is the signed total of transactions made through payment methods
	// this person owns.
	Flow models.Money `json:"flow"`

	// Share is the signed total of this person's payer shares.
	Share models.Money `json:"share"`

	// Net is Share - Flow. Positive = the household owes this person,
	// negative = this person owes the household.
	Net models.Money `json:"net"`
}

// Transfer settles part of a debt between two people.
type Transfer struct {
	From   string       `json:"from"` // Person who owes
	To     string       `json:"to"`   // Person who is owed
	Amount models.Money `json:"amount"`
}

// Balances computes who fronts what for whom over a cycle of targetDays.
//
// Algorithm:
//   - For each transaction paid through a payment method with a known
//     owner: the owner's flow takes the whole attributed amount and each
//     payer's share takes AmountFor that payer
//   - Net = share - flow
//   - Transfers: greedy matching of the largest debt with the largest credit
//
// Transactions without a resolvable owner are left out, as are those with
// an invalid billing cycle (returned in skipped).
func Balances(b *models.Budget, targetDays int) (balances []Balance, transfers []Transfer, skipped []Skipped) {
	ix := models.NewIndex(b)
	byPerson := make(map[string]*Balance)
	get := func(id string) *Balance {
		if _, ok := byPerson[id]; !ok {
			byPerson[id] = &Balance{PersonID: id}
		}
		return byPerson[id]
	}

	for i := range b.Transactions {
		tx := &b.Transactions[i]
		pm, ok := ix.PaymentMethod(tx.PaymentMethodID)
		if !ok {
			continue
		}
		owner, ok := ix.Owner(pm)
		if !ok {
			continue
		}

		whole, err := AmountFor(tx, targetDays, "")
		if err != nil {
			skipped = append(skipped, Skipped{TransactionID: tx.ID, Name: tx.Name, Reason: err.Error()})
			continue
		}
		ownerBalance := get(owner.ID)
		ownerBalance.Flow = ownerBalance.Flow.Add(whole)

		for _, payer := range tx.Payers.IDs() {
			share, err := AmountFor(tx, targetDays, payer)
			if err != nil {
				continue // same cycle as above, cannot fail here
			}
			payerBalance := get(payer)
			payerBalance.Share = payerBalance.Share.Add(share)
		}
	}

	for _, id := range slices.Sorted(maps.Keys(byPerson)) {
		bal := byPerson[id]
		bal.Net = models.Cents(bal.Share.Cents - bal.Flow.Cents)
		balances = append(balances, *bal)
	}
	return balances, settle(balances), skipped
}

// settle pairs debtors with creditors, largest amounts first, until one
// side runs out.
func settle(balances []Balance) []Transfer {
	type party struct {
		id     string
		amount int64 // cents, always positive
	}
	var debtors, creditors []party
	for _, bal := range balances {
		switch {
		case bal.Net.Cents < 0:
			debtors = append(debtors, party{bal.PersonID, -bal.Net.Cents})
		case bal.Net.Cents > 0:
			creditors = append(creditors, party{bal.PersonID, bal.Net.Cents})
		}
	}
	largestFirst := func(a, b party) int {
		return cmp.Or(cmp.Compare(b.amount, a.amount), cmp.Compare(a.id, b.id))
	}
	slices.SortFunc(debtors, largestFirst)
	slices.SortFunc(creditors, largestFirst)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := min(debtors[i].amount, creditors[j].amount)
		transfers = append(transfers, Transfer{
			From:   debtors[i].id,
			To:     creditors[j].id,
			Amount: models.Cents(amount),
		})

		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}
	return transfers
}
