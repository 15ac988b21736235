// Package models defines the budget entities and their validation.
//
// # Entities
//
//   - Person: someone who pays a share of transactions
//   - PaymentMethod: descriptive card or account, owned by a Person
//   - Category: groups transactions in the summary
//   - Transaction: a recurring income or expense with a billing cycle and
//     payer percentages
//
// Entities reference each other by ID string. Deleting an entity never
// cascades, so references may dangle; Index resolves them and reports a
// missing target as (zero, false) rather than an error.
//
// # Amounts
//
// Money stores whole cents. NewMoney and ParseMoney are the only ways to
// turn raw user numbers into Money and both round to the nearest cent.
//
// # Validation
//
// Validate methods enforce what the editing layer requires (name lengths,
// #RRGGBB colors, nonzero amounts, payer shares adding up to 100). The
// summary math in package calculator does not depend on them and tolerates
// data that fails validation, such as imported payer shares that do not
// add up to 100.
package models
