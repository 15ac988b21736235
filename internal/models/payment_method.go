package models

// PaymentMethod is a card, account or wallet used to pay transactions.
// It is descriptive only and plays no part in the summary math.
type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"notblank,min=3,max=25"`

	// OwnerID references a Person. It may dangle after the owner is deleted.
	OwnerID string `json:"owner_id"`
}

// Validate checks the editable fields of the payment method.
func (pm PaymentMethod) Validate() error {
	return check("payment method", pm)
}
