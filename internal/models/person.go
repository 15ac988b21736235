package models

// Person is someone who can own payment methods and pay a share of
// transactions.
type Person struct {
	// ID is the unique identifier (UUID format). It never changes.
	ID string `json:"id"`

	// Name is the display name, 3 to 15 characters.
	Name string `json:"name" validate:"notblank,min=3,max=15"`
}

// Validate checks the editable fields of the person.
func (p Person) Validate() error {
	return check("person", p)
}
