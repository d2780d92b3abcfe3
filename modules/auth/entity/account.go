package entity

import "github.com/google/uuid"

// Account is a login row from one of the per-role tables.
type Account struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Role      string    `db:"-"`
}

func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}
