package entity

import "github.com/google/uuid"

// Team is the header of a teamsheet.
type Team struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	AgeGroup   *string   `db:"age_group"`
	UniqueCode string    `db:"unique_code"`
}
