package entity

import (
	coreEntity "club-api/core/entity"
	eventEntity "club-api/modules/event/entity"

	"github.com/google/uuid"
)

type Team struct {
	coreEntity.BaseEntity
	Name       string  `db:"name"`
	AgeGroup   *string `db:"age_group"`
	UniqueCode string  `db:"unique_code"`

	Coaches []eventEntity.Coach `db:"-"`
}

// TeamCoach is one row of the team/coach join used to attach coaches in bulk.
type TeamCoach struct {
	TeamID uuid.UUID `db:"team_id"`
	eventEntity.Coach
}

type Player struct {
	ID           uuid.UUID `db:"id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	JerseyNumber *int      `db:"jersey_number"`
}
