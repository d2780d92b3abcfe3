package entity

import (
	coreEntity "club-api/core/entity"

	"github.com/google/uuid"
)

type Coach struct {
	coreEntity.BaseEntity
	FirstName       string  `db:"first_name"`
	LastName        string  `db:"last_name"`
	Email           string  `db:"email"`
	Phone           *string `db:"phone"`
	PermissionLevel string  `db:"permission_level"`
	ProfilePicture  *string `db:"profile_picture"`
}

type CoachTeam struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	AgeGroup   *string   `db:"age_group"`
	UniqueCode string    `db:"unique_code"`
}
