package dto

type TeamSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	AgeGroup   *string `json:"age_group"`
	UniqueCode string  `json:"unique_code"`
}

type ProfileResponse struct {
	ID              string        `json:"id"`
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name"`
	Email           string        `json:"email"`
	Phone           *string       `json:"phone"`
	PermissionLevel string        `json:"permission_level"`
	ProfilePicture  *string       `json:"profile_picture"`
	Teams           []TeamSummary `json:"teams"`
}

type ProfilePictureResponse struct {
	ProfilePicture string `json:"profile_picture"`
}
