package mapper

import (
	"club-api/modules/auth/dto"
	"club-api/modules/auth/entity"
)

func ToAccountResponse(a *entity.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:        a.ID.String(),
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      a.Role,
	}
}
