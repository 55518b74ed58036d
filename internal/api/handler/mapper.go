package handler

import "github.com/dosmed/drug-ordering-system/internal/core/domain"

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                 u.ID,
		Username:           u.Username,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Role:               u.Role.String(),
		Email:              u.Email,
		NextPasswordChange: u.NextPasswordChange,
	}
}
