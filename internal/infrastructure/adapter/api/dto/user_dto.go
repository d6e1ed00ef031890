package dto

import (
	"time"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
)

// UserResponse is the public form of a user; the credential hash is never rendered
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Country   string    `json:"country"`
	Phone     string    `json:"phone"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse converts a domain user
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Country:   user.Country,
		Phone:     user.Phone,
		Balance:   entity.AmountToString(user.Balance),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserResponses converts users in order; the result is never nil
func NewUserResponses(users []*entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
