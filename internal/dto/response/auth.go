package response

import (
	"time"

	"tutor-booking/internal/data/entity"
)

type UserResponse struct {
	ID       string          `json:"id"`
	FullName string          `json:"full_name"`
	Email    string          `json:"email"`
	Role     entity.UserRole `json:"role"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     *string      `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	}
}
