package serializer

import (
	"time"

	"github.com/google/uuid"

	"github.com/ajutor-app/ajutor/internal/modules/model"
)

// UserView exposes only the safe subset of a user row.
type UserView struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           *string    `json:"phone"`
	CreatedAt       time.Time  `json:"created_at"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	PhoneVerifiedAt *time.Time `json:"phone_verified_at"`
}

func BuildUser(u *model.User) UserView {
	return UserView{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		CreatedAt:       u.CreatedAt,
		EmailVerifiedAt: u.EmailVerifiedAt,
		PhoneVerifiedAt: u.PhoneVerifiedAt,
	}
}

func BuildUsers(users []model.User) []UserView {
	out := make([]UserView, 0, len(users))
	for i := range users {
		out = append(out, BuildUser(&users[i]))
	}
	return out
}
