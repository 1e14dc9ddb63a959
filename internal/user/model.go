package user

import (
	"time"

	"marketplace-be/internal/auth"
)

type Profile struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Kind         auth.Kind `json:"kind"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the identity this profile acts as once authenticated.
func (p *Profile) Actor() auth.Actor {
	return auth.Actor{ProfileID: p.ID, Email: p.Email, Kind: p.Kind}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Kind     auth.Kind
	Phone    string
	Address  string
}

type UpdateProfileParams struct {
	Email   *string
	Phone   *string
	Address *string
}

func (p UpdateProfileParams) Empty() bool {
	return p.Email == nil && p.Phone == nil && p.Address == nil
}
