package domain

import "time"

// Administrator is an account allowed to sign in and manage the fleet.
type Administrator struct {
	ID           int64
	Name         string `validate:"notblank,max=100"`
	Email        string `validate:"notblank,max=100"`
	Password     string
	PasswordHash string
	Role         Role `validate:"required,oneof=ADMIN USER"`
	CreatedAt    time.Time
}

// AdministratorSummary is the outward view of an Administrator. It never
// carries credential material.
type AdministratorSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a *Administrator) Summary() AdministratorSummary {
	return AdministratorSummary{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}
