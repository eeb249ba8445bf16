package models

import "time"

// User represents a login account backing an admin, faculty member or student
type User struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         RoleType     `json:"role"`
	Status       EntityStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}
