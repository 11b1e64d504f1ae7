package domain

import "time"

// User models a registered account. Tasks holds the ids of the tasks the
// user owns, in creation order.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Tasks        []string  `json:"tasks"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SafeProjection is the subset of a user that may be sent to clients.
type SafeProjection struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Safe strips everything but the public identity fields.
func (u *User) Safe() SafeProjection {
	return SafeProjection{ID: u.ID, Username: u.Username, Email: u.Email}
}
