package entity

import "time"

// User is the internal credential record. It carries the bcrypt hash and
// must never be serialized to a client; everything that leaves the
// application layer is a Profile.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public view of a user. It has no field for credentials,
// so a handler cannot leak the hash by accident.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile converts the credential record into its public view.
func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
