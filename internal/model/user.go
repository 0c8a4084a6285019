package model

import "time"

// Role names assigned to accounts. Registration always grants RoleUser;
// RoleAdmin is granted out of band (seed data or a manual update).
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account record as stored in the `users` table.
// The password hash is never serialized; handlers build separate
// response types when account data is returned to clients.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Firstname    – given name supplied at registration.
//  Lastname     – family name, also shown as the creator of a record.
//  Email        – unique email address, the subject of issued tokens.
//  PasswordHash – bcrypt hashed password.
//  Roles        – role names attached to the account (users_roles join).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasRole reports whether the account carries the given role name.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}
