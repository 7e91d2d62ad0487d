package domain

import "time"

// Role is the closed set of access levels a user can hold.
type Role string

const (
	RoleAdministrador Role = "ADMINISTRADOR"
	RoleConsulta      Role = "CONSULTA"
)

// roleLevels is the ordered hierarchy table. A higher level subsumes every
// lower one; a role absent from the table maps to level 0 and satisfies
// nothing. New roles slot in by editing this table only.
var roleLevels = map[Role]int{
	RoleAdministrador: 2,
	RoleConsulta:      1,
}

// RoleLevel returns the hierarchy level of a role (0 for unknown roles).
func RoleLevel(r Role) int {
	return roleLevels[r]
}

// RoleSatisfies reports whether actual grants at least the privileges of required.
func RoleSatisfies(required, actual Role) bool {
	return roleLevels[actual] >= roleLevels[required]
}

// ParseRole validates a raw role value against the closed enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleLevels[r]; !ok {
		return "", ErrInvalidRole
	}
	return r, nil
}

// User models an authenticated actor in the system. PasswordHash never
// crosses the external boundary.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserUpdate is a partial mutation applied by the user store. Nil fields are
// left untouched; updated_at is refreshed on every successful update
// regardless of which fields changed.
type UserUpdate struct {
	Email        *string
	PasswordHash *string
	Role         *Role
}
