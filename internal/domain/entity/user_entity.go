package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash, never plaintext.
// Username is unique (case-sensitive) and immutable once assigned.
type User struct {
	ID        int64
	Username  string
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
