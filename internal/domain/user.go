package domain

import "time"

// User is a registered account. PasswordHash never leaves the service boundary.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch carries the fields supplied by a create or partial update.
// Password is plaintext as received; services hash it before persistence.
type UserPatch struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
}

// Empty reports whether no field is set.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.Password == nil && p.FirstName == nil && p.LastName == nil
}

// Fields returns the names of the set fields.
func (p UserPatch) Fields() []string {
	fields := make([]string, 0, 4)
	if p.Email != nil {
		fields = append(fields, "email")
	}
	if p.Password != nil {
		fields = append(fields, "password")
	}
	if p.FirstName != nil {
		fields = append(fields, "firstName")
	}
	if p.LastName != nil {
		fields = append(fields, "lastName")
	}
	return fields
}

// UserChanges is the persisted form of a user update: the password, if any,
// is already hashed.
type UserChanges struct {
	Email        *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
	UpdatedAt    time.Time
}

// Apply merges the changes into the user. UpdatedAt never moves backwards.
func (c UserChanges) Apply(user *User) {
	if c.Email != nil {
		user.Email = *c.Email
	}
	if c.PasswordHash != nil {
		user.PasswordHash = *c.PasswordHash
	}
	if c.FirstName != nil {
		user.FirstName = c.FirstName
	}
	if c.LastName != nil {
		user.LastName = c.LastName
	}
	if c.UpdatedAt.After(user.UpdatedAt) {
		user.UpdatedAt = c.UpdatedAt
	}
}
