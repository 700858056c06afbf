package users

import "errors"

var ErrUserNotFound = errors.New("user not found")

// UserRepo stores accounts for the dev backend.
type UserRepo interface {
	Upsert(user *User) error
	Delete(id string) error
	GetByLoginID(loginID string) (*User, error)
	GetByID(id string) (*User, error)
	// List returns a page of users whose login id, name or email contains
	// search, plus the total number of matches.
	List(search string, offset, limit int) ([]*User, int, error)
}
