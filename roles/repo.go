package roles

import "errors"

var ErrRoleNotFound = errors.New("role not found")

// Repo stores roles and assignments for the dev backend.
type Repo interface {
	Upsert(role *Role) error
	Delete(id string) error
	Get(id string) (*Role, error)
	List() ([]*Role, error)
	Assign(userID, roleID string) error
	RolesForUser(userID string) ([]*Role, error)
}
