package organizations

import "errors"

var ErrOrganizationNotFound = errors.New("organization not found")

// Repo stores organizations for the dev backend.
type Repo interface {
	Upsert(org *Organization) error
	Delete(id string) error
	Get(id string) (*Organization, error)
	List(offset, limit int) ([]*Organization, int, error)
}
