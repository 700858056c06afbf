package organizationrepofakes

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/organizations"
)

var _ organizations.Repo = (*FakeOrganizationRepo)(nil)

type FakeOrganizationRepo struct {
	orgs map[string]*organizations.Organization
	lock sync.RWMutex
}

func NewFakeOrganizationRepo() organizations.Repo {
	return &FakeOrganizationRepo{
		orgs: make(map[string]*organizations.Organization),
	}
}

func (or *FakeOrganizationRepo) Upsert(org *organizations.Organization) error {
	or.lock.Lock()
	defer or.lock.Unlock()
	if org.ID == "" {
		org.ID = api.ID(uuid.New().String())
	}
	or.orgs[org.ID.String()] = org
	return nil
}

func (or *FakeOrganizationRepo) Delete(id string) error {
	or.lock.Lock()
	defer or.lock.Unlock()
	if _, ok := or.orgs[id]; !ok {
		return organizations.ErrOrganizationNotFound
	}
	delete(or.orgs, id)
	return nil
}

func (or *FakeOrganizationRepo) Get(id string) (*organizations.Organization, error) {
	or.lock.RLock()
	defer or.lock.RUnlock()
	org, ok := or.orgs[id]
	if !ok {
		return nil, organizations.ErrOrganizationNotFound
	}
	return org, nil
}

func (or *FakeOrganizationRepo) List(offset, limit int) ([]*organizations.Organization, int, error) {
	or.lock.RLock()
	defer or.lock.RUnlock()

	list := make([]*organizations.Organization, 0, len(or.orgs))
	for _, o := range or.orgs {
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Code < list[j].Code
	})

	total := len(list)
	if offset >= total {
		return []*organizations.Organization{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return list[offset:end], total, nil
}
