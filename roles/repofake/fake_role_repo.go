package rolerepofake

import (
	"sort"
	"strconv"
	"sync"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/roles"
)

var _ roles.Repo = (*FakeRoleRepo)(nil)

type FakeRoleRepo struct {
	roles       map[string]*roles.Role
	assignments map[string]map[string]struct{} // user id to role ids
	nextID      int
	lock        sync.RWMutex
}

func NewFakeRoleRepo() roles.Repo {
	return &FakeRoleRepo{
		roles:       make(map[string]*roles.Role),
		assignments: make(map[string]map[string]struct{}),
	}
}

func (rr *FakeRoleRepo) Upsert(role *roles.Role) error {
	rr.lock.Lock()
	defer rr.lock.Unlock()

	if role.ID == "" {
		rr.nextID++
		role.ID = api.ID(strconv.Itoa(rr.nextID))
	}
	rr.roles[role.ID.String()] = role
	return nil
}

func (rr *FakeRoleRepo) Delete(id string) error {
	rr.lock.Lock()
	defer rr.lock.Unlock()

	if _, ok := rr.roles[id]; !ok {
		return roles.ErrRoleNotFound
	}
	delete(rr.roles, id)
	for _, assigned := range rr.assignments {
		delete(assigned, id)
	}
	return nil
}

func (rr *FakeRoleRepo) Get(id string) (*roles.Role, error) {
	rr.lock.RLock()
	defer rr.lock.RUnlock()

	role, ok := rr.roles[id]
	if !ok {
		return nil, roles.ErrRoleNotFound
	}
	return rr.withCount(role), nil
}

func (rr *FakeRoleRepo) List() ([]*roles.Role, error) {
	rr.lock.RLock()
	defer rr.lock.RUnlock()

	list := make([]*roles.Role, 0, len(rr.roles))
	for _, v := range rr.roles {
		list = append(list, rr.withCount(v))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (rr *FakeRoleRepo) Assign(userID, roleID string) error {
	rr.lock.Lock()
	defer rr.lock.Unlock()

	if _, ok := rr.roles[roleID]; !ok {
		return roles.ErrRoleNotFound
	}
	if rr.assignments[userID] == nil {
		rr.assignments[userID] = make(map[string]struct{})
	}
	rr.assignments[userID][roleID] = struct{}{}
	return nil
}

func (rr *FakeRoleRepo) RolesForUser(userID string) ([]*roles.Role, error) {
	rr.lock.RLock()
	defer rr.lock.RUnlock()

	list := make([]*roles.Role, 0)
	for roleID := range rr.assignments[userID] {
		if role, ok := rr.roles[roleID]; ok {
			list = append(list, role)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list, nil
}

// withCount returns a copy carrying the current assignment count.
func (rr *FakeRoleRepo) withCount(role *roles.Role) *roles.Role {
	c := *role
	c.UserCount = 0
	for _, assigned := range rr.assignments {
		if _, ok := assigned[role.ID.String()]; ok {
			c.UserCount++
		}
	}
	return &c
}
