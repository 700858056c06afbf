package fakeuserrepo

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[string]*users.User
	loginIDs map[string]string // login id to user id
	nextID   int
	lock     sync.RWMutex
}

func NewFakeUserRepo() users.UserRepo {
	return &FakeUserRepo{
		users:    make(map[string]*users.User),
		loginIDs: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Upsert(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		ur.nextID++
		user.ID = api.ID(strconv.Itoa(ur.nextID))
	} else if n, err := strconv.Atoi(user.ID.String()); err == nil && n > ur.nextID {
		ur.nextID = n
	}
	if prev, ok := ur.users[user.ID.String()]; ok && prev.LoginID != user.LoginID {
		delete(ur.loginIDs, strings.ToLower(prev.LoginID))
	}
	ur.users[user.ID.String()] = user
	ur.loginIDs[strings.ToLower(user.LoginID)] = user.ID.String()
	return nil
}

func (ur *FakeUserRepo) Delete(id string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[id]
	if !ok {
		return users.ErrUserNotFound
	}
	delete(ur.loginIDs, strings.ToLower(user.LoginID))
	delete(ur.users, id)
	return nil
}

func (ur *FakeUserRepo) GetByLoginID(loginID string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.loginIDs[strings.ToLower(loginID)]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return ur.users[id], nil
}

func (ur *FakeUserRepo) GetByID(id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return user, nil
}

func (ur *FakeUserRepo) List(search string, offset, limit int) ([]*users.User, int, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	search = strings.ToLower(search)
	userList := make([]*users.User, 0, len(ur.users))
	for _, v := range ur.users {
		if search != "" && !matches(v, search) {
			continue
		}
		userList = append(userList, v)
	}

	sort.Slice(userList, func(i, j int) bool {
		a, _ := strconv.Atoi(userList[i].ID.String())
		b, _ := strconv.Atoi(userList[j].ID.String())
		if a != b {
			return a < b
		}
		return userList[i].ID < userList[j].ID
	})

	total := len(userList)
	if offset >= total {
		return []*users.User{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return userList[offset:end], total, nil
}

func matches(u *users.User, search string) bool {
	return strings.Contains(strings.ToLower(u.LoginID), search) ||
		strings.Contains(strings.ToLower(u.Name), search) ||
		strings.Contains(strings.ToLower(u.Email), search)
}
