package storagerepofake

import (
	"sync"

	"github.com/jrsteele09/isp-console/storage"
)

var _ storage.Repo = (*FakeStorageRepo)(nil)

type FakeStorageRepo struct {
	entries map[string]string
	lock    sync.RWMutex
}

func NewFakeStorageRepo() *FakeStorageRepo {
	return &FakeStorageRepo{
		entries: make(map[string]string),
	}
}

func (sr *FakeStorageRepo) Get(key string) (string, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	value, ok := sr.entries[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (sr *FakeStorageRepo) Set(key, value string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.entries[key] = value
	return nil
}

func (sr *FakeStorageRepo) Delete(key string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	delete(sr.entries, key)
	return nil
}

// Keys returns the names currently stored, for assertions in tests.
func (sr *FakeStorageRepo) Keys() []string {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	keys := make([]string, 0, len(sr.entries))
	for k := range sr.entries {
		keys = append(keys, k)
	}
	return keys
}
