package storerepofakes

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/storedesk/internal/errors"
	"github.com/jrsteele09/storedesk/stores"
)

var _ stores.Repo = (*FakeStoreRepo)(nil)

type FakeStoreRepo struct {
	stores map[string]*stores.Store
	lock   sync.RWMutex
}

func NewFakeStoreRepo() stores.Repo {
	return &FakeStoreRepo{
		stores: make(map[string]*stores.Store),
	}
}

func (sr *FakeStoreRepo) Upsert(store *stores.Store) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	sr.stores[store.ID] = store
	return nil
}

func (sr *FakeStoreRepo) Delete(storeID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	delete(sr.stores, storeID)
	return nil
}

func (sr *FakeStoreRepo) Get(storeID string) (*stores.Store, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	store, ok := sr.stores[storeID]
	if !ok {
		return nil, apperrors.ErrStoreNotFound
	}
	return store, nil
}

func (sr *FakeStoreRepo) List() ([]*stores.Store, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	list := make([]*stores.Store, 0, len(sr.stores))
	for _, s := range sr.stores {
		list = append(list, s)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list, nil
}
