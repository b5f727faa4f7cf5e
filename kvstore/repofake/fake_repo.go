package repofake

import (
	"context"
	"sync"

	"github.com/jrsteele09/storedesk/kvstore"
)

var _ kvstore.Repo = (*FakeRepo)(nil)

// FakeRepo is an in-memory kvstore.Repo. It also records the order of writes so
// tests can assert on commit ordering across slots.
type FakeRepo struct {
	records map[string][]byte
	writes  []string
	failOn  map[string]error
	lock    sync.RWMutex
}

func NewFakeRepo() *FakeRepo {
	return &FakeRepo{
		records: make(map[string][]byte),
		failOn:  make(map[string]error),
	}
}

func (r *FakeRepo) Load(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, kvstore.ErrEmptyKey
	}
	r.lock.RLock()
	defer r.lock.RUnlock()

	v, ok := r.records[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (r *FakeRepo) Save(_ context.Context, key string, value []byte) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.failOn[key]; err != nil {
		return err
	}
	r.records[key] = append([]byte(nil), value...)
	r.writes = append(r.writes, key)
	return nil
}

func (r *FakeRepo) Delete(_ context.Context, key string) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.failOn[key]; err != nil {
		return err
	}
	delete(r.records, key)
	r.writes = append(r.writes, key)
	return nil
}

// Put stores a raw record without recording a write.
func (r *FakeRepo) Put(key string, value []byte) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.records[key] = append([]byte(nil), value...)
}

// Raw returns the stored record for key, or nil.
func (r *FakeRepo) Raw(key string) []byte {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.records[key]
}

// Writes returns the keys written (saved or deleted) in order.
func (r *FakeRepo) Writes() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return append([]string(nil), r.writes...)
}

// FailOn makes every write to key return err. A nil err clears the failure.
func (r *FakeRepo) FailOn(key string, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if err == nil {
		delete(r.failOn, key)
		return
	}
	r.failOn[key] = err
}
