package server

import (
	"errors"
	"sort"
	"sync"

	"github.com/jrsteele09/storedesk/api"
)

// Catalog is a thread-safe in-memory store of the per-store resources served by the mock API
type Catalog struct {
	mu       sync.RWMutex
	products map[string][]api.Product // storeID -> products
	orders   map[string][]api.Order
	tasks    map[string][]api.Task
}

func NewCatalog() *Catalog {
	return &Catalog{
		products: make(map[string][]api.Product),
		orders:   make(map[string][]api.Order),
		tasks:    make(map[string][]api.Task),
	}
}

var errStoreIDRequired = errors.New("storeID cannot be empty")

func (c *Catalog) AddProduct(p api.Product) error {
	if p.StoreID == "" {
		return errStoreIDRequired
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.StoreID] = append(c.products[p.StoreID], p)
	return nil
}

// AddOrder assigns the next order number of the store when Number is zero.
func (c *Catalog) AddOrder(o api.Order) (api.Order, error) {
	if o.StoreID == "" {
		return o, errStoreIDRequired
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if o.Number == 0 {
		o.Number = len(c.orders[o.StoreID]) + 1001
	}
	c.orders[o.StoreID] = append(c.orders[o.StoreID], o)
	return o, nil
}

func (c *Catalog) AddTask(t api.Task) error {
	if t.StoreID == "" {
		return errStoreIDRequired
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.DueAt != nil {
		due := *t.DueAt
		t.DueAt = &due
	}
	c.tasks[t.StoreID] = append(c.tasks[t.StoreID], t)
	return nil
}

// Products returns a copy of the store's products sorted by name.
func (c *Catalog) Products(storeID string) []api.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := append([]api.Product{}, c.products[storeID]...)
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// Orders returns a copy of the store's orders, newest first.
func (c *Catalog) Orders(storeID string) []api.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := append([]api.Order{}, c.orders[storeID]...)
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

// Tasks returns a copy of the store's tasks. Staff only see tasks assigned to them.
func (c *Catalog) Tasks(storeID, assigneeID string) []api.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := make([]api.Task, 0, len(c.tasks[storeID]))
	for _, t := range c.tasks[storeID] {
		if assigneeID != "" && t.AssigneeID != assigneeID {
			continue
		}
		if t.DueAt != nil {
			due := *t.DueAt
			t.DueAt = &due
		}
		list = append(list, t)
	}
	return list
}
