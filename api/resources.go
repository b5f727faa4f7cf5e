package api

import (
	"context"
	"time"

	"github.com/jrsteele09/storedesk/users"
)

const (
	RouteProducts = "/products"
	RouteOrders   = "/orders"
	RouteStaff    = "/staff"
	RouteTasks    = "/tasks"
)

type Product struct {
	ID         string `json:"id"`
	StoreID    string `json:"storeId"`
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	PriceCents int64  `json:"priceCents"`
	Stock      int    `json:"stock"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderRefunded  OrderStatus = "refunded"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID         string      `json:"id"`
	StoreID    string      `json:"storeId"`
	Number     int         `json:"number"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"totalCents"`
	StaffID    string      `json:"staffId"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type TaskStatus string

const (
	TaskOpen TaskStatus = "open"
	TaskDone TaskStatus = "done"
)

type Task struct {
	ID         string     `json:"id"`
	StoreID    string     `json:"storeId"`
	Title      string     `json:"title"`
	AssigneeID string     `json:"assigneeId,omitempty"`
	Status     TaskStatus `json:"status"`
	DueAt      *time.Time `json:"dueAt,omitempty"`
}

// ResourceAPI reads the store-scoped resources. The store is implied by the
// bearer token, so switching store changes what these calls return.
type ResourceAPI struct {
	client *Client
}

func NewResourceAPI(client *Client) *ResourceAPI {
	return &ResourceAPI{client: client}
}

func (r *ResourceAPI) Products(ctx context.Context) ([]Product, error) {
	return Get[[]Product](ctx, r.client, RouteProducts)
}

func (r *ResourceAPI) Orders(ctx context.Context) ([]Order, error) {
	return Get[[]Order](ctx, r.client, RouteOrders)
}

func (r *ResourceAPI) Staff(ctx context.Context) ([]users.Profile, error) {
	return Get[[]users.Profile](ctx, r.client, RouteStaff)
}

func (r *ResourceAPI) Tasks(ctx context.Context) ([]Task, error) {
	return Get[[]Task](ctx, r.client, RouteTasks)
}

// Revenue sums paid orders.
func Revenue(orders []Order) int64 {
	var total int64
	for _, o := range orders {
		if o.Status == OrderPaid {
			total += o.TotalCents
		}
	}
	return total
}
