package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/storedesk/api"
	"github.com/jrsteele09/storedesk/internal/utils"
	"github.com/jrsteele09/storedesk/stores"
	"github.com/jrsteele09/storedesk/users"
	"github.com/rs/zerolog/log"
)

// Demo accounts created by InitialiseSystem. They all share the configured seed password.
const (
	DemoOwnerEmail   = "owner@storedesk.test"
	DemoManagerEmail = "manager@storedesk.test"
	DemoStaffEmail   = "staff@storedesk.test"
	DemoRovingEmail  = "roving@storedesk.test"

	DemoDowntownName = "Downtown"
	DemoHarbourName  = "Harbour"
	DemoOutletName   = "Airport Outlet"
)

// InitialiseSystem seeds the demo stores, users and per-store resources.
// It does nothing when the store repository already holds data.
func (s *Server) InitialiseSystem(ctx context.Context) error {
	existing, err := s.repos.Stores.List()
	if err != nil {
		return fmt.Errorf("failed to list stores: %w", err)
	}
	if len(existing) > 0 {
		log.Info().Int("stores", len(existing)).Msg("bootstrap: data present, skipping seed")
		return nil
	}
	log.Info().Msg("bootstrap: seeding demo data")

	downtown := &stores.Store{ID: uuid.NewString(), Name: DemoDowntownName, Active: true, Address: "12 Market St", Currency: "USD"}
	harbour := &stores.Store{ID: uuid.NewString(), Name: DemoHarbourName, Active: true, Address: "3 Quay Rd", Currency: "USD"}
	outlet := &stores.Store{ID: uuid.NewString(), Name: DemoOutletName, Active: false, Address: "Terminal 2", Currency: "USD"}
	for _, store := range []*stores.Store{downtown, harbour, outlet} {
		if err := s.repos.Stores.Upsert(store); err != nil {
			return fmt.Errorf("failed to seed store %s: %w", store.Name, err)
		}
	}

	password := s.config.GetSeedPassword()
	if err := users.ValidatePasswordStrength(password); err != nil {
		log.Warn().Err(err).Msg("bootstrap: weak seed password")
	}
	hash, err := users.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	now := s.nowFunc()
	seedUsers := []*users.User{
		{Email: DemoOwnerEmail, FirstName: "Olivia", LastName: "Owens", Role: users.RoleOwner},
		{Email: DemoManagerEmail, FirstName: "Marcus", LastName: "Reid", Role: users.RoleManager, StoreIDs: []string{downtown.ID, harbour.ID, outlet.ID}},
		{Email: DemoStaffEmail, FirstName: "Sam", LastName: "Lee", Role: users.RoleStaff, StoreIDs: []string{downtown.ID}},
		{Email: DemoRovingEmail, FirstName: "Riley", LastName: "Park", Role: users.RoleStaff, StoreIDs: []string{downtown.ID, harbour.ID}},
	}
	for _, u := range seedUsers {
		u.ID = uuid.NewString()
		u.PasswordHash = hash
		u.DateJoined = now
		if err := s.repos.Users.Upsert(u); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}
	staff, roving := seedUsers[2], seedUsers[3]

	if err := s.seedStore(downtown.ID, now, staff.ID, []seedProduct{
		{"Flat White", "COF-001", 450, 120},
		{"Croissant", "BAK-002", 375, 40},
		{"Banana Bread", "BAK-007", 525, 18},
	}); err != nil {
		return err
	}
	if err := s.seedStore(harbour.ID, now, roving.ID, []seedProduct{
		{"Fish Tacos", "KIT-101", 1450, 30},
		{"Lemonade", "BEV-014", 600, 75},
	}); err != nil {
		return err
	}

	log.Info().
		Str("owner", DemoOwnerEmail).
		Str("manager", DemoManagerEmail).
		Str("staff", DemoStaffEmail).
		Msg("bootstrap complete: demo users share the SEED_PASSWORD")
	return nil
}

type seedProduct struct {
	name       string
	sku        string
	priceCents int64
	stock      int
}

func (s *Server) seedStore(storeID string, now time.Time, staffID string, products []seedProduct) error {
	for _, p := range products {
		if err := s.repos.Catalog.AddProduct(api.Product{
			ID: uuid.NewString(), StoreID: storeID, Name: p.name, SKU: p.sku, PriceCents: p.priceCents, Stock: p.stock,
		}); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.sku, err)
		}
	}

	statuses := []api.OrderStatus{api.OrderPaid, api.OrderPaid, api.OrderRefunded, api.OrderPending}
	for i, status := range statuses {
		p := products[i%len(products)]
		if _, err := s.repos.Catalog.AddOrder(api.Order{
			ID:         uuid.NewString(),
			StoreID:    storeID,
			Status:     status,
			TotalCents: p.priceCents * int64(i+1),
			StaffID:    staffID,
			CreatedAt:  now.Add(-time.Duration(len(statuses)-i) * time.Hour),
		}); err != nil {
			return fmt.Errorf("failed to seed order: %w", err)
		}
	}

	tasks := []api.Task{
		{Title: "Count the till float", AssigneeID: staffID, Status: api.TaskOpen, DueAt: utils.Ptr(now.Add(2 * time.Hour))},
		{Title: "Restock the fridge", AssigneeID: staffID, Status: api.TaskDone},
		{Title: "Approve next week's roster", Status: api.TaskOpen, DueAt: utils.Ptr(now.Add(48 * time.Hour))},
	}
	for _, t := range tasks {
		t.ID = uuid.NewString()
		t.StoreID = storeID
		if err := s.repos.Catalog.AddTask(t); err != nil {
			return fmt.Errorf("failed to seed task: %w", err)
		}
	}
	return nil
}
