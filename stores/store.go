package stores

// Store is a physical location (tenant) of the business. Every store-scoped
// API call runs against the store the bearer token was issued for.
type Store struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	Address  string `json:"address,omitempty"`
	Currency string `json:"currency,omitempty"` // ISO 4217 code, e.g. "USD"
}

// Clone returns a copy of s, or nil when s is nil.
func (s *Store) Clone() *Store {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
