package store

import (
	"sync"

	"github.com/google/uuid"

	"jewelry-commerce/models"
)

// GuestCartStore holds transient carts for unauthenticated visitors, keyed
// by a server-issued guest ID the client carries across page loads. Nothing
// here is persisted; a guest cart is discarded only after a successful merge
// into the authenticated cart or after a completed order.
type GuestCartStore struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem
}

// NewGuestCartStore creates an empty guest cart holder.
func NewGuestCartStore() *GuestCartStore {
	return &GuestCartStore{carts: make(map[string][]models.CartItem)}
}

// NewGuestID issues a fresh guest cart key.
func (s *GuestCartStore) NewGuestID() string {
	return uuid.NewString()
}

// Get returns the guest's items. An unknown guest ID yields an empty cart.
func (s *GuestCartStore) Get(guestID string) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[guestID]
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

// AddItem increments the matching line's quantity or appends a new line,
// creating the guest cart on first use.
func (s *GuestCartStore) AddItem(guestID string, item models.CartItem) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[guestID] = models.UpsertItem(s.carts[guestID], item)
	return s.carts[guestID]
}

// UpdateQuantity sets a line's quantity; 0 removes the line. An absent line
// fails with ErrNotFound.
func (s *GuestCartStore) UpdateQuantity(guestID, productID string, quantity int) ([]models.CartItem, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, found := models.SetItemQuantity(s.carts[guestID], productID, quantity)
	if !found {
		if quantity == 0 {
			// Removing an absent line stays a no-op.
			return items, nil
		}
		return nil, ErrNotFound
	}
	s.carts[guestID] = items
	return items, nil
}

// RemoveItem deletes the matching line; absence is not an error.
func (s *GuestCartStore) RemoveItem(guestID, productID string) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[guestID] = models.RemoveItem(s.carts[guestID], productID)
	return s.carts[guestID]
}

// Clear empties the guest cart but keeps the guest ID usable.
func (s *GuestCartStore) Clear(guestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[guestID] = nil
}

// Discard drops the guest cart entirely. Called only after the authenticated
// cart is confirmed to reflect the merge, never before.
func (s *GuestCartStore) Discard(guestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, guestID)
}
