package store

import (
	"errors"
	"sync"

	"storefront-gateway/internal/app/model"
	"storefront-gateway/internal/storage"
	"storefront-gateway/pkg/logger"
)

const cartRecordName = "cart-storage"

// CartState is a point-in-time snapshot of the cart with its derived
// aggregates.
type CartState struct {
	Items      []model.CartItem `json:"items"`
	IsOpen     bool             `json:"isOpen"`
	TotalPrice float64          `json:"totalPrice"`
	TotalItems int              `json:"totalItems"`
}

// cartRecord is the persisted shape of the cart.
type cartRecord struct {
	Items  []model.CartItem `json:"items"`
	IsOpen bool             `json:"isOpen"`
}

// CartStore is the single source of truth for cart contents. Every
// mutation is written through to storage best-effort and reported to the
// change listener. A line is identified by (product id, variant id); two
// variants of the same product are distinct lines.
type CartStore struct {
	mu       sync.RWMutex
	items    []model.CartItem
	isOpen   bool
	storage  storage.Storage
	onChange func(CartState)
}

// NewCartStore builds the store, restoring any persisted cart.
func NewCartStore(st storage.Storage) *CartStore {
	s := &CartStore{storage: st}

	var rec cartRecord
	err := st.Load(cartRecordName, &rec)
	switch {
	case err == nil:
		s.items = rec.Items
		s.isOpen = rec.IsOpen
		logger.Info("Cart restored from storage", map[string]interface{}{
			"lines": len(rec.Items),
		})
	case errors.Is(err, storage.ErrNotFound):
		// first use, cart starts empty
	default:
		logger.Warn("Failed to restore cart, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return s
}

// OnChange registers the listener invoked with a snapshot after every
// mutation. Only one listener is held; the composition root wires it.
func (s *CartStore) OnChange(fn func(CartState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// AddItem appends a new line with quantity 1, or increments the quantity
// of the matching line. Metadata of an existing line is left untouched
// (first write wins). The Quantity field of the argument is ignored.
func (s *CartStore) AddItem(item model.CartItem) {
	s.mu.Lock()
	if existing := s.findLocked(item.ID, item.VariantID()); existing != nil {
		existing.Quantity++
	} else {
		item.Quantity = 1
		s.items = append(s.items, item)
	}
	notify := s.commitLocked()
	s.mu.Unlock()
	notify()

	logger.Debug("Cart item added", map[string]interface{}{
		"product_id": item.ID,
		"variant_id": item.VariantID(),
	})
}

// RemoveItem deletes the matching line. Removing an absent line is a
// no-op, not an error.
func (s *CartStore) RemoveItem(id, variantID string) {
	s.mu.Lock()
	s.removeLocked(id, variantID)
	notify := s.commitLocked()
	s.mu.Unlock()
	notify()
}

// UpdateQuantity sets the quantity of the matching line. A quantity of
// zero or less removes the line. Unknown lines are left untouched.
func (s *CartStore) UpdateQuantity(id, variantID string, quantity int) {
	s.mu.Lock()
	if quantity <= 0 {
		s.removeLocked(id, variantID)
	} else if item := s.findLocked(id, variantID); item != nil {
		item.Quantity = quantity
	}
	notify := s.commitLocked()
	s.mu.Unlock()
	notify()
}

// Clear empties the cart unconditionally.
func (s *CartStore) Clear() {
	s.mu.Lock()
	s.items = nil
	notify := s.commitLocked()
	s.mu.Unlock()
	notify()

	logger.Info("Cart cleared")
}

// Open marks the cart drawer visible.
func (s *CartStore) Open() {
	s.setOpen(true)
}

// Close marks the cart drawer hidden.
func (s *CartStore) Close() {
	s.setOpen(false)
}

func (s *CartStore) setOpen(open bool) {
	s.mu.Lock()
	s.isOpen = open
	notify := s.commitLocked()
	s.mu.Unlock()
	notify()
}

// Items returns a copy of the current lines in insertion order.
func (s *CartStore) Items() []model.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// IsOpen reports the drawer visibility flag.
func (s *CartStore) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOpen
}

// TotalPrice returns the sum of price times quantity over all lines.
func (s *CartStore) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalPriceLocked()
}

// TotalItems returns the sum of quantities over all lines.
func (s *CartStore) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalItemsLocked()
}

// State returns a full snapshot of the cart.
func (s *CartStore) State() CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *CartStore) findLocked(id, variantID string) *model.CartItem {
	for i := range s.items {
		if s.items[i].ID == id && s.items[i].VariantID() == variantID {
			return &s.items[i]
		}
	}
	return nil
}

func (s *CartStore) removeLocked(id, variantID string) {
	for i := range s.items {
		if s.items[i].ID == id && s.items[i].VariantID() == variantID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *CartStore) totalPriceLocked() float64 {
	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

func (s *CartStore) totalItemsLocked() int {
	var total int
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *CartStore) stateLocked() CartState {
	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)
	return CartState{
		Items:      items,
		IsOpen:     s.isOpen,
		TotalPrice: s.totalPriceLocked(),
		TotalItems: s.totalItemsLocked(),
	}
}

// commitLocked writes the cart through to storage and returns the change
// notification to run once the lock is released. Persistence failures are
// logged, not propagated: the in-memory state stays authoritative.
func (s *CartStore) commitLocked() func() {
	rec := cartRecord{Items: s.items, IsOpen: s.isOpen}
	if err := s.storage.Save(cartRecordName, rec); err != nil {
		logger.Warn("Failed to persist cart", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if s.onChange == nil {
		return func() {}
	}
	state := s.stateLocked()
	fn := s.onChange
	return func() { fn(state) }
}
