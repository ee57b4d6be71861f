package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/myanycart/anycart-go/internal/model"
	"github.com/myanycart/anycart-go/internal/repository"
)

var (
	ErrNotLoaded        = errors.New("cart not loaded")
	ErrItemNameRequired = errors.New("item name is required")
	ErrInvalidAmount    = errors.New("item amount must be at least 1")
	ErrInvalidPrice     = errors.New("item price must not be negative")
)

// CartService maintains the in-memory cart, mirrors every mutation to the
// cart store, and can adopt out-of-band changes made by another process.
//
// The service starts uninitialized; mutations are rejected until Load has
// run once, so a fresh instance can never overwrite previously persisted
// items with its empty initial state.
type CartService struct {
	mu     sync.Mutex
	store  *repository.CartStore
	items  []model.LineItem
	loaded bool
}

// NewCartService creates a CartService over the given store.
func NewCartService(store *repository.CartStore) *CartService {
	return &CartService{store: store}
}

// Load adopts the persisted item list and transitions the service to
// ready. Loading again is a no-op: the transition happens exactly once.
func (s *CartService) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return
	}
	s.items = s.store.Load()
	s.loaded = true
	s.store.Save(s.items)
}

// Add validates and prepends a line item (most recent first), generating
// an ID when the caller did not supply one. Returns the stored item.
func (s *CartService) Add(item model.LineItem) (model.LineItem, error) {
	if err := validateItem(item); err != nil {
		return model.LineItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return model.LineItem{}, ErrNotLoaded
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	s.items = append([]model.LineItem{item}, s.items...)
	s.store.Save(s.items)
	return item, nil
}

// Edit replaces the item with a matching ID. Editing an absent ID is a
// no-op: list length and contents stay unchanged.
func (s *CartService) Edit(item model.LineItem) error {
	if err := validateItem(item); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			break
		}
	}
	s.store.Save(s.items)
	return nil
}

// Delete removes the item with a matching ID.
func (s *CartService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	next := s.items[:0:0]
	for _, it := range s.items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	s.items = next
	s.store.Save(s.items)
	return nil
}

// Clear empties the cart and persists the empty list immediately, so the
// clear is durable even if the process exits right after.
func (s *CartService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	s.items = []model.LineItem{}
	s.store.Save(s.items)
	return nil
}

// Items returns a copy of the current item list in display order.
func (s *CartService) Items() []model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total returns the grand total of the current cart.
func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CartTotal(s.items)
}

// Watch adopts changes another process makes to the cart file, replacing
// the in-memory list without re-persisting (adopting an external write
// must not echo it back). The returned channel forwards each adopted list
// and closes when ctx is done.
func (s *CartService) Watch(ctx context.Context) (<-chan []model.LineItem, error) {
	updates, err := s.store.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan []model.LineItem)
	go func() {
		defer close(out)
		for items := range updates {
			s.mu.Lock()
			s.items = items
			s.mu.Unlock()

			select {
			case out <- items:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func validateItem(item model.LineItem) error {
	if item.ItemName == "" {
		return ErrItemNameRequired
	}
	if item.ItemAmount < 1 {
		return ErrInvalidAmount
	}
	if item.ItemPrice < 0 {
		return ErrInvalidPrice
	}
	return nil
}
