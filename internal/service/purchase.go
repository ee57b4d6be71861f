package service

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/myanycart/anycart-go/internal/api"
	"github.com/myanycart/anycart-go/internal/model"
	"github.com/myanycart/anycart-go/internal/repository"
)

var ErrEmptyCart = errors.New("cart is empty")

// defaultCartName matches the backend's historical default for unnamed carts.
const defaultCartName = "Compra"

// PurchaseService turns the local cart into server-persisted purchases and
// reads back the purchase history.
type PurchaseService struct {
	client     *api.Client
	cart       *CartService
	currencies *repository.CurrencyStore
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(client *api.Client, cart *CartService, currencies *repository.CurrencyStore) *PurchaseService {
	return &PurchaseService{client: client, cart: cart, currencies: currencies}
}

// Checkout snapshots the current cart as a purchase. The request carries a
// generated idempotency key so a retried submission cannot create a
// duplicate record. On success the local cart is cleared.
func (s *PurchaseService) Checkout(ctx context.Context, cartName, storeName string) (*model.Purchase, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if cartName == "" {
		cartName = defaultCartName
	}

	req := model.CreatePurchaseRequest{
		CartName:  cartName,
		StoreName: storeName,
		Currency:  s.currencies.Get(),
		Items:     make([]model.PurchaseItemInput, 0, len(items)),
	}
	for _, it := range items {
		req.Items = append(req.Items, model.PurchaseItemInput{
			Name:      it.ItemName,
			UnitPrice: strconv.FormatFloat(it.ItemPrice, 'f', -1, 64),
			Quantity:  int(math.Round(it.ItemAmount)),
		})
	}

	purchase, err := s.client.CreatePurchase(ctx, req, uuid.NewString())
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(); err != nil {
		return purchase, err
	}
	return purchase, nil
}

// List returns the purchase history.
func (s *PurchaseService) List(ctx context.Context) ([]model.Purchase, error) {
	return s.client.ListPurchases(ctx)
}

// Get returns one purchase with its items.
func (s *PurchaseService) Get(ctx context.Context, id string) (*model.Purchase, error) {
	return s.client.GetPurchase(ctx, id)
}

// Delete removes one purchase from the history.
func (s *PurchaseService) Delete(ctx context.Context, id string) error {
	return s.client.DeletePurchase(ctx, id)
}
