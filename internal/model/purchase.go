package model

import (
	"strconv"
	"time"
)

// PurchaseItem represents one line of a server-persisted purchase.
type PurchaseItem struct {
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// Purchase represents a finalized cart snapshot owned by the backend.
// The client only creates and deletes purchases; it never mutates them.
type Purchase struct {
	ID             string         `json:"id"`
	CartName       string         `json:"cart_name"`
	StoreName      string         `json:"store_name,omitempty"`
	Currency       string         `json:"currency"`
	Notes          string         `json:"notes,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	ItemsCount     int            `json:"items_count"`
	TotalAmount    string         `json:"total_amount"`
	CompletedAt    time.Time      `json:"completed_at"`
	IdempotencyKey string         `json:"idempotency_key,omitempty"`
	Items          []PurchaseItem `json:"items,omitempty"`
}

// Total returns the purchase total, recomputed from the items when the
// server-side total is absent or unparseable.
func (p Purchase) Total() float64 {
	if p.TotalAmount != "" {
		if v, err := strconv.ParseFloat(p.TotalAmount, 64); err == nil {
			return v
		}
	}

	var total float64
	for _, it := range p.Items {
		price, err := strconv.ParseFloat(it.UnitPrice, 64)
		if err != nil {
			continue
		}
		total += price * float64(it.Quantity)
	}
	return total
}

// PurchaseItemInput represents one cart line in a create-purchase request.
type PurchaseItemInput struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// CreatePurchaseRequest represents a checkout payload.
type CreatePurchaseRequest struct {
	CartName  string              `json:"cart_name"`
	StoreName string              `json:"store_name"`
	Currency  string              `json:"currency"`
	Items     []PurchaseItemInput `json:"items"`
}
