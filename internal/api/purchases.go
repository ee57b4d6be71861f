package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/myanycart/anycart-go/internal/model"
)

const purchasesPath = "/api/purchases/"

// ListPurchases fetches the purchase history, newest first.
func (c *Client) ListPurchases(ctx context.Context) ([]model.Purchase, error) {
	var out []model.Purchase
	if err := c.DoJSON(ctx, http.MethodGet, purchasesPath, RequestOptions{Auth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPurchase fetches one purchase with its items.
func (c *Client) GetPurchase(ctx context.Context, id string) (*model.Purchase, error) {
	var out model.Purchase
	path := purchasesPath + url.PathEscape(id) + "/"
	if err := c.DoJSON(ctx, http.MethodGet, path, RequestOptions{Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePurchase posts a finalized cart. The idempotency key makes a
// retried submission safe: the backend deduplicates on it.
func (c *Client) CreatePurchase(ctx context.Context, req model.CreatePurchaseRequest, idempotencyKey string) (*model.Purchase, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	opts := RequestOptions{
		Auth:   true,
		Body:   body,
		Header: http.Header{"Idempotency-Key": []string{idempotencyKey}},
	}

	var out model.Purchase
	if err := c.DoJSON(ctx, http.MethodPost, purchasesPath, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePurchase removes one purchase from the history.
func (c *Client) DeletePurchase(ctx context.Context, id string) error {
	path := purchasesPath + url.PathEscape(id) + "/"
	_, err := c.Do(ctx, http.MethodDelete, path, RequestOptions{Auth: true})
	return err
}
