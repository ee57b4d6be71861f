package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/myanycart/anycart-go/internal/api"
	"github.com/myanycart/anycart-go/internal/config"
	"github.com/myanycart/anycart-go/internal/model"
	"github.com/myanycart/anycart-go/internal/repository"
)

func newTestPurchases(t *testing.T, base string) (*PurchaseService, *CartService) {
	t.Helper()
	dir := t.TempDir()
	sessions := repository.NewSessionStore(dir)
	sessions.Set(model.Session{Access: "a", Refresh: "r"})

	cfg := config.Config{APIBase: base, HTTPTimeout: 5 * time.Second, RateLimit: 1000, RateBurst: 1000}
	client := api.New(cfg, sessions)

	cart := NewCartService(repository.NewCartStore(dir))
	cart.Load()

	currencies := repository.NewCurrencyStore(dir, "EUR")
	return NewPurchaseService(client, cart, currencies), cart
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := newTestPurchases(t, "http://127.0.0.1:1")

	if _, err := svc.Checkout(context.Background(), "Weekly", ""); err != ErrEmptyCart {
		t.Errorf("Checkout() = %v, want ErrEmptyCart", err)
	}
}

func TestCheckoutBuildsRequestAndClearsCart(t *testing.T) {
	var gotReq model.CreatePurchaseRequest
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"p1","cart_name":"Weekly","currency":"EUR","total_amount":"1.78"}`))
	}))
	defer srv.Close()

	svc, cart := newTestPurchases(t, srv.URL)
	cart.Add(model.LineItem{ItemName: "Milk", ItemAmount: 2, ItemPrice: 0.89})

	purchase, err := svc.Checkout(context.Background(), "Weekly", "Corner shop")
	if err != nil {
		t.Fatalf("Checkout() unexpected error: %v", err)
	}
	if purchase.ID != "p1" {
		t.Errorf("purchase = %+v", purchase)
	}
	if gotKey == "" {
		t.Error("no Idempotency-Key sent")
	}
	if gotReq.CartName != "Weekly" || gotReq.StoreName != "Corner shop" || gotReq.Currency != "EUR" {
		t.Errorf("request = %+v", gotReq)
	}
	if len(gotReq.Items) != 1 {
		t.Fatalf("items = %+v, want 1", gotReq.Items)
	}
	if it := gotReq.Items[0]; it.Name != "Milk" || it.UnitPrice != "0.89" || it.Quantity != 2 {
		t.Errorf("item = %+v", it)
	}

	if items := cart.Items(); len(items) != 0 {
		t.Errorf("cart has %d items after checkout, want 0", len(items))
	}
}

func TestCheckoutDefaultCartName(t *testing.T) {
	var gotReq model.CreatePurchaseRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"p1"}`))
	}))
	defer srv.Close()

	svc, cart := newTestPurchases(t, srv.URL)
	cart.Add(model.LineItem{ItemName: "Milk", ItemAmount: 1, ItemPrice: 1})

	if _, err := svc.Checkout(context.Background(), "", ""); err != nil {
		t.Fatalf("Checkout() unexpected error: %v", err)
	}
	if gotReq.CartName != defaultCartName {
		t.Errorf("cart_name = %q, want %q", gotReq.CartName, defaultCartName)
	}
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	svc, cart := newTestPurchases(t, srv.URL)
	cart.Add(model.LineItem{ItemName: "Milk", ItemAmount: 1, ItemPrice: 1})

	if _, err := svc.Checkout(context.Background(), "Weekly", ""); err == nil {
		t.Fatal("Checkout() expected an error")
	}
	if items := cart.Items(); len(items) != 1 {
		t.Errorf("cart has %d items after failed checkout, want 1", len(items))
	}
}
