package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myanycart/anycart-go/internal/model"
)

func TestCreatePurchaseSendsIdempotencyKey(t *testing.T) {
	var gotKey string
	var gotReq model.CreatePurchaseRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/purchases/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get("Idempotency-Key")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"p1","cart_name":"Weekly","total_amount":"3.27"}`))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL)
	sessions.Set(model.Session{Access: "a", Refresh: "r"})

	req := model.CreatePurchaseRequest{
		CartName: "Weekly",
		Currency: "EUR",
		Items:    []model.PurchaseItemInput{{Name: "Milk", UnitPrice: "0.89", Quantity: 2}},
	}
	purchase, err := client.CreatePurchase(context.Background(), req, "key-123")
	if err != nil {
		t.Fatalf("CreatePurchase() unexpected error: %v", err)
	}
	if gotKey != "key-123" {
		t.Errorf("Idempotency-Key = %q, want key-123", gotKey)
	}
	if gotReq.CartName != "Weekly" || len(gotReq.Items) != 1 {
		t.Errorf("request body = %+v", gotReq)
	}
	if purchase.ID != "p1" {
		t.Errorf("purchase ID = %q, want p1", purchase.ID)
	}
}

func TestGetPurchaseEscapesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"id":"a/b"}`))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL)
	sessions.Set(model.Session{Access: "a", Refresh: "r"})

	if _, err := client.GetPurchase(context.Background(), "a/b"); err != nil {
		t.Fatalf("GetPurchase() unexpected error: %v", err)
	}
	if gotPath != "/api/purchases/a%2Fb/" {
		t.Errorf("path = %q, want escaped id", gotPath)
	}
}

func TestDeletePurchase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL)
	sessions.Set(model.Session{Access: "a", Refresh: "r"})

	if err := client.DeletePurchase(context.Background(), "p1"); err != nil {
		t.Fatalf("DeletePurchase() unexpected error: %v", err)
	}
}

func TestListPurchases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer a" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[{"id":"p1","total_amount":"1.78"},{"id":"p2","total_amount":"3.27"}]`))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL)
	sessions.Set(model.Session{Access: "a", Refresh: "r"})

	purchases, err := client.ListPurchases(context.Background())
	if err != nil {
		t.Fatalf("ListPurchases() unexpected error: %v", err)
	}
	if len(purchases) != 2 || purchases[1].Total() != 3.27 {
		t.Errorf("ListPurchases() = %+v", purchases)
	}
}
