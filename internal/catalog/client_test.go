package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Options{
		BaseURL:    srv.URL,
		Token:      "tok",
		LocationID: "loc-1",
		Timeout:    time.Second,
	})
}

func TestListProducts_HeadersAndMapping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/products/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer auth, got %q", got)
		}
		if got := r.Header.Get("Version"); got != DefaultAPIVersion {
			t.Errorf("expected version header, got %q", got)
		}
		if got := r.URL.Query().Get("locationId"); got != "loc-1" {
			t.Errorf("expected locationId loc-1, got %q", got)
		}
		w.Write([]byte(`{"products":[
			{"_id":"a","name":"Ring","sku":"GOLD-22K-10G"},
			{"id":"b","name":"Chain","identifier":"GOLD-18K-5G","priceId":"pb"}
		]}`))
	})

	items, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "a" || items[0].Identifier != "GOLD-22K-10G" {
		t.Errorf("unexpected first item %+v", items[0])
	}
	if items[1].ID != "b" || items[1].Identifier != "GOLD-18K-5G" || items[1].CurrentPriceRecordID != "pb" {
		t.Errorf("unexpected second item %+v", items[1])
	}
}

func TestListProducts_AbsentArrayIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":0}`))
	})
	items, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestListProducts_Unauthorized(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		})
		_, err := c.ListProducts(context.Background())
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("status %d: expected ErrUnauthorized, got %v", code, err)
		}
	}
}

func TestListProducts_ServerErrorIsNotUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.ListProducts(context.Background())
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 StatusError, got %v", err)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Error("502 must not match ErrUnauthorized")
	}
}

func TestListPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/p1/price" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"prices":[{"_id":"x1","name":"10g","sku":"GOLD-22K-10G","currency":"USD","type":"one_time","amount":600}]}`))
	})
	recs, err := c.ListPrices(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.ID != "x1" || r.ProductID != "p1" || r.Identifier != "GOLD-22K-10G" || r.Amount != 600 {
		t.Errorf("unexpected record %+v", r)
	}
}

func TestUpdatePrice_Body(t *testing.T) {
	var got PriceUpdate
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/products/p1/price/x1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"_id":"x1"}`))
	})

	if err := c.UpdatePrice(context.Background(), "p1", "x1", PriceUpdate{Name: "10g", Amount: 667}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := PriceUpdate{Name: "10g", Type: DefaultPriceType, Currency: DefaultCurrency, Amount: 667, LocationID: "loc-1"}
	if got != want {
		t.Errorf("expected body %+v, got %+v", want, got)
	}
}

func TestUpdatePrice_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()
	c := NewClient(Options{BaseURL: srv.URL, Token: "t", Timeout: 50 * time.Millisecond})

	err := c.UpdatePrice(context.Background(), "p", "x", PriceUpdate{Amount: 1})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://example.test/", Token: "t"})
	if c.BaseURL != "http://example.test" {
		t.Errorf("expected trailing slash trimmed, got %q", c.BaseURL)
	}
	if c.APIVersion != DefaultAPIVersion || c.Timeout != DefaultTimeout {
		t.Errorf("expected defaults, got version %q timeout %v", c.APIVersion, c.Timeout)
	}
}
