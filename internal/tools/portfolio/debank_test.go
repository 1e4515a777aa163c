package portfolio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchBuildsSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("AccessKey") != "db-key" {
			t.Errorf("missing access key header")
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/user/total_balance":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"total_usd_value": 12345.6,
				"chain_list": []map[string]any{
					{"id": "eth", "name": "Ethereum", "usd_value": 10000.0},
					{"id": "matic", "name": "Polygon", "usd_value": 2345.6},
				},
			})
		case "/v1/user/all_token_list":
			if r.URL.Query().Get("is_all") != "false" {
				t.Errorf("is_all must be false")
			}
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": "eth", "chain": "eth", "name": "Ether", "symbol": "ETH", "amount": 2.0, "price": 4500.0},
			})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	reader := NewReader(Config{APIKey: "db-key", BaseURL: srv.URL})
	snapshot, err := reader.Fetch(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.TotalUSDValue != 12345.6 || len(snapshot.Chains) != 2 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	if len(snapshot.Tokens) != 1 || snapshot.Tokens[0].Value != 9000 {
		t.Fatalf("token value must be amount*price: %+v", snapshot.Tokens)
	}
}

func TestFetchBalanceFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	reader := NewReader(Config{BaseURL: srv.URL})
	if _, err := reader.Fetch(context.Background(), "0xabc"); err == nil {
		t.Fatalf("total balance failure must fail the fetch")
	}
}

func TestFetchTokenListFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v1/user/total_balance" {
			_ = json.NewEncoder(w).Encode(map[string]any{"total_usd_value": 50.0})
			return
		}
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	reader := NewReader(Config{BaseURL: srv.URL})
	snapshot, err := reader.Fetch(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("token list failure must not fail the fetch: %v", err)
	}
	if snapshot.TotalUSDValue != 50 || len(snapshot.Tokens) != 0 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
}
