package chaindetect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const testTxHash = "0xda41a158a793438eed784871ad2953b2a4c777518fcb71155390ba16be4df08e"

func noopPacer(ctx context.Context, delay time.Duration) error { return nil }

func newResolverForTest(t *testing.T, etherscanURL, chainbaseURL string) *Resolver {
	t.Helper()
	return NewResolver(Config{
		EtherscanAPIKey:  "es-key",
		ChainbaseAPIKey:  "cb-key",
		EtherscanBaseURL: etherscanURL,
		ChainbaseBaseURL: chainbaseURL,
		Pacer:            noopPacer,
	})
}

func TestResolveRejectsInvalidHashWithoutNetwork(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	resolver := newResolverForTest(t, srv.URL, srv.URL)
	for _, hash := range []string{"", "0x123", "not-a-hash", strings.Repeat("a", 66)} {
		result := resolver.Resolve(context.Background(), hash)
		if result.Found {
			t.Fatalf("invalid hash %q should not be found", hash)
		}
	}
	if calls.Load() != 0 {
		t.Fatalf("invalid hash must not trigger network calls, saw %d", calls.Load())
	}
}

func TestResolvePrimaryHitSkipsSecondary(t *testing.T) {
	etherscan := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v2/chainlist":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"result": []map[string]any{
					{"chainid": "1", "chainname": "Ethereum Mainnet", "status": "1", "blockexplorer": "https://etherscan.io/"},
					{"chainid": "137", "chainname": "Polygon Mainnet", "status": "0", "blockexplorer": "https://polygonscan.com"},
				},
			})
		case "/v2/api":
			// 哈希大小写故意与查询不同。
			_ = json.NewEncoder(w).Encode(map[string]any{
				"result": map[string]any{
					"hash":        strings.ToUpper(testTxHash[:2]) + testTxHash[2:],
					"blockNumber": "0x10d4f",
					"from":        "0x000000000000000000000000000000000000dead",
				},
			})
		default:
			t.Errorf("unexpected etherscan path: %s", r.URL.Path)
		}
	}))
	defer etherscan.Close()

	var chainbaseCalls atomic.Int64
	chainbase := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chainbaseCalls.Add(1)
	}))
	defer chainbase.Close()

	resolver := newResolverForTest(t, etherscan.URL, chainbase.URL)
	result := resolver.Resolve(context.Background(), testTxHash)

	if !result.Found || result.Source != SourceEtherscan {
		t.Fatalf("expected etherscan hit, got %+v", result)
	}
	if result.ChainID != "1" || result.ChainName != "Ethereum Mainnet" {
		t.Fatalf("unexpected chain: %+v", result)
	}
	if result.ExplorerTxURL != "https://etherscan.io/tx/"+testTxHash {
		t.Fatalf("unexpected explorer url: %s", result.ExplorerTxURL)
	}
	if chainbaseCalls.Load() != 0 {
		t.Fatalf("secondary provider must not be probed after primary hit")
	}
}

func TestResolveFallsBackToChainbase(t *testing.T) {
	etherscan := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v2/chainlist":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"result": []map[string]any{
					{"chainid": "1", "chainname": "Ethereum Mainnet", "status": "1", "blockexplorer": "https://etherscan.io"},
				},
			})
		case "/v2/api":
			_ = json.NewEncoder(w).Encode(map[string]any{"result": nil})
		}
	}))
	defer etherscan.Close()

	chainbase := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "cb-key" {
			t.Errorf("missing chainbase api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("chain_id") == "1" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"transaction_hash": testTxHash,
					"block_number":     17000000,
					"from_address":     "0x000000000000000000000000000000000000dead",
				},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": nil})
	}))
	defer chainbase.Close()

	resolver := newResolverForTest(t, etherscan.URL, chainbase.URL)
	result := resolver.Resolve(context.Background(), testTxHash)

	if !result.Found || result.Source != SourceChainbase {
		t.Fatalf("expected chainbase hit, got %+v", result)
	}
	if result.ChainID != "1" || result.ChainName != "Ethereum" {
		t.Fatalf("unexpected chain: %+v", result)
	}
	if result.ExplorerTxURL != "https://etherscan.io/tx/"+testTxHash {
		t.Fatalf("unexpected explorer url: %s", result.ExplorerTxURL)
	}
}

func TestResolveNotFoundAnywhere(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v2/chainlist":
			_ = json.NewEncoder(w).Encode(map[string]any{"result": []map[string]any{}})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"result": nil, "data": nil})
		}
	}))
	defer empty.Close()

	resolver := newResolverForTest(t, empty.URL, empty.URL)
	result := resolver.Resolve(context.Background(), testTxHash)
	if result.Found {
		t.Fatalf("expected miss, got %+v", result)
	}
}

func TestIsConfirmedTransaction(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"hash":        testTxHash,
			"blockNumber": "0x1",
			"from":        "0xabc",
		}
	}

	if !isConfirmedTransaction(base(), testTxHash) {
		t.Fatalf("valid transaction rejected")
	}

	pending := base()
	pending["blockNumber"] = ""
	if isConfirmedTransaction(pending, testTxHash) {
		t.Fatalf("pending transaction must be rejected")
	}

	mismatch := base()
	mismatch["hash"] = "0x" + strings.Repeat("1", 64)
	if isConfirmedTransaction(mismatch, testTxHash) {
		t.Fatalf("hash mismatch must be rejected")
	}

	withError := base()
	withError["error"] = map[string]any{"code": -32000}
	if isConfirmedTransaction(withError, testTxHash) {
		t.Fatalf("error payload must be rejected")
	}
}
