package kb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestSearchWithoutKeySkipsNetwork(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	searcher := NewSearcher(Config{BaseURL: srv.URL})
	result := searcher.Search(context.Background(), "forgot password", "en-us")

	if result.Found || len(result.Articles) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if result.Query != "forgot password" {
		t.Fatalf("query must be echoed back, got %q", result.Query)
	}
	if calls.Load() != 0 {
		t.Fatalf("missing api key must not trigger network calls")
	}
}

func TestSearchLocaleFallback(t *testing.T) {
	var locales []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer zd-key" {
			t.Errorf("missing bearer token")
		}
		locale := r.URL.Query().Get("locale")
		locales = append(locales, locale)
		if r.URL.Query().Get("per_page") != "5" {
			t.Errorf("per_page must be 5")
		}

		w.Header().Set("Content-Type", "application/json")
		if locale == "zh-cn" {
			_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": 1, "title": "How to reset your password", "body": "<p>Steps...</p>", "html_url": "https://help/1", "locale": "en-us"},
			},
		})
	}))
	defer srv.Close()

	searcher := NewSearcher(Config{APIKey: "zd-key", BaseURL: srv.URL})
	result := searcher.Search(context.Background(), "忘记密码", "zh-cn")

	if !result.Found || len(result.Articles) != 1 {
		t.Fatalf("expected fallback hit, got %+v", result)
	}
	if len(locales) != 2 || locales[0] != "zh-cn" || locales[1] != "en-us" {
		t.Fatalf("expected zh-cn then en-us, got %v", locales)
	}
}

func TestSearchDeduplicatesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": 1, "title": "How to reset your password", "body": "a", "html_url": "https://help/1"},
				{"id": 2, "title": "How to reset your password?", "body": "b", "html_url": "https://help/2"},
				{"id": 3, "title": "Download the official app", "body": "c", "html_url": "https://help/3"},
			},
		})
	}))
	defer srv.Close()

	searcher := NewSearcher(Config{APIKey: "zd-key", BaseURL: srv.URL})
	result := searcher.Search(context.Background(), "password", "en-us")

	if len(result.Articles) != 2 {
		t.Fatalf("expected 2 articles after dedupe, got %d", len(result.Articles))
	}
	if result.Articles[0].ID != 1 {
		t.Fatalf("dedupe must keep the first occurrence, got %+v", result.Articles[0])
	}
}

func TestSearchServerErrorIsMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	searcher := NewSearcher(Config{APIKey: "zd-key", BaseURL: srv.URL})
	result := searcher.Search(context.Background(), "anything", "en-us")
	if result.Found {
		t.Fatalf("server error must read as not found")
	}
}

func TestSearchUsesSnippetWhenBodyEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": 7, "title": "Seed phrase safety", "snippet": "Never share it", "html_url": "https://help/7"},
			},
		})
	}))
	defer srv.Close()

	searcher := NewSearcher(Config{APIKey: "zd-key", BaseURL: srv.URL})
	result := searcher.Search(context.Background(), "seed phrase", "en-us")
	if !result.Found || result.Articles[0].Body != "Never share it" {
		t.Fatalf("snippet fallback missing, got %+v", result)
	}
}
