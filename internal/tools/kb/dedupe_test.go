package kb

import "testing"

func TestDeduplicateKeepsDistinctTitles(t *testing.T) {
	articles := []Article{
		{ID: 1, Title: "What is Layer 2"},
		{ID: 2, Title: "Common phishing scams"},
	}
	got := Deduplicate(articles)
	if len(got) != 2 {
		t.Fatalf("distinct titles must survive, got %d", len(got))
	}
}

func TestDeduplicateDropsNearIdenticalTitles(t *testing.T) {
	articles := []Article{
		{ID: 1, Title: "How to reset your password"},
		{ID: 2, Title: "How to Reset Your Password!"},
		{ID: 3, Title: "How to reset your password (iOS)"},
	}
	got := Deduplicate(articles)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only the first article, got %+v", got)
	}
}

func TestDeduplicateCollapsesAllChineseTitles(t *testing.T) {
	articles := []Article{
		{ID: 1, Title: "如何重置密码"},
		{ID: 2, Title: "怎样备份助记词"},
	}
	got := Deduplicate(articles)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("titles that normalize to empty must collapse to the first article, got %+v", got)
	}
}

func TestDeduplicateSingleArticle(t *testing.T) {
	articles := []Article{{ID: 1, Title: "Hello"}}
	if got := Deduplicate(articles); len(got) != 1 {
		t.Fatalf("single article must pass through")
	}
}

func TestTitleSimilarity(t *testing.T) {
	a := normalizeTitle("How to reset your password")
	b := normalizeTitle("How to reset your password?")
	if sim := titleSimilarity(a, b); sim <= duplicateThreshold {
		t.Fatalf("expected near-identical titles above threshold, got %f", sim)
	}

	c := normalizeTitle("Bridging assets across chains")
	if sim := titleSimilarity(a, c); sim > duplicateThreshold {
		t.Fatalf("unrelated titles must stay below threshold, got %f", sim)
	}

	if sim := titleSimilarity("", ""); sim != 1 {
		t.Fatalf("two empty-normalized titles must be identical, got %f", sim)
	}
	if sim := titleSimilarity("", a); sim != 0 {
		t.Fatalf("empty against non-empty must not match, got %f", sim)
	}
}
