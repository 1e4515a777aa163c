package chains

import "testing"

func TestLookup(t *testing.T) {
	registry := NewRegistry()

	desc, ok := registry.Lookup(1)
	if !ok || desc.ChainName != "Ethereum Mainnet" {
		t.Fatalf("unexpected descriptor for chain 1: %+v", desc)
	}
	if desc.NativeCurrency.Symbol != "ETH" || desc.NativeCurrency.Decimals != 18 {
		t.Fatalf("unexpected native currency: %+v", desc.NativeCurrency)
	}

	if _, ok := registry.Lookup(999999); ok {
		t.Fatalf("unknown chain id must miss")
	}
}

func TestLookupString(t *testing.T) {
	registry := NewRegistry()

	if desc, ok := registry.LookupString("137"); !ok || desc.ChainID != 137 {
		t.Fatalf("numeric string lookup failed: %+v", desc)
	}
	if _, ok := registry.LookupString("not-a-number"); ok {
		t.Fatalf("non-numeric id must miss")
	}
}

func TestPriorityOrderStartsWithEthereum(t *testing.T) {
	registry := NewRegistry()
	priority := registry.PriorityChainIDs()

	if len(priority) == 0 || priority[0] != 1 {
		t.Fatalf("ethereum must be probed first, got %v", priority)
	}
	seen := make(map[int]bool, len(priority))
	for _, id := range priority {
		if seen[id] {
			t.Fatalf("duplicate chain id in probe order: %d", id)
		}
		seen[id] = true
		if !registry.Supported(id) {
			t.Fatalf("probe order references unknown chain %d", id)
		}
	}
}

func TestExplorerURLFallback(t *testing.T) {
	registry := NewRegistry()

	if got := registry.ExplorerURL(56); got != "https://bscscan.com" {
		t.Fatalf("unexpected explorer for bsc: %s", got)
	}
	if got := registry.ExplorerURL(424242); got != DefaultExplorerURL {
		t.Fatalf("unknown chain must fall back to default explorer: %s", got)
	}
}

func TestApplyOverlay(t *testing.T) {
	registry := NewRegistry()
	before := len(registry.PriorityChainIDs())

	merged := registry.Apply(Overlay{Chains: []Descriptor{
		{
			ChainID:           81457,
			ChainName:         "Blast",
			RPCURLs:           []string{"https://rpc.blast.io"},
			NativeCurrency:    Currency{Name: "Ether", Symbol: "ETH", Decimals: 18},
			BlockExplorerURLs: []string{"https://blastscan.io"},
		},
		{ChainID: 0, ChainName: "broken entry"},
	}})

	if desc, ok := merged.Lookup(81457); !ok || desc.ChainName != "Blast" {
		t.Fatalf("overlay chain missing: %+v", desc)
	}
	priority := merged.PriorityChainIDs()
	if len(priority) != before+1 || priority[len(priority)-1] != 81457 {
		t.Fatalf("overlay chain must be probed last, got %v", priority)
	}

	// 原注册表不受影响。
	if registry.Supported(81457) {
		t.Fatalf("apply must not mutate the original registry")
	}
}
