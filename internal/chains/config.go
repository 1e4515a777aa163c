package chains

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overlay models the structure of configs/chains.yaml, an optional file
// that lets deployments register extra networks without a rebuild.
type Overlay struct {
	Chains []Descriptor `yaml:"chains"`
}

// LoadOverlay parses the YAML file containing extra chain definitions.
// An empty path yields an empty overlay.
func LoadOverlay(path string) (Overlay, error) {
	if strings.TrimSpace(path) == "" {
		return Overlay{}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Overlay{}, fmt.Errorf("读取链配置失败: %w", err)
	}

	var overlay Overlay
	if err := yaml.Unmarshal(content, &overlay); err != nil {
		return Overlay{}, fmt.Errorf("解析链配置失败: %w", err)
	}
	return overlay, nil
}

// Apply merges overlay entries into a copy of the registry. Entries with an
// unknown chain id are added; entries matching a built-in id replace it.
// The built-in probe order is preserved; overlay-only chains are probed last.
func (r *Registry) Apply(overlay Overlay) *Registry {
	if len(overlay.Chains) == 0 {
		return r
	}
	merged := make(map[int]Descriptor, len(r.chains)+len(overlay.Chains))
	for id, desc := range r.chains {
		merged[id] = desc
	}
	priority := r.PriorityChainIDs()
	for _, desc := range overlay.Chains {
		if desc.ChainID <= 0 || desc.ChainName == "" {
			continue
		}
		if _, exists := merged[desc.ChainID]; !exists {
			priority = append(priority, desc.ChainID)
		}
		merged[desc.ChainID] = desc
	}
	return &Registry{chains: merged, priority: priority}
}
