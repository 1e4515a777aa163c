package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Config 描述了 Copilot 服务启动阶段需要加载的核心配置。
type Config struct {
	Server    ServerConfig    `json:"server"`
	LLM       LLMConfig       `json:"llm"`
	Providers ProvidersConfig `json:"providers"`
	Cache     CacheConfig     `json:"cache"`
	Chains    ChainsConfig    `json:"chains"`
	Log       LogConfig       `json:"log"`
}

// ServerConfig 控制 API 服务的监听地址与单次请求的时间上限。
type ServerConfig struct {
	Address               string `json:"address"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
}

// LLMConfig 用于配置规划模型的调用方式。
type LLMConfig struct {
	Provider string       `json:"provider"`
	OpenAI   OpenAIConfig `json:"openai"`
}

// OpenAIConfig 描述 OpenAI Chat Completions 的调用参数。
type OpenAIConfig struct {
	APIKey         string `json:"api_key"`
	BaseURL        string `json:"base_url"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// ProvidersConfig 汇总外部数据提供方的凭证。
// 任一凭证为空表示该提供方不参与，相关工具静默跳过。
type ProvidersConfig struct {
	Etherscan CredentialConfig `json:"etherscan"`
	Chainbase CredentialConfig `json:"chainbase"`
	DeBank    CredentialConfig `json:"debank"`
	Tronscan  CredentialConfig `json:"tronscan"`
	Zendesk   ZendeskConfig    `json:"zendesk"`
}

// CredentialConfig 描述单个提供方的 API Key。
type CredentialConfig struct {
	APIKey string `json:"api_key"`
}

// ZendeskConfig 描述帮助中心搜索服务的接入参数。
type ZendeskConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
}

// CacheConfig 选择帮助中心搜索结果的缓存后端。
type CacheConfig struct {
	Driver string      `json:"driver"`
	Redis  RedisConfig `json:"redis"`
}

// RedisConfig 描述 Redis 缓存的连接参数。
type RedisConfig struct {
	Address    string `json:"address"`
	Password   string `json:"password"`
	DB         int    `json:"db"`
	TTLSeconds int    `json:"ttl_seconds"`
}

// ChainsConfig 指定链注册表的可选扩展文件。
type ChainsConfig struct {
	OverlayPath string `json:"overlay_path"`
}

// LogConfig 控制日志输出。
type LogConfig struct {
	Level   string   `json:"level"`
	Format  string   `json:"format"`
	Outputs []string `json:"outputs"`
	Audit   bool     `json:"audit"`
	Path    string   `json:"audit_path"`
}

// Load 负责解析指定路径的 JSON 配置文件。
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("配置文件路径为空")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开配置文件失败: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	cfg.applyDefaults(filepath.Dir(path))
	cfg.applyEnv()

	return &cfg, nil
}

// RequestTimeout 返回请求级别的时间上限。
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// applyDefaults 在用户未填写部分字段时设置合理的默认值。
func (c *Config) applyDefaults(baseDir string) {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		c.Server.RequestTimeoutSeconds = 60
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.OpenAI.Model == "" {
		c.LLM.OpenAI.Model = "gpt-4o-mini"
	}
	if c.LLM.OpenAI.TimeoutSeconds <= 0 {
		c.LLM.OpenAI.TimeoutSeconds = 60
	}

	if c.Cache.Driver == "" {
		c.Cache.Driver = "none"
	}
	if c.Cache.Redis.TTLSeconds <= 0 {
		c.Cache.Redis.TTLSeconds = 600
	}

	if c.Chains.OverlayPath != "" && !filepath.IsAbs(c.Chains.OverlayPath) {
		c.Chains.OverlayPath = filepath.Join(baseDir, c.Chains.OverlayPath)
	}
}

// applyEnv 允许通过环境变量覆盖敏感凭证，避免写入配置文件。
func (c *Config) applyEnv() {
	overlay := func(target *string, key string) {
		if value := os.Getenv(key); value != "" {
			*target = value
		}
	}
	overlay(&c.LLM.OpenAI.APIKey, "OPENAI_API_KEY")
	overlay(&c.Providers.Etherscan.APIKey, "ETHERSCAN_API_KEY")
	overlay(&c.Providers.Chainbase.APIKey, "CHAINBASE_API_KEY")
	overlay(&c.Providers.DeBank.APIKey, "DEBANK_API_KEY")
	overlay(&c.Providers.Tronscan.APIKey, "TRONSCAN_API_KEY")
	overlay(&c.Providers.Zendesk.APIKey, "ZENDESK_API_KEY")
}
