// Package chaindetect 根据交易哈希判断交易所在的区块链网络。
// 探测策略：先用 Etherscan v2 按优先级串行探测，未命中再退回 Chainbase。
// 两个提供方都有各自的限速，探测间隔由可注入的 Pacer 控制，
// 单次探测的网络或解析错误一律视为"该链未命中"，不会中断后续探测。
package chaindetect

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"Wallet-Copilot/internal/chains"
	"Wallet-Copilot/internal/validate"
	"Wallet-Copilot/pkg/logger"
)

const (
	// etherscanProbeDelay 对应 Etherscan 约 3 req/s 的限速。
	etherscanProbeDelay = 300 * time.Millisecond
	// chainbaseProbeDelay 对应 Chainbase 的限速。
	chainbaseProbeDelay = 200 * time.Millisecond

	defaultHTTPTimeout = 10 * time.Second
)

// Result 是一次链检测的结果，每次探测新建，不做持久化。
type Result struct {
	Found         bool           `json:"found"`
	ChainID       string         `json:"chainId,omitempty"`
	ChainName     string         `json:"chainName,omitempty"`
	ExplorerTxURL string         `json:"explorerTxUrl,omitempty"`
	Transaction   map[string]any `json:"transaction,omitempty"`
	Source        string         `json:"source,omitempty"`
}

// 结果来源。
const (
	SourceEtherscan = "etherscan"
	SourceChainbase = "chainbase"
)

// Pacer 在两次探测之间等待，测试中可替换为空实现以避免真实延时。
type Pacer func(ctx context.Context, delay time.Duration) error

// SleepPacer 是默认实现：真实等待，上下文取消时提前返回。
func SleepPacer(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Config 描述 Resolver 的构造参数。
// 任一 API Key 为空表示对应提供方不参与探测。
type Config struct {
	EtherscanAPIKey  string
	ChainbaseAPIKey  string
	EtherscanBaseURL string
	ChainbaseBaseURL string
	HTTPClient       *http.Client
	Pacer            Pacer
	Registry         *chains.Registry
}

// Resolver 执行链检测。
type Resolver struct {
	etherscanKey  string
	chainbaseKey  string
	etherscanBase string
	chainbaseBase string
	httpClient    *http.Client
	pace          Pacer
	registry      *chains.Registry
	log           *slog.Logger
}

// NewResolver 创建链检测器。
func NewResolver(cfg Config) *Resolver {
	base := cfg.EtherscanBaseURL
	if base == "" {
		base = "https://api.etherscan.io"
	}
	cbBase := cfg.ChainbaseBaseURL
	if cbBase == "" {
		cbBase = "https://api.chainbase.online"
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	pace := cfg.Pacer
	if pace == nil {
		pace = SleepPacer
	}
	registry := cfg.Registry
	if registry == nil {
		registry = chains.NewRegistry()
	}
	return &Resolver{
		etherscanKey:  cfg.EtherscanAPIKey,
		chainbaseKey:  cfg.ChainbaseAPIKey,
		etherscanBase: base,
		chainbaseBase: cbBase,
		httpClient:    client,
		pace:          pace,
		registry:      registry,
		log:           logger.Named("chaindetect"),
	}
}

// Resolve 判断交易哈希属于哪条链。
// 前置条件：哈希必须是 0x 前缀的 32 字节十六进制，否则直接返回未命中，
// 不发起任何网络调用。主提供方探测到底后才轮到备用提供方，两个提供方
// 不会并行竞争，因此主提供方的命中总是优先。
func (r *Resolver) Resolve(ctx context.Context, txHash string) Result {
	if !validate.IsTxHash(txHash) {
		r.log.Info("交易哈希格式非法，跳过探测", "tx_hash", txHash)
		return Result{Found: false}
	}

	if r.etherscanKey != "" {
		if result, ok := r.detectViaEtherscan(ctx, txHash); ok {
			return result
		}
	} else {
		r.log.Debug("未配置 Etherscan API Key，跳过主探测")
	}

	if r.chainbaseKey != "" {
		if result, ok := r.detectViaChainbase(ctx, txHash); ok {
			return result
		}
	} else {
		r.log.Debug("未配置 Chainbase API Key，跳过备用探测")
	}

	r.log.Info("所有提供方均未找到交易", "tx_hash", txHash)
	return Result{Found: false}
}
