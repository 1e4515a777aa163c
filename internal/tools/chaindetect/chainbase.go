package chaindetect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// chainbaseChain 是 Chainbase 支持的链，探测按列表顺序进行。
type chainbaseChain struct {
	ChainID   int
	ChainName string
}

var chainbaseSupportedChains = []chainbaseChain{
	{1, "Ethereum"},
	{137, "Polygon"},
	{56, "BSC"},
	{43114, "Avalanche"},
	{42161, "Arbitrum One"},
	{10, "Optimism"},
	{8453, "Base"},
	{324, "zkSync"},
	{4200, "Merlin"},
}

// detectViaChainbase 在 Chainbase 支持的链上串行探测。
// 浏览器链接来自本地注册表；链未注册时退回默认浏览器。
func (r *Resolver) detectViaChainbase(ctx context.Context, txHash string) (Result, bool) {
	r.log.Info("退回 Chainbase 探测", "tx_hash", txHash)

	for _, chain := range chainbaseSupportedChains {
		tx, valid := r.probeChainbase(ctx, chain.ChainID, txHash)
		if valid {
			r.log.Info("Chainbase 命中交易", "chain", chain.ChainName, "chain_id", chain.ChainID)
			return Result{
				Found:         true,
				ChainID:       strconv.Itoa(chain.ChainID),
				ChainName:     chain.ChainName,
				ExplorerTxURL: r.registry.ExplorerURL(chain.ChainID) + "/tx/" + txHash,
				Transaction:   tx,
				Source:        SourceChainbase,
			}, true
		}
		if err := r.pace(ctx, chainbaseProbeDelay); err != nil {
			r.log.Warn("Chainbase 探测被取消", "error", err)
			return Result{}, false
		}
	}

	r.log.Info("Chainbase 未找到交易", "tx_hash", txHash)
	return Result{}, false
}

// probeChainbase 查询单条链上的交易详情。任何错误都按未命中处理。
func (r *Resolver) probeChainbase(ctx context.Context, chainID int, txHash string) (map[string]any, bool) {
	endpoint := fmt.Sprintf("%s/v1/tx/detail?chain_id=%d&hash=%s", r.chainbaseBase, chainID, txHash)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("x-api-key", r.chainbaseKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Debug("Chainbase 探测失败", "chain_id", chainID, "error", err)
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	var decoded struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		r.log.Debug("解析 Chainbase 响应失败", "chain_id", chainID, "error", err)
		return nil, false
	}
	tx := decoded.Data
	if tx == nil {
		return nil, false
	}

	// 校验口径与 Etherscan 一致：哈希一致、已出块、有发送方。
	hash, _ := tx["transaction_hash"].(string)
	if hash == "" || !strings.EqualFold(hash, txHash) {
		return nil, false
	}
	if block, _ := tx["block_number"]; block == nil || block == "" {
		return nil, false
	}
	if from, _ := tx["from_address"].(string); from == "" {
		return nil, false
	}
	return tx, true
}
