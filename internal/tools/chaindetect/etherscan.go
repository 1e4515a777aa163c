package chaindetect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// chainlistEntry 对应 Etherscan v2 chainlist 接口返回的单条链描述。
type chainlistEntry struct {
	ChainID       string `json:"chainid"`
	ChainName     string `json:"chainname"`
	Status        string `json:"status"`
	APIURL        string `json:"apiurl"`
	BlockExplorer string `json:"blockexplorer"`
}

// fetchChainlist 拉取 Etherscan 支持的全部链，只保留在线（status=1）的。
func (r *Resolver) fetchChainlist(ctx context.Context) ([]chainlistEntry, error) {
	endpoint := r.etherscanBase + "/v2/chainlist"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 chainlist 失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chainlist 返回状态 %d", resp.StatusCode)
	}

	var decoded struct {
		Result []chainlistEntry `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("解析 chainlist 失败: %w", err)
	}

	online := make([]chainlistEntry, 0, len(decoded.Result))
	for _, entry := range decoded.Result {
		if entry.Status == "1" {
			online = append(online, entry)
		}
	}
	return online, nil
}

// detectViaEtherscan 按注册表的优先级顺序串行探测每条链。
// 命中即停；chainlist 拉取失败时整体放弃，交给备用提供方。
func (r *Resolver) detectViaEtherscan(ctx context.Context, txHash string) (Result, bool) {
	allChains, err := r.fetchChainlist(ctx)
	if err != nil {
		r.log.Warn("拉取 Etherscan chainlist 失败", "error", err)
		return Result{}, false
	}

	byID := make(map[int]chainlistEntry, len(allChains))
	for _, entry := range allChains {
		if id, err := strconv.Atoi(entry.ChainID); err == nil {
			byID[id] = entry
		}
	}

	// 只探测产品关心的优先链子集。
	probes := make([]chainlistEntry, 0, len(byID))
	for _, id := range r.registry.PriorityChainIDs() {
		if entry, ok := byID[id]; ok {
			probes = append(probes, entry)
		}
	}
	r.log.Info("开始 Etherscan 探测", "priority_chains", len(probes), "total_chains", len(allChains))

	for i, entry := range probes {
		tx, valid := r.probeEtherscan(ctx, entry.ChainID, txHash)
		if valid {
			r.log.Info("Etherscan 命中交易", "chain", entry.ChainName, "chain_id", entry.ChainID,
				"block", blockNumberOf(tx))
			return Result{
				Found:         true,
				ChainID:       entry.ChainID,
				ChainName:     entry.ChainName,
				ExplorerTxURL: strings.TrimRight(entry.BlockExplorer, "/") + "/tx/" + txHash,
				Transaction:   tx,
				Source:        SourceEtherscan,
			}, true
		}
		if i < len(probes)-1 {
			if err := r.pace(ctx, etherscanProbeDelay); err != nil {
				r.log.Warn("Etherscan 探测被取消", "error", err)
				return Result{}, false
			}
		}
	}

	r.log.Info("Etherscan 未找到交易", "tx_hash", txHash)
	return Result{}, false
}

// probeEtherscan 检查交易是否存在于指定链上。任何错误都按未命中处理。
func (r *Resolver) probeEtherscan(ctx context.Context, chainID, txHash string) (map[string]any, bool) {
	query := url.Values{}
	query.Set("chainid", chainID)
	query.Set("module", "proxy")
	query.Set("action", "eth_getTransactionByHash")
	query.Set("txhash", txHash)
	if r.etherscanKey != "" {
		query.Set("apikey", r.etherscanKey)
	}
	endpoint := r.etherscanBase + "/v2/api?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Debug("Etherscan 探测失败", "chain_id", chainID, "error", err)
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	var decoded struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		r.log.Debug("解析 Etherscan 响应失败", "chain_id", chainID, "error", err)
		return nil, false
	}

	var tx map[string]any
	if err := json.Unmarshal(decoded.Result, &tx); err != nil || tx == nil {
		return nil, false
	}
	if !isConfirmedTransaction(tx, txHash) {
		return nil, false
	}
	return tx, true
}

// isConfirmedTransaction 校验探测结果：
// 不含错误字段、哈希一致（忽略大小写）、已出块、有发送方。
func isConfirmedTransaction(tx map[string]any, expectedHash string) bool {
	if tx["error"] != nil || tx["message"] != nil {
		return false
	}
	hash, _ := tx["hash"].(string)
	if hash == "" || !strings.EqualFold(hash, expectedHash) {
		return false
	}
	block, _ := tx["blockNumber"].(string)
	if block == "" {
		return false
	}
	from, _ := tx["from"].(string)
	return from != ""
}

// blockNumberOf 把十六进制块号转成十进制用于日志，解析失败时返回原值。
func blockNumberOf(tx map[string]any) string {
	raw, _ := tx["blockNumber"].(string)
	if raw == "" {
		return ""
	}
	if number, err := hexutil.DecodeBig(raw); err == nil {
		return number.String()
	}
	return raw
}
