// Package portfolio 通过 DeBank 开放接口读取 EVM 地址的资产快照。
package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"Wallet-Copilot/internal/errors"
	"Wallet-Copilot/pkg/logger"
)

const defaultBaseURL = "https://pro-openapi.debank.com"

// ChainBalance 是单条链上的资产合计。
type ChainBalance struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	USDValue float64 `json:"usdValue"`
}

// Token 是一个代币持仓，Value 为 amount*price 的即时估值。
type Token struct {
	ID     string  `json:"id"`
	Chain  string  `json:"chain"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
	Price  float64 `json:"price"`
	Value  float64 `json:"value"`
}

// Snapshot 是一次地址资产读取的结果。
type Snapshot struct {
	TotalUSDValue float64        `json:"totalUsdValue"`
	Chains        []ChainBalance `json:"chains"`
	Tokens        []Token        `json:"tokens"`
}

// Config 描述 Reader 的构造参数。
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Reader 读取 DeBank 资产数据。
type Reader struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewReader 创建资产读取器。
func NewReader(cfg Config) *Reader {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Reader{
		apiKey:     cfg.APIKey,
		baseURL:    base,
		httpClient: client,
		log:        logger.Named("portfolio"),
	}
}

// Fetch 读取地址的总资产与代币列表。
// 总资产接口失败整体失败；代币列表接口失败只降级为空列表，
// 因为总额仍足以生成资产叙述。
func (r *Reader) Fetch(ctx context.Context, address string) (*Snapshot, error) {
	r.log.Info("读取 DeBank 资产", "address", address)

	var balance struct {
		TotalUSDValue float64 `json:"total_usd_value"`
		ChainList     []struct {
			ID       string  `json:"id"`
			Name     string  `json:"name"`
			USDValue float64 `json:"usd_value"`
		} `json:"chain_list"`
	}
	endpoint := r.baseURL + "/v1/user/total_balance?id=" + url.QueryEscape(address)
	if err := r.getJSON(ctx, endpoint, &balance); err != nil {
		return nil, errors.Wrap(errors.CodeProviderFailure, err, "读取总资产失败")
	}
	r.log.Info("DeBank 总资产", "total_usd", balance.TotalUSDValue, "chains", len(balance.ChainList))

	var tokenList []struct {
		ID     string  `json:"id"`
		Chain  string  `json:"chain"`
		Name   string  `json:"name"`
		Symbol string  `json:"symbol"`
		Amount float64 `json:"amount"`
		Price  float64 `json:"price"`
	}
	endpoint = r.baseURL + "/v1/user/all_token_list?id=" + url.QueryEscape(address) + "&is_all=false"
	if err := r.getJSON(ctx, endpoint, &tokenList); err != nil {
		r.log.Warn("读取代币列表失败，降级为空列表", "error", err)
		tokenList = nil
	}

	snapshot := &Snapshot{
		TotalUSDValue: balance.TotalUSDValue,
		Chains:        make([]ChainBalance, 0, len(balance.ChainList)),
		Tokens:        make([]Token, 0, len(tokenList)),
	}
	for _, chain := range balance.ChainList {
		snapshot.Chains = append(snapshot.Chains, ChainBalance{
			ID:       chain.ID,
			Name:     chain.Name,
			USDValue: chain.USDValue,
		})
	}
	for _, token := range tokenList {
		snapshot.Tokens = append(snapshot.Tokens, Token{
			ID:     token.ID,
			Chain:  token.Chain,
			Name:   token.Name,
			Symbol: token.Symbol,
			Amount: token.Amount,
			Price:  token.Price,
			Value:  token.Amount * token.Price,
		})
	}
	return snapshot, nil
}

func (r *Reader) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("AccessKey", r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("DeBank 返回状态 %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
