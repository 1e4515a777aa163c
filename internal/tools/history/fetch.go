// Package history 拉取 EVM 与 TRON 的交易历史并导出为 CSV。
// EVM 侧走 DeBank，TRON 侧走 Tronscan；任一侧拉取失败都降级为空列表，
// 保证导出流程不因单侧提供方故障而整体失败。
package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"Wallet-Copilot/pkg/logger"
)

// 导出周期。
const (
	PeriodWeek        = "1week"
	PeriodMonth       = "1month"
	PeriodThreeMonths = "3months"
)

// EVMTransaction 是一条 EVM 侧历史记录，字段口径对齐导出 CSV 的列。
type EVMTransaction struct {
	Hash         string
	Timestamp    int64
	From         string
	To           string
	Value        float64
	TokenName    string
	TokenSymbol  string
	TokenDecimal int
	GasUsed      float64
	GasPriceWei  float64
	Failed       bool
	ChainName    string
}

// TronTransaction 是一条 TRON 侧历史记录。
type TronTransaction struct {
	Hash         string
	TimestampMS  int64
	OwnerAddress string
	ToAddress    string
	Amount       float64
	AssetName    string
	NetFee       float64
	EnergyFee    float64
	Confirmed    bool
}

// periodStart 把周期换算成起始时间。
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, 0, -30)
	case PeriodThreeMonths:
		return now.AddDate(0, 0, -90)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// ValidPeriod 判断周期参数是否合法。
func ValidPeriod(period string) bool {
	switch period {
	case PeriodWeek, PeriodMonth, PeriodThreeMonths:
		return true
	}
	return false
}

// Config 描述 Fetcher 的构造参数。
type Config struct {
	DeBankAPIKey    string
	TronscanAPIKey  string
	DeBankBaseURL   string
	TronscanBaseURL string
	HTTPClient      *http.Client
	Now             func() time.Time
}

// Fetcher 拉取交易历史。
type Fetcher struct {
	debankKey    string
	tronscanKey  string
	debankBase   string
	tronscanBase string
	httpClient   *http.Client
	now          func() time.Time
	log          *slog.Logger
}

// NewFetcher 创建历史拉取器。
func NewFetcher(cfg Config) *Fetcher {
	debankBase := cfg.DeBankBaseURL
	if debankBase == "" {
		debankBase = "https://pro-openapi.debank.com"
	}
	tronBase := cfg.TronscanBaseURL
	if tronBase == "" {
		tronBase = "https://apilist.tronscanapi.com"
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Fetcher{
		debankKey:    cfg.DeBankAPIKey,
		tronscanKey:  cfg.TronscanAPIKey,
		debankBase:   debankBase,
		tronscanBase: tronBase,
		httpClient:   client,
		now:          now,
		log:          logger.Named("history"),
	}
}

// FetchEVM 从 DeBank 拉取全量历史并按周期过滤。失败时返回空列表。
func (f *Fetcher) FetchEVM(ctx context.Context, address, period string) []EVMTransaction {
	f.log.Info("拉取 EVM 交易历史", "address", address, "period", period)

	endpoint := f.debankBase + "/v1/user/all_history_list?id=" + url.QueryEscape(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	if f.debankKey != "" {
		req.Header.Set("AccessKey", f.debankKey)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.log.Warn("DeBank 历史请求失败", "error", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		f.log.Warn("DeBank 历史返回非 200", "status", resp.StatusCode)
		return nil
	}

	var decoded struct {
		HistoryList []struct {
			ID        string  `json:"id"`
			TimeAt    float64 `json:"time_at"`
			OtherAddr string  `json:"other_addr"`
			Chain     string  `json:"chain"`
			Sends     []struct {
				Amount   float64 `json:"amount"`
				TokenID  string  `json:"token_id"`
				Name     string  `json:"name"`
				Symbol   string  `json:"symbol"`
				Decimals int     `json:"decimals"`
			} `json:"sends"`
		} `json:"history_list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		f.log.Warn("解析 DeBank 历史失败", "error", err)
		return nil
	}
	f.log.Info("DeBank 历史返回", "count", len(decoded.HistoryList))

	start := periodStart(period, f.now()).Unix()
	transactions := make([]EVMTransaction, 0, len(decoded.HistoryList))
	for _, item := range decoded.HistoryList {
		if int64(item.TimeAt) < start {
			continue
		}
		tx := EVMTransaction{
			Hash:         item.ID,
			Timestamp:    int64(item.TimeAt),
			From:         item.OtherAddr,
			To:           item.OtherAddr,
			TokenDecimal: 18,
			ChainName:    item.Chain,
		}
		if len(item.Sends) > 0 {
			tx.Value = item.Sends[0].Amount
			tx.TokenName = item.Sends[0].Name
			tx.TokenSymbol = item.Sends[0].Symbol
			if item.Sends[0].Decimals > 0 {
				tx.TokenDecimal = item.Sends[0].Decimals
			}
		}
		transactions = append(transactions, tx)
	}
	return transactions
}

// FetchTron 从 Tronscan 拉取周期内的交易。失败时返回空列表。
func (f *Fetcher) FetchTron(ctx context.Context, address, period string) []TronTransaction {
	f.log.Info("拉取 TRON 交易历史", "address", address, "period", period)

	now := f.now()
	params := url.Values{}
	params.Set("sort", "-timestamp")
	params.Set("count", "true")
	params.Set("limit", "50")
	params.Set("start", "0")
	params.Set("address", address)
	params.Set("start_timestamp", strconv.FormatInt(periodStart(period, now).UnixMilli(), 10))
	params.Set("end_timestamp", strconv.FormatInt(now.UnixMilli(), 10))
	endpoint := f.tronscanBase + "/api/transaction?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	if f.tronscanKey != "" {
		req.Header.Set("TRON-PRO-API-KEY", f.tronscanKey)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.log.Warn("Tronscan 请求失败", "error", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		f.log.Warn("Tronscan 返回非 200", "status", resp.StatusCode)
		return nil
	}

	var decoded struct {
		Data []struct {
			Hash         string `json:"hash"`
			Timestamp    int64  `json:"timestamp"`
			OwnerAddress string `json:"ownerAddress"`
			ToAddress    string `json:"toAddress"`
			Confirmed    bool   `json:"confirmed"`
			ContractData struct {
				Amount       float64 `json:"amount"`
				AssetName    string  `json:"asset_name"`
				OwnerAddress string  `json:"owner_address"`
				ToAddress    string  `json:"to_address"`
			} `json:"contractData"`
			Cost struct {
				NetFee    float64 `json:"net_fee"`
				EnergyFee float64 `json:"energy_fee"`
			} `json:"cost"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		f.log.Warn("解析 Tronscan 响应失败", "error", err)
		return nil
	}
	f.log.Info("Tronscan 返回", "count", len(decoded.Data))

	transactions := make([]TronTransaction, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		owner := item.OwnerAddress
		if owner == "" {
			owner = item.ContractData.OwnerAddress
		}
		to := item.ToAddress
		if to == "" {
			to = item.ContractData.ToAddress
		}
		transactions = append(transactions, TronTransaction{
			Hash:         item.Hash,
			TimestampMS:  item.Timestamp,
			OwnerAddress: owner,
			ToAddress:    to,
			Amount:       item.ContractData.Amount,
			AssetName:    item.ContractData.AssetName,
			NetFee:       item.Cost.NetFee,
			EnergyFee:    item.Cost.EnergyFee,
			Confirmed:    item.Confirmed,
		})
	}
	return transactions
}
