package history

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/params"

	"Wallet-Copilot/internal/i18n"
)

// sunPerTRX 是 TRON 的最小单位换算，TRX 固定 6 位小数。
const sunPerTRX = 1e6

var csvHeaders = map[i18n.Language][]string{
	i18n.English: {"Network", "Transaction Hash", "Time", "From", "To", "Amount", "Token Name", "Token Symbol", "Gas Fee", "Status"},
	i18n.Chinese: {"网络", "交易哈希", "时间", "发送方", "接收方", "金额", "代币名称", "代币符号", "Gas费用", "状态"},
}

// ToCSV 把两侧交易历史合并导出为 CSV 文本，表头和状态列按语言本地化。
// EVM 在前、TRON 在后，各自保持拉取顺序。
func ToCSV(evmTransactions []EVMTransaction, tronTransactions []TronTransaction, lang i18n.Language) (string, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	if err := writer.Write(csvHeaders[lang]); err != nil {
		return "", err
	}

	for _, tx := range evmTransactions {
		if err := writer.Write(evmRow(tx, lang)); err != nil {
			return "", err
		}
	}
	for _, tx := range tronTransactions {
		if err := writer.Write(tronRow(tx, lang)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

func evmRow(tx EVMTransaction, lang i18n.Language) []string {
	network := tx.ChainName
	if network == "" {
		network = "EVM"
	}
	tokenName := tx.TokenName
	if tokenName == "" {
		tokenName = "ETH"
	}
	tokenSymbol := tx.TokenSymbol
	if tokenSymbol == "" {
		tokenSymbol = "ETH"
	}
	decimals := tx.TokenDecimal
	if decimals == 0 {
		decimals = 18
	}

	amount := tx.Value / pow10(decimals)
	gasFee := tx.GasUsed * tx.GasPriceWei / params.Ether

	status := i18n.Pick(lang, "Success", "成功")
	if tx.Failed {
		status = i18n.Pick(lang, "Failed", "失败")
	}

	return []string{
		network,
		tx.Hash,
		time.Unix(tx.Timestamp, 0).UTC().Format("2006-01-02 15:04:05"),
		tx.From,
		tx.To,
		fmt.Sprintf("%.6f", amount),
		tokenName,
		tokenSymbol,
		fmt.Sprintf("%.6f", gasFee),
		status,
	}
}

func tronRow(tx TronTransaction, lang i18n.Language) []string {
	assetName := tx.AssetName
	if assetName == "" {
		assetName = "TRX"
	}

	status := i18n.Pick(lang, "Success", "成功")
	if !tx.Confirmed {
		status = i18n.Pick(lang, "Pending", "待确认")
	}

	return []string{
		"TRON",
		tx.Hash,
		time.UnixMilli(tx.TimestampMS).UTC().Format("2006-01-02 15:04:05"),
		tx.OwnerAddress,
		tx.ToAddress,
		fmt.Sprintf("%.6f", tx.Amount/sunPerTRX),
		assetName,
		assetName,
		fmt.Sprintf("%.6f", (tx.NetFee+tx.EnergyFee)/sunPerTRX),
		status,
	}
}

func pow10(exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= 10
	}
	return result
}
