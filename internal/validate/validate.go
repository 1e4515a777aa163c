// Package validate 提供链上标识符的格式校验与提取工具。
package validate

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

var (
	txHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
	txHashScan    = regexp.MustCompile(`0x[0-9a-fA-F]{64}`)
	addressScan   = regexp.MustCompile(`0x[0-9a-fA-F]{40}`)
	tronPattern   = regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`)
)

// IsTxHash 判断字符串是否为 32 字节的交易哈希（0x 前缀）。
func IsTxHash(value string) bool {
	return txHashPattern.MatchString(value)
}

// IsEVMAddress 判断字符串是否为合法的 EVM 地址。
func IsEVMAddress(value string) bool {
	return common.IsHexAddress(value)
}

// IsTronAddress 判断字符串是否形如 TRON Base58 地址。
func IsTronAddress(value string) bool {
	return tronPattern.MatchString(value)
}

// ExtractTxHash 从自由文本中提取第一个交易哈希，找不到时返回空串。
func ExtractTxHash(text string) string {
	return txHashScan.FindString(text)
}

// ExtractAddress 从自由文本中提取第一个 EVM 地址，找不到时返回空串。
func ExtractAddress(text string) string {
	return addressScan.FindString(text)
}
