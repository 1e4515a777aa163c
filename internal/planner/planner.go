// Package planner 定义规划模型的输出契约，并负责把模型的原始文本
// 安全地还原成结构化对象。模型输出被视为不可信数据源：先做严格校验，
// 失败后降级为宽松挽救，两者都失败才放弃本轮工具执行。
package planner

import (
	"encoding/json"

	"Wallet-Copilot/internal/chains"
)

// 工具名称枚举。模型只能请求这些工具，未知名称会被编排引擎忽略。
const (
	ToolDetectChain    = "detect_chain"
	ToolGetPortfolio   = "get_portfolio"
	ToolExportHistory  = "export_history"
	ToolRecommendDApps = "recommend_dapps"
	ToolSearchKB       = "search_kb"
)

// 动作类型枚举，与客户端可执行的 UI 动作一一对应。
const (
	ActionOpenURL            = "open_url"
	ActionDeeplink           = "deeplink"
	ActionWalletAddChain     = "wallet_add_chain"
	ActionWalletSwitchChain  = "wallet_switch_chain"
	ActionWalletSendTx       = "wallet_send_tx"
	ActionWalletSign         = "wallet_sign"
	ActionExportTransactions = "export_transactions"
	ActionRecommendDApp      = "recommend_dapp"
)

// PlannedResponse 是模型对一轮对话的建议输出。
// 校验之后 AssistantMessage 一定非空，数组字段一定非 nil。
type PlannedResponse struct {
	AssistantMessage string         `json:"assistant_message"`
	Actions          []Action       `json:"actions"`
	ToolRequests     []ToolRequest  `json:"tool_requests"`
	Memory           map[string]any `json:"memory"`
}

// ToolRequest 是模型发出的一次外部工具调用请求。
type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// UnmarshalJSON 把 "params" 键规整为 "args"，两种拼写模型都会产生。
func (t *ToolRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Tool   string         `json:"tool"`
		Args   map[string]any `json:"args"`
		Params map[string]any `json:"params"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Tool = raw.Tool
	t.Args = raw.Args
	if t.Args == nil {
		t.Args = raw.Params
	}
	if t.Args == nil {
		t.Args = map[string]any{}
	}
	return nil
}

// StringArg 以字符串形式读取参数，参数不存在或非字符串时返回空串。
func (t ToolRequest) StringArg(keys ...string) string {
	for _, key := range keys {
		if value, ok := t.Args[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// Action 是客户端可执行的结构化建议，按 Type 区分变体，
// 每个变体只填与其执行相关的字段。
type Action struct {
	Type        string             `json:"type"`
	Label       string             `json:"label"`
	URL         string             `json:"url,omitempty"`
	Description string             `json:"description,omitempty"`
	Target      string             `json:"target,omitempty"`
	Chain       *chains.Descriptor `json:"chain,omitempty"`
	ChainID     int                `json:"chainId,omitempty"`
	Tx          *TxParams          `json:"tx,omitempty"`
	Sign        *SignParams        `json:"sign,omitempty"`
	Addresses   *ExportAddresses   `json:"addresses,omitempty"`
	Period      string             `json:"period,omitempty"`
	DApp        *DAppInfo          `json:"dapp,omitempty"`
}

// TxParams 描述 wallet_send_tx 需要的交易参数。
type TxParams struct {
	To    string `json:"to"`
	Value string `json:"value,omitempty"`
	Data  string `json:"data,omitempty"`
}

// SignParams 描述 wallet_sign 需要的签名参数。
type SignParams struct {
	Method    string         `json:"method"`
	Message   string         `json:"message,omitempty"`
	TypedData map[string]any `json:"typedData,omitempty"`
}

// ExportAddresses 描述交易导出涉及的地址。
type ExportAddresses struct {
	EVM  string `json:"evm,omitempty"`
	Tron string `json:"tron,omitempty"`
}

// DAppInfo 描述 recommend_dapp 动作携带的 DApp 摘要，文案已按回复语言选定。
type DAppInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	URL         string   `json:"url"`
	Risks       string   `json:"risks"`
	BestFor     []string `json:"bestFor"`
}

var knownActionTypes = map[string]bool{
	ActionOpenURL:            true,
	ActionDeeplink:           true,
	ActionWalletAddChain:     true,
	ActionWalletSwitchChain:  true,
	ActionWalletSendTx:       true,
	ActionWalletSign:         true,
	ActionExportTransactions: true,
	ActionRecommendDApp:      true,
}

// wellFormed 判断动作是否可以安全交给客户端执行。
func (a Action) wellFormed() bool {
	return knownActionTypes[a.Type] && a.Label != ""
}
