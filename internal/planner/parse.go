package planner

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Tier 标记解码走到了哪一层。
type Tier int

const (
	// TierStructured 表示严格校验通过。
	TierStructured Tier = iota
	// TierSalvaged 表示严格校验失败，但宽松挽救得到了可用对象。
	TierSalvaged
	// TierUnrecoverable 表示原始文本中找不到任何 JSON 对象。
	// 本轮不执行任何工具请求。
	TierUnrecoverable
)

const (
	// ProcessingFallback 在挽救阶段补齐缺失的 assistant_message。
	ProcessingFallback = "I'm processing your request..."
	// ApologyMessage 是彻底解析失败时的固定回复。
	ApologyMessage = "I apologize, but I encountered an error processing your request. Could you please rephrase?"
)

// Result 是一次解析的带标记结果，调用方按 Tier 显式分支。
type Result struct {
	Tier     Tier
	Response PlannedResponse
}

var (
	jsonFencePattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	anyFencePattern  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
	bracePattern     = regexp.MustCompile(`(?s)\{.*\}`)
)

// Parse 把模型原始文本还原成 PlannedResponse。
// 流程：剥离围栏 → 提取大括号片段 → 严格解码 → 宽松挽救。
// 文本中任何位置都没有 JSON 对象时返回 TierUnrecoverable，
// 此时 Response 为固定道歉文案且不携带动作。
func Parse(raw string) Result {
	text := strings.TrimSpace(raw)

	// 优先剥离标注为 json 的代码围栏，其次任意围栏。
	if strings.Contains(text, "```json") {
		if match := jsonFencePattern.FindStringSubmatch(text); match != nil {
			text = strings.TrimSpace(match[1])
		}
	} else if strings.Contains(text, "```") {
		if match := anyFencePattern.FindStringSubmatch(text); match != nil {
			text = strings.TrimSpace(match[1])
		}
	}

	// 从剩余文本中贪婪提取首个 {...} 片段。
	if match := bracePattern.FindString(text); match != "" {
		text = match
	}

	var loose map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &loose); err != nil {
		return Result{
			Tier: TierUnrecoverable,
			Response: PlannedResponse{
				AssistantMessage: ApologyMessage,
				Actions:          []Action{},
				ToolRequests:     []ToolRequest{},
				Memory:           map[string]any{},
			},
		}
	}

	if resp, ok := decodeStrict(text); ok {
		return Result{Tier: TierStructured, Response: resp}
	}
	return Result{Tier: TierSalvaged, Response: salvage(loose)}
}

// decodeStrict 按完整契约解码：assistant_message 必须为非空字符串，
// 数组字段必须能按各自类型解码，每个动作必须是可执行的变体。
func decodeStrict(text string) (PlannedResponse, bool) {
	var resp PlannedResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return PlannedResponse{}, false
	}
	if strings.TrimSpace(resp.AssistantMessage) == "" {
		return PlannedResponse{}, false
	}
	for _, action := range resp.Actions {
		if !action.wellFormed() {
			return PlannedResponse{}, false
		}
	}
	if resp.Actions == nil {
		resp.Actions = []Action{}
	}
	if resp.ToolRequests == nil {
		resp.ToolRequests = []ToolRequest{}
	}
	if resp.Memory == nil {
		resp.Memory = map[string]any{}
	}
	return resp, true
}

// salvage 接受松散解析出来的对象：缺失或非法的字段逐个替换为默认值，
// 最大限度保住本轮可以继续执行的部分。
func salvage(loose map[string]json.RawMessage) PlannedResponse {
	resp := PlannedResponse{
		AssistantMessage: ProcessingFallback,
		Actions:          []Action{},
		ToolRequests:     []ToolRequest{},
		Memory:           map[string]any{},
	}

	if raw, ok := loose["assistant_message"]; ok {
		var message string
		if err := json.Unmarshal(raw, &message); err == nil && strings.TrimSpace(message) != "" {
			resp.AssistantMessage = message
		}
	}
	if raw, ok := loose["actions"]; ok {
		var actions []Action
		if err := json.Unmarshal(raw, &actions); err == nil && actions != nil {
			resp.Actions = actions
		}
	}
	if raw, ok := loose["tool_requests"]; ok {
		var requests []ToolRequest
		if err := json.Unmarshal(raw, &requests); err == nil && requests != nil {
			resp.ToolRequests = requests
		}
	}
	if raw, ok := loose["memory"]; ok {
		var memory map[string]any
		if err := json.Unmarshal(raw, &memory); err == nil && memory != nil {
			resp.Memory = memory
		}
	}
	return resp
}
