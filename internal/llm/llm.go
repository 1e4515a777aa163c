package llm

import "context"

// Message 是一条对话消息，Role 取 user 或 assistant。
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request 描述一次规划调用的上下文。
type Request struct {
	// Messages 是完整的对话历史，末尾为用户最新一条消息。
	Messages []Message
	// Address 是已连接的钱包地址，未连接时为空。
	Address string
	// Language 是检测出的回复语言（en 或 zh）。
	Language string
}

// Client 定义了调用规划模型的统一接口。
// 返回值是模型的原始文本，结构化解析由上层负责。
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
