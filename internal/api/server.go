// Package api 暴露对话与导出两个 REST 接口。
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"Wallet-Copilot/internal/engine"
	xerrors "Wallet-Copilot/internal/errors"
	"Wallet-Copilot/internal/i18n"
	"Wallet-Copilot/internal/llm"
	"Wallet-Copilot/internal/planner"
	"Wallet-Copilot/internal/tools/history"
	"Wallet-Copilot/pkg/logger"
)

// defaultRequestTimeout 是单次请求的处理上限。
const defaultRequestTimeout = 60 * time.Second

// HistoryFetcher 抽象交易历史拉取，便于测试替换。
type HistoryFetcher interface {
	FetchEVM(ctx context.Context, address, period string) []history.EVMTransaction
	FetchTron(ctx context.Context, address, period string) []history.TronTransaction
}

// Server 负责暴露 REST 接口，供客户端驱动助手执行一轮对话。
type Server struct {
	addr    string
	planner llm.Client
	engine  *engine.Engine
	history HistoryFetcher
	timeout time.Duration
	log     *slog.Logger
}

// NewServer 构造 API 服务实例。timeout 不为正时取默认 60 秒。
func NewServer(addr string, plannerClient llm.Client, eng *engine.Engine, fetcher HistoryFetcher, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Server{
		addr:    addr,
		planner: plannerClient,
		engine:  eng,
		history: fetcher,
		timeout: timeout,
		log:     logger.Named("api"),
	}
}

// Start 启动 HTTP 服务，直到上下文取消或出现错误。
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           withContext(ctx, s.Handler()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Handler 返回路由后的处理器，测试中可直接挂到 httptest.Server。
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/chat", s.handleChat)
	mux.HandleFunc("/api/v1/export", s.handleExport)
	return mux
}

// chatRequest 是一轮对话的请求体。
type chatRequest struct {
	Messages []llm.Message `json:"messages"`
	Address  string        `json:"address"`
	Locale   string        `json:"locale"`
}

// chatResponse 是一轮对话的响应体。
type chatResponse struct {
	AssistantMessage string           `json:"assistant_message"`
	Actions          []planner.Action `json:"actions"`
}

// handleChat 处理一轮对话：语言检测 → 规划模型 → 解析 → 工具编排。
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "仅支持 POST", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "请求体解析失败", http.StatusBadRequest)
		return
	}

	turnID := uuid.NewString()
	lang := s.detectLanguage(req)
	s.log.Info("开始对话轮次", "turn_id", turnID, "language", lang, "messages", len(req.Messages))

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	raw, err := s.planner.Complete(ctx, llm.Request{
		Messages: req.Messages,
		Address:  req.Address,
		Language: string(lang),
	})
	if err != nil {
		code := xerrors.CodePlannerFailure
		if errors.Is(err, context.DeadlineExceeded) {
			code = xerrors.CodeTimeout
		}
		wrapped := xerrors.Wrap(code, err, "规划模型调用失败")
		attrs := xerrors.AttributesOf(code)
		s.log.Error("规划模型调用失败", "turn_id", turnID, "error", err,
			"error_code", string(code), "severity", string(attrs.Severity), "retryable", attrs.Retryable)
		writeError(w, "Internal server error", wrapped)
		return
	}
	logger.Audit().Info("规划模型输出", "turn_id", turnID, "raw", raw)

	parsed := planner.Parse(raw)
	if parsed.Tier == planner.TierUnrecoverable {
		s.log.Warn("规划输出不可恢复，返回道歉文案", "turn_id", turnID)
		writeJSON(w, chatResponse{
			AssistantMessage: parsed.Response.AssistantMessage,
			Actions:          []planner.Action{},
		})
		return
	}
	if parsed.Tier == planner.TierSalvaged {
		s.log.Warn("规划输出经过挽救", "turn_id", turnID)
	}

	result := s.engine.Run(ctx, parsed.Response, req.Address, lang)
	writeJSON(w, chatResponse{
		AssistantMessage: result.AssistantMessage,
		Actions:          result.Actions,
	})
}

// detectLanguage 以用户最后一条消息为准判断回复语言，
// 没有用户消息时退回客户端声明的 locale。
func (s *Server) detectLanguage(req chatRequest) i18n.Language {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			return i18n.Detect(req.Messages[i].Content)
		}
	}
	return i18n.Normalize(req.Locale)
}

// exportRequest 是交易导出的请求体。
type exportRequest struct {
	Addresses planner.ExportAddresses `json:"addresses"`
	Period    string                  `json:"period"`
	Locale    string                  `json:"locale"`
}

// handleExport 拉取两侧交易历史并以 CSV 附件返回。
// 单侧地址缺失或拉取失败都不影响另一侧的导出。
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "仅支持 POST", http.StatusMethodNotAllowed)
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "请求体解析失败", http.StatusBadRequest)
		return
	}
	if !history.ValidPeriod(req.Period) {
		writeError(w, "Unsupported export period",
			xerrors.New(xerrors.CodeInvalidArgument, "不支持的导出周期", xerrors.WithMetadata("period", req.Period)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	lang := i18n.Normalize(req.Locale)
	s.log.Info("导出交易历史", "period", req.Period,
		"has_evm", req.Addresses.EVM != "", "has_tron", req.Addresses.Tron != "")

	var evmTransactions []history.EVMTransaction
	if req.Addresses.EVM != "" {
		evmTransactions = s.history.FetchEVM(ctx, req.Addresses.EVM, req.Period)
	}
	var tronTransactions []history.TronTransaction
	if req.Addresses.Tron != "" {
		tronTransactions = s.history.FetchTron(ctx, req.Addresses.Tron, req.Period)
	}

	csvText, err := history.ToCSV(evmTransactions, tronTransactions, lang)
	if err != nil {
		wrapped := xerrors.Wrap(xerrors.CodeExportFailure, err, "生成 CSV 失败")
		s.log.Error("生成 CSV 失败", "error", wrapped)
		writeError(w, "Failed to export transactions", wrapped)
		return
	}

	filename := "transactions_" + req.Period + "_" + uuid.NewString() + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write([]byte(csvText))
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError 按错误链上的错误码决定 HTTP 状态，响应体带稳定的 code 字段。
func writeError(w http.ResponseWriter, message string, err error) {
	code := xerrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusOf(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   message,
		"code":    string(code),
		"details": err.Error(),
	})
}

// statusOf 把错误码映射为 HTTP 状态，未覆盖的错误码一律 500。
func statusOf(code xerrors.Code) int {
	switch code {
	case xerrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case xerrors.CodeNotFound:
		return http.StatusNotFound
	case xerrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// withContext 确保请求处理能够感知根上下文取消。
func withContext(ctx context.Context, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-ctx.Done():
			http.Error(w, "服务已关闭", http.StatusServiceUnavailable)
			return
		default:
		}
		handler.ServeHTTP(w, r)
	})
}
