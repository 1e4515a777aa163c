// Package engine 把规划模型的工具请求编排成最终回复。
// 每个工具请求按出现顺序同步执行，结果按各自的合并策略
// 叠加到回复与动作列表上；未知工具名直接忽略。
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"Wallet-Copilot/internal/chains"
	"Wallet-Copilot/internal/dapps"
	"Wallet-Copilot/internal/i18n"
	"Wallet-Copilot/internal/planner"
	"Wallet-Copilot/internal/tools/chaindetect"
	"Wallet-Copilot/internal/tools/kb"
	"Wallet-Copilot/internal/tools/portfolio"
)

// ChainDetector 抽象链检测工具。
type ChainDetector interface {
	Resolve(ctx context.Context, txHash string) chaindetect.Result
}

// PortfolioReader 抽象资产读取工具。
type PortfolioReader interface {
	Fetch(ctx context.Context, address string) (*portfolio.Snapshot, error)
}

// KBSearcher 抽象知识库搜索工具。
type KBSearcher interface {
	Search(ctx context.Context, query, locale string) kb.SearchResult
}

// Recommender 抽象 DApp 推荐，默认实现是内置清单的纯函数筛选。
type Recommender func(intent dapps.Intent) []dapps.DApp

// Result 是一轮编排后的最终输出。
type Result struct {
	AssistantMessage string           `json:"assistant_message"`
	Actions          []planner.Action `json:"actions"`
}

// Config 描述 Engine 的构造参数。
type Config struct {
	Detector  ChainDetector
	Portfolio PortfolioReader
	KB        KBSearcher
	Recommend Recommender
	Registry  *chains.Registry
}

// Engine 执行工具编排。
type Engine struct {
	detector  ChainDetector
	portfolio PortfolioReader
	kb        KBSearcher
	recommend Recommender
	registry  *chains.Registry
	log       *slog.Logger
}

// New 创建编排引擎。Recommend 为 nil 时使用内置清单，
// Registry 为 nil 时使用内置链注册表。
func New(cfg Config, log *slog.Logger) *Engine {
	recommend := cfg.Recommend
	if recommend == nil {
		recommend = dapps.Recommend
	}
	registry := cfg.Registry
	if registry == nil {
		registry = chains.NewRegistry()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		detector:  cfg.Detector,
		portfolio: cfg.Portfolio,
		kb:        cfg.KB,
		recommend: recommend,
		registry:  registry,
		log:       log,
	}
}

// Run 按顺序执行 planned 中的工具请求并合并结果。
// walletAddress 是已连接的钱包地址，作为部分工具的默认参数。
func (e *Engine) Run(ctx context.Context, planned planner.PlannedResponse, walletAddress string, lang i18n.Language) Result {
	state := &turnState{
		message: planned.AssistantMessage,
		actions: planned.Actions,
	}
	if state.actions == nil {
		state.actions = []planner.Action{}
	}

	for _, request := range planned.ToolRequests {
		e.log.Info("执行工具", "tool", request.Tool)
		switch request.Tool {
		case planner.ToolDetectChain:
			e.runDetectChain(ctx, request, state, lang)
		case planner.ToolGetPortfolio:
			e.runGetPortfolio(ctx, request, state, walletAddress, lang)
		case planner.ToolExportHistory:
			e.runExportHistory(request, state, walletAddress, lang)
		case planner.ToolRecommendDApps:
			e.runRecommendDApps(request, state, lang)
		case planner.ToolSearchKB:
			e.runSearchKB(ctx, request, state, lang)
		default:
			e.log.Warn("未知工具，忽略", "tool", request.Tool)
		}
	}

	return Result{AssistantMessage: state.message, Actions: state.actions}
}

// turnState 是一轮编排的累积状态。
type turnState struct {
	message string
	actions []planner.Action
}

func (s *turnState) push(action planner.Action) {
	s.actions = append(s.actions, action)
}

// runDetectChain 处理 detect_chain：命中已注册链时给出切换与浏览器两个动作，
// 未注册链只给浏览器跳转，完全未命中时替换为未找到文案。
func (e *Engine) runDetectChain(ctx context.Context, request planner.ToolRequest, state *turnState, lang i18n.Language) {
	txHash := request.StringArg("tx_hash", "txHash")
	if txHash == "" {
		e.log.Warn("detect_chain 缺少 tx_hash 参数")
		return
	}

	result := e.detector.Resolve(ctx, txHash)
	if !result.Found || result.ChainID == "" {
		state.message = i18n.ChainNotFound(lang)
		return
	}

	if desc, ok := e.registry.LookupString(result.ChainID); ok {
		chainName := result.ChainName
		if chainName == "" {
			chainName = desc.ChainName
		}
		state.push(planner.Action{
			Type:        planner.ActionWalletAddChain,
			Label:       i18n.AddChainLabel(lang, desc.ChainName),
			Chain:       &desc,
			Description: i18n.AddChainDescription(lang, desc.ChainName),
		})
		state.push(planner.Action{
			Type:        planner.ActionOpenURL,
			Label:       i18n.ViewOnExplorerLabel(lang),
			URL:         result.ExplorerTxURL,
			Description: i18n.ExplorerDescription(lang),
		})
		state.message = i18n.ChainFound(lang, chainName)
		return
	}

	state.message = i18n.ChainUnsupported(lang, result.ChainName, result.ChainID, result.ExplorerTxURL)
	state.push(planner.Action{
		Type:        planner.ActionOpenURL,
		Label:       i18n.ViewOnExplorerLabel(lang),
		URL:         result.ExplorerTxURL,
		Description: i18n.ExplorerDescription(lang),
	})
}

// runGetPortfolio 处理 get_portfolio：参数缺地址时退回钱包地址，
// 两者都没有时跳过，保持模型原话。
func (e *Engine) runGetPortfolio(ctx context.Context, request planner.ToolRequest, state *turnState, walletAddress string, lang i18n.Language) {
	address := request.StringArg("address")
	if address == "" {
		address = walletAddress
	}
	if address == "" {
		e.log.Warn("get_portfolio 没有可用地址，跳过")
		return
	}

	snapshot, err := e.portfolio.Fetch(ctx, address)
	if err != nil || snapshot == nil {
		e.log.Warn("读取资产失败", "error", err)
		state.message = i18n.PortfolioUnavailable(lang)
		return
	}

	var builder strings.Builder
	builder.WriteString(i18n.PortfolioTotal(lang, i18n.FormatUSD(snapshot.TotalUSDValue)))
	if len(snapshot.Chains) > 0 {
		builder.WriteString(i18n.PortfolioChains(lang, len(snapshot.Chains)))
	}
	if len(snapshot.Tokens) > 0 {
		builder.WriteString(i18n.PortfolioTokens(lang, len(snapshot.Tokens)))

		top := make([]portfolio.Token, len(snapshot.Tokens))
		copy(top, snapshot.Tokens)
		sort.SliceStable(top, func(i, j int) bool { return top[i].Value > top[j].Value })
		if len(top) > 5 {
			top = top[:5]
		}
		parts := make([]string, 0, len(top))
		for _, token := range top {
			parts = append(parts, fmt.Sprintf("%s ($%.2f)", token.Symbol, token.Value))
		}
		builder.WriteString(i18n.PortfolioTopAssets(lang, strings.Join(parts, ", ")))
	}
	state.message = builder.String()
}

// runExportHistory 处理 export_history：固定产出三个导出动作供用户选择周期。
// EVM 地址缺省时退回钱包地址，TRON 地址只取模型给出的值。
func (e *Engine) runExportHistory(request planner.ToolRequest, state *turnState, walletAddress string, lang i18n.Language) {
	evmAddress := walletAddress
	tronAddress := ""
	if raw, ok := request.Args["addresses"].(map[string]any); ok {
		if evm, ok := raw["evm"].(string); ok && evm != "" {
			evmAddress = evm
		}
		if tron, ok := raw["tron"].(string); ok {
			tronAddress = tron
		}
	}

	for _, period := range []string{"1week", "1month", "3months"} {
		state.push(planner.Action{
			Type:  planner.ActionExportTransactions,
			Label: i18n.ExportPeriodLabel(lang, period),
			Addresses: &planner.ExportAddresses{
				EVM:  evmAddress,
				Tron: tronAddress,
			},
			Period:      period,
			Description: "Export transaction history for " + period,
		})
	}
	state.message = i18n.ExportPrompt(lang)
}

// runRecommendDApps 处理 recommend_dapps：内置清单纯函数筛选，
// 每条推荐生成一个 recommend_dapp 动作，文案按回复语言选定。
func (e *Engine) runRecommendDApps(request planner.ToolRequest, state *turnState, lang i18n.Language) {
	intent := request.StringArg("intent")
	if intent == "" {
		intent = "general"
	}
	riskTolerance := request.StringArg("risk_tolerance")
	if riskTolerance == "" {
		riskTolerance = "low"
	}
	var chainFilter []string
	if raw, ok := request.Args["chains"].([]any); ok {
		for _, item := range raw {
			if name, ok := item.(string); ok {
				chainFilter = append(chainFilter, name)
			}
		}
	}

	recommendations := e.recommend(dapps.Intent{
		Type:          intent,
		RiskTolerance: riskTolerance,
		Chains:        chainFilter,
	})
	e.log.Info("DApp 推荐", "intent", intent, "count", len(recommendations))

	if len(recommendations) == 0 {
		state.message = i18n.RecommendEmpty(lang)
		return
	}

	for _, dapp := range recommendations {
		description := i18n.Pick(lang, dapp.Description.EN, dapp.Description.ZH)
		bestFor := dapp.BestFor.EN
		if lang == i18n.Chinese {
			bestFor = dapp.BestFor.ZH
		}
		state.push(planner.Action{
			Type:  planner.ActionRecommendDApp,
			Label: i18n.OpenDAppLabel(lang, dapp.Name),
			DApp: &planner.DAppInfo{
				ID:          dapp.ID,
				Name:        dapp.Name,
				Category:    dapp.Category,
				Description: description,
				Features:    dapp.Features,
				URL:         dapp.URL,
				Risks:       i18n.Pick(lang, dapp.Risks.EN, dapp.Risks.ZH),
				BestFor:     bestFor,
			},
			Description: description,
		})
	}
	state.message = i18n.RecommendIntro(lang, i18n.CategoryName(lang, intent))
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// kbBodyLimit 是单篇文章摘要的最大字符数。
const kbBodyLimit = 300

// runSearchKB 处理 search_kb：最多引用三篇文章，正文去掉 HTML 标签后截断。
// 搜索无结果时只在模型没有给出任何话术的情况下才补充兜底文案，
// 避免覆盖前面工具已经生成的回复。
func (e *Engine) runSearchKB(ctx context.Context, request planner.ToolRequest, state *turnState, lang i18n.Language) {
	query := request.StringArg("query")
	if query == "" {
		e.log.Warn("search_kb 缺少 query 参数")
		return
	}

	result := e.kb.Search(ctx, query, lang.ZendeskLocale())
	if !result.Found || len(result.Articles) == 0 {
		if state.message == "" {
			state.message = i18n.KBEmpty(lang)
		}
		return
	}

	articles := result.Articles
	if len(articles) > 3 {
		articles = articles[:3]
	}

	summaries := make([]string, 0, len(articles))
	for _, article := range articles {
		body := strings.TrimSpace(htmlTagPattern.ReplaceAllString(article.Body, ""))
		if len([]rune(body)) > kbBodyLimit {
			body = string([]rune(body)[:kbBodyLimit])
		}
		summaries = append(summaries, fmt.Sprintf("**%s**\n%s...\n%s", article.Title, body, article.HTMLURL))

		state.push(planner.Action{
			Type:        planner.ActionOpenURL,
			Label:       i18n.KBViewLabel(lang, article.Title),
			URL:         article.HTMLURL,
			Description: article.Title,
		})
	}

	state.message = strings.Join(summaries, "\n\n") + "\n\n" + i18n.KBFooter(lang)
}
