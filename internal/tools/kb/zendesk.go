// Package kb 对接 Zendesk 帮助中心的文章搜索，带跨语言回退和标题去重。
package kb

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"Wallet-Copilot/pkg/logger"
)

const (
	defaultBaseURL = "https://consenlabs.zendesk.com"
	perPage        = "5"
)

// Article 是一篇知识库文章。
type Article struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
	Locale  string `json:"locale"`
}

// SearchResult 是一次搜索的结果。
type SearchResult struct {
	Found    bool      `json:"found"`
	Articles []Article `json:"articles"`
	Query    string    `json:"query"`
}

// Config 描述 Searcher 的构造参数。
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Cache      Cache
}

// Searcher 执行知识库搜索。
type Searcher struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      Cache
	log        *slog.Logger
}

// NewSearcher 创建搜索器。cache 为 nil 时不做缓存。
func NewSearcher(cfg Config) *Searcher {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Searcher{
		apiKey:     cfg.APIKey,
		baseURL:    base,
		httpClient: client,
		cache:      cfg.Cache,
		log:        logger.Named("kb"),
	}
}

// alternateLocale 在中英文两个 locale 之间互换。
func alternateLocale(locale string) string {
	if locale == "zh-cn" {
		return "en-us"
	}
	return "zh-cn"
}

// Search 先查主 locale，无结果时回退到另一个 locale，返回前按标题去重。
// 未配置 API Key 时直接返回未命中，不发起任何网络调用。
func (s *Searcher) Search(ctx context.Context, query, locale string) SearchResult {
	if s.apiKey == "" {
		s.log.Warn("未配置 Zendesk API Key，跳过知识库搜索")
		return SearchResult{Found: false, Articles: []Article{}, Query: query}
	}

	if cached, ok := s.fromCache(ctx, query, locale); ok {
		return cached
	}

	primary := s.searchByLocale(ctx, query, locale)
	if primary.Found && len(primary.Articles) > 0 {
		primary.Articles = Deduplicate(primary.Articles)
		s.toCache(ctx, query, locale, primary)
		return primary
	}

	alternate := alternateLocale(locale)
	s.log.Info("主 locale 无结果，回退", "primary", locale, "alternate", alternate)
	fallback := s.searchByLocale(ctx, query, alternate)
	fallback.Articles = Deduplicate(fallback.Articles)
	s.toCache(ctx, query, locale, fallback)
	return fallback
}

// searchByLocale 查询单个 locale，任何失败都按无结果处理。
func (s *Searcher) searchByLocale(ctx context.Context, query, locale string) SearchResult {
	empty := SearchResult{Found: false, Articles: []Article{}, Query: query}

	params := url.Values{}
	params.Set("query", query)
	params.Set("locale", locale)
	params.Set("per_page", perPage)
	endpoint := s.baseURL + "/api/v2/help_center/articles/search?" + params.Encode()
	s.log.Info("搜索 Zendesk", "locale", locale, "query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return empty
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Warn("Zendesk 请求失败", "error", err)
		return empty
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.log.Warn("Zendesk 返回非 200", "status", resp.StatusCode)
		return empty
	}

	var decoded struct {
		Results []struct {
			ID      int64  `json:"id"`
			Title   string `json:"title"`
			Body    string `json:"body"`
			Snippet string `json:"snippet"`
			HTMLURL string `json:"html_url"`
			Locale  string `json:"locale"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		s.log.Warn("解析 Zendesk 响应失败", "error", err)
		return empty
	}
	if len(decoded.Results) == 0 {
		s.log.Info("Zendesk 无结果", "locale", locale)
		return empty
	}

	articles := make([]Article, 0, len(decoded.Results))
	for _, item := range decoded.Results {
		body := item.Body
		if body == "" {
			body = item.Snippet
		}
		articles = append(articles, Article{
			ID:      item.ID,
			Title:   item.Title,
			Body:    body,
			HTMLURL: item.HTMLURL,
			Locale:  item.Locale,
		})
	}
	return SearchResult{Found: true, Articles: articles, Query: query}
}
