package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"Wallet-Copilot/internal/api"
	"Wallet-Copilot/internal/chains"
	"Wallet-Copilot/internal/config"
	"Wallet-Copilot/internal/engine"
	xerrors "Wallet-Copilot/internal/errors"
	"Wallet-Copilot/internal/llm"
	"Wallet-Copilot/internal/llm/openai"
	"Wallet-Copilot/internal/tools/chaindetect"
	"Wallet-Copilot/internal/tools/history"
	"Wallet-Copilot/internal/tools/kb"
	"Wallet-Copilot/internal/tools/portfolio"
	"Wallet-Copilot/pkg/logger"
)

// main 是 Copilot 守护进程的入口。
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("copilotd 运行失败: %v", err)
	}
}

func run(ctx context.Context) error {
	configPath := os.Getenv("COPILOT_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("configs", "copilot.json")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Outputs: cfg.Log.Outputs,
		Audit: logger.AuditConfig{
			Enabled: cfg.Log.Audit,
			Path:    cfg.Log.Path,
		},
	}); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	plannerClient, err := createLLMClient(cfg)
	if err != nil {
		return err
	}

	registry := chains.NewRegistry()
	if cfg.Chains.OverlayPath != "" {
		overlay, err := chains.LoadOverlay(cfg.Chains.OverlayPath)
		if err != nil {
			return err
		}
		registry = registry.Apply(overlay)
	}

	var kbCache kb.Cache
	switch cfg.Cache.Driver {
	case "", "none":
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Address,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return xerrors.Wrap(xerrors.CodeInitializationFailure, err, "连接 Redis 失败")
		}
		defer client.Close()
		kbCache = kb.NewRedisCache(client, time.Duration(cfg.Cache.Redis.TTLSeconds)*time.Second)
	default:
		return fmt.Errorf("未知的缓存驱动: %s", cfg.Cache.Driver)
	}

	detector := chaindetect.NewResolver(chaindetect.Config{
		EtherscanAPIKey: cfg.Providers.Etherscan.APIKey,
		ChainbaseAPIKey: cfg.Providers.Chainbase.APIKey,
		Registry:        registry,
	})
	portfolioReader := portfolio.NewReader(portfolio.Config{
		APIKey: cfg.Providers.DeBank.APIKey,
	})
	kbSearcher := kb.NewSearcher(kb.Config{
		APIKey:  cfg.Providers.Zendesk.APIKey,
		BaseURL: cfg.Providers.Zendesk.BaseURL,
		Cache:   kbCache,
	})
	historyFetcher := history.NewFetcher(history.Config{
		DeBankAPIKey:   cfg.Providers.DeBank.APIKey,
		TronscanAPIKey: cfg.Providers.Tronscan.APIKey,
	})

	eng := engine.New(engine.Config{
		Detector:  detector,
		Portfolio: portfolioReader,
		KB:        kbSearcher,
		Registry:  registry,
	}, logger.Named("engine"))

	server := api.NewServer(cfg.Server.Address, plannerClient, eng, historyFetcher, cfg.RequestTimeout())

	logger.L().Info("copilotd 启动", "address", cfg.Server.Address)
	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func createLLMClient(cfg *config.Config) (llm.Client, error) {
	switch cfg.LLM.Provider {
	case "", "openai":
		if cfg.LLM.OpenAI.APIKey == "" {
			return nil, xerrors.New(xerrors.CodeInitializationFailure, "OpenAI provider 需要配置 api_key 或 OPENAI_API_KEY")
		}
		return openai.NewClient(openai.Config{
			APIKey:  cfg.LLM.OpenAI.APIKey,
			BaseURL: cfg.LLM.OpenAI.BaseURL,
			Model:   cfg.LLM.OpenAI.Model,
			Timeout: time.Duration(cfg.LLM.OpenAI.TimeoutSeconds) * time.Second,
		})
	default:
		return nil, fmt.Errorf("未知的大模型 provider: %s", cfg.LLM.Provider)
	}
}
