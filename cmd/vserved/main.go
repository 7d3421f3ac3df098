package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/vserve-support/server/internal/agent/dialogue"
	agentmodel "github.com/vserve-support/server/internal/agent/model"
	"github.com/vserve-support/server/internal/agent/nodes"
	"github.com/vserve-support/server/internal/agent/repo"
	"github.com/vserve-support/server/internal/config"
	"github.com/vserve-support/server/internal/core"
	"github.com/vserve-support/server/internal/knowledge"
	"github.com/vserve-support/server/internal/repository"
	"github.com/vserve-support/server/internal/repository/memory"
	"github.com/vserve-support/server/internal/repository/postgres"
	"github.com/vserve-support/server/internal/router"
	"github.com/vserve-support/server/internal/sweeper"
	logx "github.com/vserve-support/server/pkg/logger"
	pkgredis "github.com/vserve-support/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Server config.Server
	Auth   config.Auth
	DB     config.Database
	Sweep  config.Sweep

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Response     agentmodel.ResponseModelConfig
	Description  agentmodel.DescriptionModelConfig
	Prompt       agentmodel.SupportPromptConfig
	Conversation agentmodel.ConversationConfig

	Knowledge knowledge.Config
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Server.Env)})
	l := logx.Logger()

	// Conversation state store: redis when configured, in-memory otherwise.
	var states agentmodel.ConversationStore
	if cfg.Redis.URL != "" {
		ttl, err := time.ParseDuration(cfg.Conversation.TTL)
		if err != nil {
			l.Fatal().Err(err).Str("ttl", cfg.Conversation.TTL).Msg("invalid CONVERSATION_TTL")
		}
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("failed to initialise redis client")
		}
		defer rdb.Close()
		states = repo.NewRedisConversationStore(rdb, ttl)
		l.Info().Msg("using redis conversation store")
	} else {
		states = repo.NewMemoryConversationStore()
		l.Warn().Msg("using in-memory conversation store; state is lost on restart")
	}

	// Ticket and profile stores: postgres when configured, in-memory otherwise.
	var tickets repository.TicketRepository
	var profiles repository.ProfileRepository
	if cfg.DB.DSN != "" {
		pool, err := pgxpool.New(ctx, cfg.DB.DSN)
		if err != nil {
			l.Fatal().Err(err).Msg("db connect failed")
		}
		defer pool.Close()
		tickets = postgres.NewTicketRepo(pool)
		profiles = postgres.NewProfileRepo(pool)
	} else {
		tickets = memory.NewTicketRepo()
		profiles = memory.NewProfileRepo()
		l.Warn().Msg("using in-memory ticket and profile stores; contents are lost on restart")
	}

	finder, err := cfg.Knowledge.Load()
	if err != nil {
		l.Fatal().Err(err).Msg("failed to load knowledge base")
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		RespConfig: &cfg.Response,
		DescConfig: &cfg.Description,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("failed to create chat models")
	}

	descTimeout, err := time.ParseDuration(cfg.Description.Timeout)
	if err != nil {
		l.Fatal().Err(err).Str("timeout", cfg.Description.Timeout).Msg("invalid DESCRIPTION_TIMEOUT")
	}

	engine := dialogue.NewEngine(
		cms.Response, cms.Description,
		states, profiles, tickets, finder,
		dialogue.Config{
			Prompt:             cfg.Prompt,
			Conversation:       cfg.Conversation,
			DescriptionTimeout: descTimeout,
		},
	)

	// Expiry sweep runs outside the request path.
	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	sw := sweeper.New(tickets, l)
	go func() {
		if err := sw.Start(sweepCtx, cfg.Sweep.Schedule); err != nil && sweepCtx.Err() == nil {
			l.Error().Err(err).Msg("sweeper exited")
		}
	}()

	r := router.New(l, engine, tickets, cfg.Server, cfg.Auth)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelSweep()
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	l.Info().Msg("shutdown complete")
}
