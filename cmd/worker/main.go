// Command worker is the composition root for the resonate core
// background process: it wires the relational store, cache, vector
// store, and model adapters into the profile-rebuild (RPB) and
// conversation-health (CHM) services, driven by a cron+asynq
// scheduler (spec.md §5, §6). ERS and DFRE are request-path services
// invoked through the RPC layer, not background jobs, so they have no
// wiring here; they are exercised by their own package tests.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/resonate/core/internal/application/cache"
	"github.com/resonate/core/internal/application/repository"
	"github.com/resonate/core/internal/application/service/chm"
	"github.com/resonate/core/internal/application/service/rpb"
	"github.com/resonate/core/internal/application/vectorstore"
	"github.com/resonate/core/internal/config"
	"github.com/resonate/core/internal/logger"
	"github.com/resonate/core/internal/models/completion"
	"github.com/resonate/core/internal/models/embedding"
	"github.com/resonate/core/internal/ratelimit"
	"github.com/resonate/core/internal/scheduler"
	"github.com/resonate/core/internal/types/interfaces"
)

func main() {
	container := dig.New()

	providers := []any{
		loadConfig,
		newDB,
		newRedisClient,
		newRedisCache,
		newQdrantClient,
		newVectorStore,
		newEmbedder,
		newCompleter,
		repository.NewUserRepository,
		repository.NewProfileRepository,
		repository.NewEventRepository,
		repository.NewMessageRepository,
		repository.NewMatchRepository,
		repository.NewConversationRepository,
		newRPB,
		newCHM,
		newScheduler,
	}
	for _, p := range providers {
		if err := container.Provide(p); err != nil {
			fmt.Fprintf(os.Stderr, "worker: provide: %v\n", err)
			os.Exit(1)
		}
	}

	if err := container.Invoke(run); err != nil {
		fmt.Fprintf(os.Stderr, "worker: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(os.Getenv("RESONATE_CONFIG_PATH"))
}

func newDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("worker: open db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("worker: db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	return db, nil
}

func newRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func newRedisCache(client *redis.Client) *cache.RedisCache {
	return cache.NewRedisCache(client)
}

func newQdrantClient(cfg *config.Config) (*qdrant.Client, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Qdrant.Host,
		Port:   cfg.Qdrant.Port,
		APIKey: cfg.Qdrant.APIKey,
		UseTLS: cfg.Qdrant.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("worker: qdrant client: %w", err)
	}
	return client, nil
}

func newVectorStore(cfg *config.Config, client *qdrant.Client) *vectorstore.QdrantVectorStore {
	return vectorstore.NewQdrantVectorStore(client, cfg.Qdrant.CollectionName, cfg.Qdrant.VectorSize)
}

func newEmbedder(cfg *config.Config) interfaces.Embedder {
	limiter := ratelimit.New(cfg.RateLimit.WindowSeconds, cfg.RateLimit.MaxCalls)
	return embedding.NewOpenAIEmbedder(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.EmbeddingModel, cfg.OpenAI.EmbeddingDims, limiter)
}

func newCompleter(cfg *config.Config) interfaces.Completer {
	limiter := ratelimit.New(cfg.RateLimit.WindowSeconds, cfg.RateLimit.MaxCalls)
	return completion.NewOpenAICompleter(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.CompletionModel, limiter)
}

func newRPB(users interfaces.UserRepository, events interfaces.EventRepository, messages interfaces.MessageRepository,
	profiles interfaces.ProfileRepository, vectors *vectorstore.QdrantVectorStore, embedder interfaces.Embedder, c *cache.RedisCache) *rpb.Service {
	return rpb.New(users, events, messages, profiles, vectors, embedder, c)
}

func newCHM(conversations interfaces.ConversationRepository, messages interfaces.MessageRepository,
	matches interfaces.MatchRepository, profiles interfaces.ProfileRepository, completer interfaces.Completer) *chm.Service {
	return chm.New(conversations, messages, matches, profiles, completer)
}

func newScheduler(cfg *config.Config) *scheduler.Scheduler {
	return scheduler.New(asynq.RedisClientOpt{Addr: cfg.Scheduler.RedisAddr})
}

func run(cfg *config.Config, sched *scheduler.Scheduler, rpbSvc *rpb.Service, chmSvc *chm.Service, vectors *vectorstore.QdrantVectorStore) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := sched.RegisterCron("daily-rebuild", cfg.Scheduler.DailyRebuildCron, func(ctx context.Context) error {
		result := rpbSvc.DailyRebuildPass(ctx)
		logger.Info(ctx, "worker: daily rebuild pass complete", "rebuilt", result.Rebuilt, "skipped", result.Skipped, "failed", result.Failed)
		if result.Failed > 0 {
			return fmt.Errorf("worker: daily rebuild pass: %d failures", result.Failed)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := sched.RegisterCron("chm-batch", cfg.Scheduler.CHMBatchCron, func(ctx context.Context) error {
		result, err := chmSvc.RunBatch(ctx)
		logger.Info(ctx, "worker: chm batch complete", "total", result.Total, "healthy", result.Healthy, "cooling", result.Cooling, "dormant", result.Dormant, "nudges", result.NudgesGenerated)
		return err
	}); err != nil {
		return err
	}

	voiceNoteHandler := &rpb.VoiceNoteUploadedHandler{Service: rpbSvc}
	if err := sched.RegisterEvent("rebuild-on-voice-note", "resonate/voice-note-uploaded", 3, func(ctx context.Context, payload []byte) error {
		return voiceNoteHandler.Handle(ctx, asynq.NewTask("resonate/voice-note-uploaded", payload))
	}); err != nil {
		return err
	}
	if err := sched.RegisterEvent("rebuild-on-bio-edit", "resonate/profile-rebuilt", 3, func(ctx context.Context, payload []byte) error {
		return handleProfileRebuilt(ctx, rpbSvc, payload)
	}); err != nil {
		return err
	}
	if err := sched.RegisterEvent("teardown-on-account-delete", "resonate/account-deleted", 2, func(ctx context.Context, payload []byte) error {
		return handleAccountDeleted(ctx, vectors, payload)
	}); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop(context.Background())

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.Scheduler.RedisAddr}, asynq.Config{Concurrency: 10})
	if err := srv.Start(sched.Mux()); err != nil {
		return fmt.Errorf("worker: asynq server: %w", err)
	}
	defer srv.Shutdown()

	logger.Info(ctx, "worker: started")
	<-ctx.Done()
	logger.Info(ctx, "worker: shutting down")
	return nil
}
