package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wicara-cloud/wicara/internal/config"
	dbRedis "github.com/wicara-cloud/wicara/internal/db/redis"
	"github.com/wicara-cloud/wicara/internal/domain/search/result"
	"github.com/wicara-cloud/wicara/internal/lexicon"
	logpkg "github.com/wicara-cloud/wicara/internal/logger"
	"github.com/wicara-cloud/wicara/internal/metrics"
	knowledgerepo "github.com/wicara-cloud/wicara/internal/repository/knowledge"
	chiTransport "github.com/wicara-cloud/wicara/internal/transport/chi"
	"github.com/wicara-cloud/wicara/internal/transport/groq"
	chatuc "github.com/wicara-cloud/wicara/internal/usecase/chat"
	healthuc "github.com/wicara-cloud/wicara/internal/usecase/health"
	knowledgeuc "github.com/wicara-cloud/wicara/internal/usecase/knowledge"
	searchuc "github.com/wicara-cloud/wicara/internal/usecase/search"
	"github.com/wicara-cloud/wicara/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting wicara API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("llm_model", cfg.LLM.Model),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register domain metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	metrics.RegisterLLMMetrics()

	// Completion provider with API-key rotation
	completer, err := groq.NewClient(&groq.Config{
		APIKeys:     cfg.LLM.APIKeys,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		TopP:        cfg.LLM.TopP,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("Failed to create completion client", zap.Error(err))
	}
	logger.Info("Completion client created",
		zap.String("model", cfg.LLM.Model),
		zap.Int("api_keys", len(cfg.LLM.APIKeys)),
	)

	// Repository and use case services
	repo := knowledgerepo.New(store, cfg.Storage.KeyPrefix)
	lex := lexicon.Default()

	searchSvc := searchuc.New(repo, lex, searchuc.Config{
		MaxIterations:   cfg.Engine.MaxIterations,
		ConfidentScore:  cfg.Engine.MinConfidenceScore,
		AcceptableScore: cfg.Engine.MinAcceptableScore,
		TopK:            cfg.Engine.TopK,
		Debug:           cfg.Engine.Debug,
		Weights: result.Weights{
			Keyword: cfg.Engine.Weights.Keyword,
			Exact:   cfg.Engine.Weights.Exact,
			Entity:  cfg.Engine.Weights.Entity,
			Context: cfg.Engine.Weights.Context,
		},
	}, logger)

	knowledgeSvc := knowledgeuc.New(repo)
	chatSvc := chatuc.New(searchSvc, completer, chatuc.Config{
		SystemPrompt: cfg.LLM.SystemPrompt,
		HistoryLimit: cfg.LLM.HistoryLimit,
	}, logger)
	healthSvc := healthuc.New(store, completer)

	// Create chi server
	server := chiTransport.NewServer(chatSvc, searchSvc, knowledgeSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
