package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres/answerlog"
	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres/conversation"
	profilerepo "github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres/progress"
	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/provider/tts"
	"github.com/heartmarshall/lingua-assistant-backend/internal/auth"
	"github.com/heartmarshall/lingua-assistant-backend/internal/catalog"
	"github.com/heartmarshall/lingua-assistant-backend/internal/config"
	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/chat"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/profile"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/speech"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/vocab"
	"github.com/heartmarshall/lingua-assistant-backend/internal/transport/middleware"
	"github.com/heartmarshall/lingua-assistant-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	// Database
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		db := stdlib.OpenDBFromPool(pool)
		err := Migrate(ctx, db, "up", logger)
		db.Close()
		if err != nil {
			return err
		}
	}

	// Vocabulary catalog
	cat, err := catalog.LoadEmbedded(cfg.Vocab.Languages())
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	for _, lang := range cat.Languages() {
		logger.Info("catalog loaded",
			slog.String("language", lang),
			slog.String("version", cat.Version(lang)),
		)
	}

	// Repositories
	txm := postgres.NewTxManager(pool, cfg.Database.TxMaxRetries, logger)
	progressRepo := progress.New(pool)
	answerRepo := answerlog.New(pool)
	profileRepo := profilerepo.New(pool)
	conversationRepo := conversation.New(pool)

	// Upstream providers
	var llm llmClient = disabledLLM{}
	if cfg.LLM.Enabled() {
		llm = anthropic.NewClient(anthropic.Config{
			APIKey:    cfg.LLM.APIKey,
			BaseURL:   cfg.LLM.BaseURL,
			Model:     cfg.LLM.Model,
			MaxTokens: cfg.LLM.MaxTokens,
			Timeout:   cfg.LLM.Timeout,
		}, logger)
	} else {
		logger.Warn("llm api key not set, chat is disabled")
	}

	var synth synthesizer = disabledTTS{}
	if cfg.TTS.Enabled() {
		synth = tts.NewProvider(tts.Config{
			APIKey:  cfg.TTS.APIKey,
			BaseURL: cfg.TTS.BaseURL,
			Model:   cfg.TTS.Model,
			Voice:   cfg.TTS.Voice,
			Format:  cfg.TTS.Format,
			Timeout: cfg.TTS.Timeout,
		}, logger)
	} else {
		logger.Warn("tts api key not set, speech is disabled")
	}

	// Services
	languages := cat.Languages()
	vocabSvc := vocab.NewService(logger, progressRepo, answerRepo, cat, txm, domain.VocabConfig{
		DailyCount:  cfg.Vocab.DailyCount,
		WeakQuota:   cfg.Vocab.WeakQuota,
		ReviewQuota: cfg.Vocab.ReviewQuota,
		Cooldown:    cfg.Vocab.Cooldown,
	}, nil)
	profileSvc := profile.NewService(logger, profileRepo, languages)
	chatSvc := chat.NewService(logger, profileRepo, conversationRepo, llm, txm, chat.Config{
		HistoryLimit: cfg.LLM.HistoryLimit,
		Languages:    languages,
	})
	speechSvc := speech.NewService(logger, synth, cfg.TTS.MaxChars)

	// Auth
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authenticator := auth.NewAuthenticator(logger, jwtManager, cfg.Auth.AllowedUsers())

	// HTTP
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Handlers{
		Health:  rest.NewHealthHandler(pool, BuildVersion(), languages...),
		Vocab:   rest.NewVocabHandler(vocabSvc, languages[0], logger),
		Profile: rest.NewProfileHandler(profileSvc, logger),
		Chat:    rest.NewChatHandler(chatSvc, logger),
		Speech:  rest.NewSpeechHandler(speechSvc, logger),
	}, rest.RouteMiddleware{
		Auth:      middleware.Auth(authenticator),
		ChatLimit: optionalLimit(limiter, "chat", cfg.RateLimit.ChatPerMinute),
		TTSLimit:  optionalLimit(limiter, "tts", cfg.RateLimit.TTSPerMinute),
	})

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// optionalLimit returns nil for a non-positive limit.
func optionalLimit(rl *middleware.RateLimiter, scope string, perMinute int) middleware.Middleware {
	if perMinute <= 0 {
		return nil
	}
	return rl.Limit(scope, perMinute)
}

// serve runs srv until ctx is done, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}
