package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ayanpandit/PrepTera/internal/config"
	"github.com/ayanpandit/PrepTera/internal/handler"
	"github.com/ayanpandit/PrepTera/internal/model/catalog"
	"github.com/ayanpandit/PrepTera/internal/model/interview"
	"github.com/ayanpandit/PrepTera/internal/service/ai"
	interviewService "github.com/ayanpandit/PrepTera/internal/service/interview"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if !cfg.AI.Enabled() {
		log.Fatalf("missing credentials for AI provider %q, check your environment variables", cfg.AI.Provider)
	}

	chatModel, err := ai.NewChatModel(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize %s chat model: %v", cfg.AI.Provider, err)
	}
	log.Printf("AI provider %s initialized successfully", cfg.AI.Provider)

	questions, err := ai.NewQuestionGenerator(ctx, chatModel, cfg.Interview.QuestionCount, cfg.Interview.QuestionParams)
	if err != nil {
		log.Fatalf("failed to initialize question generator: %v", err)
	}
	feedback, err := ai.NewFeedbackGenerator(ctx, chatModel, cfg.Interview.FeedbackParams)
	if err != nil {
		log.Fatalf("failed to initialize feedback generator: %v", err)
	}

	svc := interviewService.NewService(questions, feedback, interviewService.Options{
		Store:        interview.NewMemoryStore(),
		CleanupDelay: cfg.Interview.CleanupDelay,
	})
	defer svc.Close()

	router := handler.NewRouter(cfg.Server, svc, catalog.Default())

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("PrepTera backend listening on %s (%s)", addr, serverCfg.Environment)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
