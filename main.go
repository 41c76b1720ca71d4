package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/ticketboard/internal/config"
	"github.com/msomdec/ticketboard/internal/domain"
	"github.com/msomdec/ticketboard/internal/handler"
	"github.com/msomdec/ticketboard/internal/i18n"
	"github.com/msomdec/ticketboard/internal/queue"
	"github.com/msomdec/ticketboard/internal/repository/sqlite"
	"github.com/msomdec/ticketboard/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	reservationQueue, err := openQueue(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to configure reservation queue", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(db.Users(), cfg.JWTSecret, cfg.BcryptCost)
	questionService := service.NewQuestionService(db.Questions(), db.Answers())
	answerService := service.NewAnswerService(db.Answers(), db.Questions())
	voteService := service.NewVoteService(db.Questions(), db.Answers())
	reservationService := service.NewReservationService(reservationQueue, cfg.DispatchTimeout)
	ticketService := service.NewTicketService(db.Tickets(), db.Purchases())

	// Import the ticket catalog (idempotent by name).
	if cfg.TicketCatalog != "" {
		if err := importCatalog(context.Background(), ticketService, cfg.TicketCatalog); err != nil {
			slog.Error("failed to import ticket catalog", "path", cfg.TicketCatalog, "error", err)
			os.Exit(1)
		}
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Deps{
		DB:           db,
		Auth:         authService,
		Questions:    questionService,
		Answers:      answerService,
		Votes:        voteService,
		Reservations: reservationService,
		Tickets:      ticketService,
		Translator:   i18n.New(cfg.DefaultLocale),
		CookieSecure: cfg.CookieSecure,
		// 5 login attempts per minute per address; 1 reservation per 2s per user with bursts of 5.
		LoginLimiter:       service.NewTokenBucket(5.0/60, 5),
		ReservationLimiter: service.NewTokenBucket(0.5, 5),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func openQueue(ctx context.Context, cfg *config.Config) (domain.MessageQueue, error) {
	if cfg.SQSQueueURL == "" {
		slog.Warn("SQS_QUEUE_URL not set; reservations are kept in memory and never processed")
		return queue.NewMemory(), nil
	}
	q, err := queue.DialSQS(ctx, cfg.AWSRegion, cfg.SQSQueueURL, cfg.SQSMessageGroupID)
	if err != nil {
		return nil, err
	}
	slog.Info("reservation queue configured", "queue_url", cfg.SQSQueueURL)
	return q, nil
}

func importCatalog(ctx context.Context, tickets *service.TicketService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := tickets.ImportCatalog(ctx, f)
	if err != nil {
		return err
	}
	slog.Info("ticket catalog imported", "path", path, "created", n)
	return nil
}
