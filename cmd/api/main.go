package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-intel/internal/api/http"
	"github.com/spec-kit/ticket-intel/internal/api/http/handlers"
	"github.com/spec-kit/ticket-intel/internal/config"
	"github.com/spec-kit/ticket-intel/internal/events"
	"github.com/spec-kit/ticket-intel/internal/notify"
	"github.com/spec-kit/ticket-intel/internal/observability"
	"github.com/spec-kit/ticket-intel/internal/oracle"
	"github.com/spec-kit/ticket-intel/internal/repository"
	"github.com/spec-kit/ticket-intel/internal/seed"
	"github.com/spec-kit/ticket-intel/internal/service"
	"github.com/spec-kit/ticket-intel/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	oracleClient := oracle.Instrument(newOracleClient(cfg.Oracle, logger), metrics)

	corpus := repository.NewTicketCorpus()
	if cfg.Seed.TicketCount > 0 {
		corpus.Add(seed.GenerateTickets(cfg.Seed.TicketCount)...)
		logger.Info("corpus seeded", zap.Int("tickets", corpus.Len()))
	}

	dispatcher := events.NewInMemoryDispatcher()

	classifier := service.NewClassifier(service.ClassifierDependencies{
		Oracle:     oracleClient,
		Corpus:     corpus,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	insights := service.NewInsights(service.InsightsDependencies{
		Oracle:     oracleClient,
		Corpus:     corpus,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	replyCache := service.NewReplyCache(classifier, corpus)
	dashboard := service.NewDashboard(insights, logger)

	if cfg.Notify.SlackBotToken != "" && cfg.Notify.SlackAlertChannel != "" {
		notifier := notify.NewSlackNotifier(cfg.Notify.SlackBotToken, cfg.Notify.SlackAlertChannel, logger)
		notifier.Register(dispatcher)
		logger.Info("slack alert delivery enabled", zap.String("channel", cfg.Notify.SlackAlertChannel))
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, corpus),
		Analyze:  handlers.NewAnalyzeHandler(classifier),
		Tickets:  handlers.NewTicketsHandler(corpus, replyCache),
		Insights: handlers.NewInsightsHandler(dashboard),
	})

	// warm the global view so the first dashboard read is not empty
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		dashboard.RefreshGlobal(ctx)
	}()

	refreshCron, err := worker.StartRefreshWorker(cfg.Worker.RefreshCron, dashboard, logger)
	if err != nil {
		logger.Fatal("failed to start refresh worker", zap.Error(err))
	}

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	refreshCron.Stop()
	_ = app.Shutdown()
}

// newOracleClient selects the provider adapter. Load already rejected
// unknown providers and missing credentials.
func newOracleClient(cfg config.OracleConfig, logger *zap.Logger) oracle.Client {
	if cfg.Provider == "openai" {
		return oracle.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model, logger)
	}
	return oracle.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.Model, logger)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
