package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Real-Lux/Farm-App-sub001/internal/config"
	"github.com/Real-Lux/Farm-App-sub001/internal/repository/mongodb"
	"github.com/Real-Lux/Farm-App-sub001/internal/repository/sheets"
	"github.com/Real-Lux/Farm-App-sub001/internal/scheduler"
	"github.com/Real-Lux/Farm-App-sub001/internal/server/handlers"
	"github.com/Real-Lux/Farm-App-sub001/internal/server/router"
	catalogsvc "github.com/Real-Lux/Farm-App-sub001/internal/service/catalog"
	ordersvc "github.com/Real-Lux/Farm-App-sub001/internal/service/orders"
	"github.com/Real-Lux/Farm-App-sub001/pkg/clients/notify"
	"github.com/Real-Lux/Farm-App-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var ledger sheets.Ledger
	if cfg.LedgerEnabled() {
		ledger, err = sheets.NewGoogleSheetLedger(context.Background(), cfg.Ledger, baseLogger.Named("repo.ledger"))
		if err != nil {
			baseLogger.Fatal("failed to init order ledger", zap.Error(err))
		}
		baseLogger.Info("order ledger export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, order ledger export disabled")
	}

	var notifier notify.Client
	if cfg.NotifyEnabled() {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("webhook notifications enabled")
	} else {
		baseLogger.Warn("webhook url missing, notifications disabled")
	}

	catalogService := catalogsvc.NewService(mongoRepo, baseLogger.Named("svc.catalog"))
	orderService := ordersvc.NewService(mongoRepo, ledger, notifier, baseLogger.Named("svc.orders"))

	suggestionHandler := handlers.NewSuggestionHandler(catalogService, baseLogger.Named("handlers.suggestions"))
	orderHandler := handlers.NewOrderHandler(orderService, baseLogger.Named("handlers.orders"))
	engine := router.New(suggestionHandler, orderHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reminders, mongoRepo, notifier, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
