package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	eidhandler "eidreader/internal/eid/handler"
	eidmetrics "eidreader/internal/eid/metrics"
	eidservice "eidreader/internal/eid/service"
	"eidreader/internal/evidence/providers"
	"eidreader/internal/evidence/providers/eidcard"
	"eidreader/internal/platform/config"
	"eidreader/internal/platform/httpserver"
	"eidreader/internal/platform/logger"
	"eidreader/internal/platform/metrics"
	httptransport "eidreader/internal/transport/http"
	"eidreader/pkg/platform/audit/publisher"
	"eidreader/pkg/platform/audit/store/logsink"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Extraction logic lives in internal/eid.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	auditPublisher := publisher.NewPublisher(logsink.New(log), publisher.WithAsyncBuffer(256))
	defer auditPublisher.Close()

	registry := providers.NewProviderRegistry()
	if err := registry.Register(eidcard.New("eid-card")); err != nil {
		return err
	}

	svc := eidservice.New(
		eidservice.WithLogger(log),
		eidservice.WithMetrics(eidmetrics.New()),
		eidservice.WithAuditPublisher(auditPublisher),
		eidservice.WithRegulatedMode(cfg.RegulatedMode),
	)
	eid := eidhandler.New(svc, registry, log,
		eidhandler.WithRegulatedMode(cfg.RegulatedMode),
		eidhandler.WithMaxDropBytes(cfg.MaxDropBytes),
	)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:  log,
		Metrics: metrics.New(),
		Health:  registry,
	}, eid)
	srv := httpserver.New(cfg, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting eid-reader", "addr", cfg.Addr, "regulated_mode", cfg.RegulatedMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down eid-reader")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
