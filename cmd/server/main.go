package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"rxintake/internal/audit"
	"rxintake/internal/collaborator"
	"rxintake/internal/device"
	"rxintake/internal/draftstore"
	"rxintake/internal/identity"
	"rxintake/internal/intake"
	"rxintake/internal/lifecycle"
	"rxintake/internal/payment"
	"rxintake/internal/platform/config"
	"rxintake/internal/platform/httpserver"
	"rxintake/internal/platform/kafka"
	"rxintake/internal/platform/logger"
	"rxintake/internal/platform/metrics"
	"rxintake/internal/platform/postgres"
	"rxintake/internal/platform/redis"
	"rxintake/internal/platform/sqlite"
	httptransport "rxintake/internal/transport/http"
	"rxintake/pkg/platform/circuit"
	"rxintake/pkg/platform/middleware/session"
)

// main wires the patient-facing backend: draft store, collaborator clients,
// the four domain services and the HTTP router.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store, closeStore, err := buildDraftStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()
	drafts := draftstore.NewInstrumented(store, m)

	publisher, kafkaClient, err := buildAuditPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	if kafkaClient != nil {
		defer kafkaClient.Close()
	}

	clientOpts := func(name string) []collaborator.Option {
		return []collaborator.Option{
			collaborator.WithTimeout(cfg.Collaborator.Timeout),
			collaborator.WithBreaker(circuit.New(name,
				circuit.WithFailureThreshold(cfg.Collaborator.FailureThreshold),
				circuit.WithCooldown(cfg.Collaborator.Cooldown),
			)),
			collaborator.WithLogger(log),
			collaborator.WithMetrics(m),
		}
	}
	requestsAPI, err := collaborator.NewRequestsClient(cfg.Collaborator.RequestsBaseURL, clientOpts("requests_api")...)
	if err != nil {
		return err
	}
	identityAPI, err := collaborator.NewIdentityClient(cfg.Collaborator.IdentityBaseURL, clientOpts("identity_api")...)
	if err != nil {
		return err
	}

	identitySvc := identity.NewService(identityAPI,
		identity.WithLogger(log),
		identity.WithMetrics(m),
		identity.WithAuditPublisher(publisher),
	)
	lifecycleSvc := lifecycle.NewService(requestsAPI,
		lifecycle.WithLogger(log),
		lifecycle.WithMetrics(m),
		lifecycle.WithAuditPublisher(publisher),
	)
	intakeSvc := intake.NewService(identitySvc, requestsAPI,
		intake.WithLogger(log),
		intake.WithMetrics(m),
		intake.WithAuditPublisher(publisher),
	)
	gate := payment.NewGate(requestsAPI, requestsAPI, lifecycleSvc, identitySvc,
		payment.Config{
			ConsultationFee: cfg.Payment.ConsultationFee,
			Currency:        cfg.Payment.Currency,
		},
		payment.WithLogger(log),
		payment.WithMetrics(m),
		payment.WithAuditPublisher(publisher),
	)

	cookies := session.NewCookieStore(session.Options{
		Name:     cfg.Session.CookieName,
		MaxAge:   int(cfg.Session.MaxAge.Seconds()),
		Secure:   cfg.Session.Secure,
		HashKey:  []byte(cfg.Session.HashKey),
		BlockKey: []byte(cfg.Session.BlockKey),
	})
	handler := httptransport.New(intakeSvc, gate, lifecycleSvc, drafts, log)
	router := httptransport.NewRouter(handler, httptransport.RouterConfig{
		Logger:         log,
		Sessions:       cookies,
		SessionCookie:  cfg.Session.CookieName,
		Fingerprinter:  device.NewService(true),
		Gatherer:       reg,
		RequestTimeout: cfg.Server.RequestTimeout,
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	if kp, ok := publisher.(*audit.KafkaPublisher); ok {
		g.Go(func() error {
			if err := kp.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		log.Info("starting rxintake", "addr", cfg.Server.Addr, "draft_store", cfg.DraftStore.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("server stopped")
		return nil
	})
	return g.Wait()
}

func buildDraftStore(ctx context.Context, cfg config.Config, log *slog.Logger) (draftstore.Store, func(), error) {
	noop := func() {}
	switch cfg.DraftStore.Backend {
	case config.DraftBackendMemory:
		log.Warn("draft store is in memory; drafts are lost on restart")
		return draftstore.NewInMemory(), noop, nil
	case config.DraftBackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return draftstore.NewRedis(client.Client, cfg.DraftStore.TTL), func() { _ = client.Close() }, nil
	case config.DraftBackendPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, noop, err
		}
		return migrated(ctx, draftstore.NewPostgres(db), db)
	default:
		db, err := sqlite.Open(ctx, cfg.SQLite)
		if err != nil {
			return nil, noop, err
		}
		return migrated(ctx, draftstore.NewSQLite(db), db)
	}
}

func migrated(ctx context.Context, store *draftstore.SQLStore, db *sql.DB) (draftstore.Store, func(), error) {
	closeDB := func() { _ = db.Close() }
	if err := store.Migrate(ctx); err != nil {
		closeDB()
		return nil, func() {}, fmt.Errorf("migrate draft store: %w", err)
	}
	return store, closeDB, nil
}

// buildAuditPublisher ships audit events to Kafka when brokers are configured
// and otherwise writes them to the log.
func buildAuditPublisher(ctx context.Context, cfg config.Config, log *slog.Logger) (audit.Publisher, *kgo.Client, error) {
	fallback := audit.NewLogPublisher(log)
	client, err := kafka.New(ctx, cfg.Kafka)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return fallback, nil, nil
	}
	publisher, err := audit.NewKafkaPublisher(client, cfg.Kafka.AuditTopic,
		audit.WithFallback(fallback),
		audit.WithKafkaLogger(log),
	)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return publisher, client, nil
}
