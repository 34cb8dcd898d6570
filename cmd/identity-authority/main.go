package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"rxintake/internal/audit"
	"rxintake/internal/device"
	"rxintake/internal/identity/authority"
	"rxintake/internal/identity/authority/handler"
	jwttoken "rxintake/internal/jwt_token"
	"rxintake/internal/platform/config"
	"rxintake/internal/platform/httpserver"
	"rxintake/internal/platform/logger"
	"rxintake/internal/platform/redis"
	id "rxintake/pkg/domain"
	devicemw "rxintake/pkg/platform/middleware/device"
	"rxintake/pkg/platform/middleware/metadata"
	"rxintake/pkg/platform/middleware/request"
	"rxintake/pkg/platform/middleware/requesttime"
)

const (
	tokenIssuer   = "rxintake-identity"
	tokenAudience = "rxintake-requests"
	deviceTTL     = 90 * 24 * time.Hour
)

// main runs the reference identity resolving party. Codes are written to the
// log instead of being mailed.
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
		log.Error("identity authority stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	accounts := authority.NewInMemoryAccountStore(seedAccounts(cfg.Identity.SeedAccounts, log)...)

	var (
		devices    authority.DeviceStore    = authority.NewInMemoryDeviceStore()
		challenges authority.ChallengeStore = authority.NewInMemoryChallengeStore()
	)
	if cfg.Identity.OTPBackend == "redis" {
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		if client == nil {
			return errors.New("REDIS_URL is required for the redis OTP store")
		}
		defer client.Close()
		devices = authority.NewRedisDeviceStore(client.Client, deviceTTL)
		challenges = authority.NewRedisChallengeStore(client.Client)
	}

	svc, err := authority.New(accounts, devices, challenges,
		jwttoken.NewJWTService(cfg.Identity.JWTSigningKey, tokenIssuer, tokenAudience),
		authority.NewLogMailer(log),
		authority.WithLogger(log),
		authority.WithAuditPublisher(audit.NewLogPublisher(log)),
		authority.WithCodeTTL(cfg.Identity.OTPTTL),
		authority.WithTokenTTL(cfg.Identity.TokenTTL),
		authority.WithBcryptCost(cfg.Identity.OTPBcryptCost),
		authority.WithDeviceBinding(cfg.Identity.DeviceBinding),
	)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(log))
	r.Use(request.Logger(log))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(devicemw.Middleware(device.NewService(cfg.Identity.DeviceBinding)))
	r.Use(request.Timeout(cfg.Server.RequestTimeout))
	r.Use(request.ContentTypeJSON)
	handler.New(svc, log).Register(r)

	srv := httpserver.New(cfg.Identity.Addr, r)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting identity authority", "addr", cfg.Identity.Addr, "otp_store", cfg.Identity.OTPBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func seedAccounts(raw map[string]string, log *slog.Logger) []authority.Account {
	accounts := make([]authority.Account, 0, len(raw))
	for rawEmail, rawPatient := range raw {
		email, err := id.ParseEmail(rawEmail)
		if err != nil {
			log.Warn("skipping seed account", "error", err)
			continue
		}
		patientID, err := id.ParsePatientID(rawPatient)
		if err != nil {
			log.Warn("skipping seed account", "error", err)
			continue
		}
		accounts = append(accounts, authority.Account{Email: email, PatientID: patientID})
	}
	return accounts
}
