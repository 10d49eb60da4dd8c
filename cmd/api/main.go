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

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/suicart/escrow-backend/internal/api"
	"github.com/suicart/escrow-backend/internal/chain"
	"github.com/suicart/escrow-backend/internal/config"
	"github.com/suicart/escrow-backend/internal/db"
	"github.com/suicart/escrow-backend/internal/logger"
	repo "github.com/suicart/escrow-backend/internal/repository"
	"github.com/suicart/escrow-backend/internal/repository/postgres"
	"github.com/suicart/escrow-backend/internal/repository/sqlite"
	"github.com/suicart/escrow-backend/internal/services"
	"github.com/suicart/escrow-backend/internal/worker"
)

type stores struct {
	transactions repo.Transactions
	profiles     repo.Profiles
	auditLogs    repo.AuditLogs
	close        func()
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Error("db connect", "driver", cfg.Database.Driver, "err", err)
		os.Exit(1)
	}
	defer st.close()

	client, err := chain.NewClient(ctx, cfg.Chain)
	if err != nil {
		log.Error("chain client", "err", err)
		os.Exit(1)
	}
	defer client.Close()

	wp := worker.NewPool(4)
	defer wp.Stop()

	profileSvc := services.NewProfileService(st.profiles, log)
	txnSvc := services.NewTransactionService(st.transactions, st.auditLogs, profileSvc, wp, log)
	escrowSvc := services.NewEscrowService(chain.NewBuilder(cfg.Chain, log), client, log)

	r := api.NewRouter(api.RouterDeps{
		Cfg:       cfg,
		Log:       log,
		TxnSvc:    txnSvc,
		ProfSvc:   profileSvc,
		EscrowSvc: escrowSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           otelhttp.NewHandler(r, "escrow-backend"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting",
			"port", cfg.HTTPPort,
			"env", cfg.Env,
			"db", cfg.Database.Driver,
			"network", cfg.Chain.Network,
			"demo", cfg.Chain.DemoMode(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (stores, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		gdb, err := db.OpenSQLite(cfg.Database.SQLitePath)
		if err != nil {
			return stores{}, err
		}
		if err := sqlite.AutoMigrate(gdb); err != nil {
			return stores{}, fmt.Errorf("automigrate: %w", err)
		}
		repos := sqlite.NewRepositories(gdb)
		return stores{
			transactions: repos.Transactions,
			profiles:     repos.Profiles,
			auditLogs:    repos.AuditLogs,
			close: func() {
				if sqlDB, err := gdb.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	default:
		pool, err := db.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			return stores{}, err
		}
		if cfg.Database.Migrate {
			if err := db.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return stores{}, fmt.Errorf("migrations: %w", err)
			}
		} else {
			log.Debug("APP_MIGRATE not set, skipping migrations")
		}
		repos := postgres.NewRepositories(pool)
		return stores{
			transactions: repos.Transactions,
			profiles:     repos.Profiles,
			auditLogs:    repos.AuditLogs,
			close:        pool.Close,
		}, nil
	}
}
