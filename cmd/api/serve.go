package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadp "p2p-lending-ledger/internal/adapter/http"
	kycadp "p2p-lending-ledger/internal/adapter/kyc"
	mw "p2p-lending-ledger/internal/adapter/middleware"
	"p2p-lending-ledger/internal/adapter/repository/mysql"
	"p2p-lending-ledger/internal/infrastructure/metrics"
	"p2p-lending-ledger/internal/usecase/application"
	"p2p-lending-ledger/internal/usecase/contract"
	"p2p-lending-ledger/internal/usecase/creditscore"
	"p2p-lending-ledger/internal/usecase/disbursement"
	"p2p-lending-ledger/internal/usecase/ledger"
	"p2p-lending-ledger/internal/usecase/overdue"
	"p2p-lending-ledger/internal/usecase/repayment"
	"p2p-lending-ledger/internal/usecase/review"
)

const shutdownGrace = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serves the lending API. When OVERDUE_SWEEP_INTERVAL_SECONDS is positive the
overdue marker also runs in-process on that interval.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(needs{db: true, redis: true})
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	tx := mysql.NewGormUoW(a.db)
	scores := creditscore.NewUsecase(tx, a.log)
	sweeper := overdue.NewUsecase(mysql.NewScheduleRepository(a.db), a.log, rec)

	h := httpadp.Handlers{
		Health: httpadp.NewHandler(
			httpadp.Check{Name: "mysql", Ping: func(ctx context.Context) error {
				sqlDB, err := a.db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}},
			httpadp.Check{Name: "redis", Ping: func(ctx context.Context) error { return a.rdb.Ping(ctx).Err() }},
		),
		Calculator: httpadp.NewCalculatorHandler(),
		Wallets:    httpadp.NewWalletHandler(ledger.NewUsecase(tx, a.log)),
		Applications: httpadp.NewApplicationHandler(
			application.NewUsecase(tx, kycadp.NewRedisStore(a.rdb), a.log),
			review.NewUsecase(tx, a.log),
			disbursement.NewUsecase(tx, a.log, rec, a.cfg.PlatformWalletUserID),
		),
		Contracts: httpadp.NewContractHandler(
			contract.NewUsecase(tx),
			repayment.NewUsecase(tx, scores, a.log, rec, a.cfg.LateFeeDailyRate),
		),
		Credit:  httpadp.NewCreditHandler(scores),
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(
		echomw.Recover(),
		mw.RequestContext(a.log),
		rec.Middleware(),
		echomw.ContextTimeout(a.cfg.RequestTimeout()),
	)
	httpadp.Register(e, h, mw.Idempotency(a.rdb, a.cfg.IdempotencyTTL(), a.log))

	if iv := a.cfg.OverdueSweepInterval(); iv > 0 {
		a.log.Info("in-process overdue sweep enabled", zap.Duration("interval", iv))
		go sweeper.Run(ctx, iv, a.cfg.RequestTimeout())
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + a.cfg.AppPort
		a.log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return e.Shutdown(sctx)
}
