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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "microfinance-backoffice/internal/adapter/http"
	"microfinance-backoffice/internal/adapter/middleware"
	"microfinance-backoffice/internal/adapter/repository/mysql"
	"microfinance-backoffice/internal/config"
	"microfinance-backoffice/internal/infrastructure/cache"
	"microfinance-backoffice/internal/infrastructure/db"
	"microfinance-backoffice/internal/infrastructure/logger"
	"microfinance-backoffice/internal/infrastructure/scheduler"
	"microfinance-backoffice/internal/usecase/application"
	"microfinance-backoffice/internal/usecase/client"
	"microfinance-backoffice/internal/usecase/delinquency"
	"microfinance-backoffice/internal/usecase/disbursement"
	"microfinance-backoffice/internal/usecase/product"
	"microfinance-backoffice/internal/usecase/repayment"
	"microfinance-backoffice/internal/usecase/report"
)

const (
	sweepTimeout    = 5 * time.Minute
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), db.WithLogger(zl.Named("gorm"), cfg.DBLogLevel))
	if err != nil {
		zl.Fatal("open mysql", zap.Error(err))
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			zl.Fatal("migrate", zap.Error(err))
		}
		zl.Info("schema migrated")
	}

	rdb, err := cache.OpenRedis(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zl.Fatal("open redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	repos := mysql.NewRepos(gdb)
	tx := mysql.NewGormUoW(gdb)

	disburse := disbursement.NewUsecase(repos, tx, zl)
	routes := httpadp.Routes{
		Health: httpadp.NewHandler(map[string]httpadp.Check{
			"mysql": func(ctx context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Products:     httpadp.NewProductHandler(product.NewUsecase(repos.Products, zl), zl),
		Clients:      httpadp.NewClientHandler(client.NewUsecase(repos.Clients, zl), zl),
		Applications: httpadp.NewApplicationHandler(application.NewUsecase(repos, tx, zl), disburse, zl),
		Loans:        httpadp.NewLoanHandler(disburse, repayment.NewUsecase(repos, tx, zl), zl),
		Dashboard:    httpadp.NewDashboardHandler(report.NewUsecase(mysql.NewReportRepository(gdb), zl), zl),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), echomw.RequestID(), requestLogger(zl))
	routes.Register(e,
		middleware.JWTAuth([]byte(cfg.JWTSecret)),
		middleware.Idempotency(rdb, cfg.IdempTTL(), zl.Named("idempotency")),
	)

	sched := scheduler.New(zl.Named("scheduler"), sweepTimeout)
	sweeper := delinquency.NewUsecase(repos, tx, cfg.DelinquencyGraceDays, zl.Named("delinquency"))
	if _, err := sched.Add("delinquency_sweep", cfg.DelinquencyCron, sweeper.Job); err != nil {
		zl.Fatal("schedule delinquency sweep", zap.Error(err))
	}
	sched.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.AppPort
		zl.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("http shutdown", zap.Error(err))
	}
	sched.Stop(shutdownCtx)
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func requestLogger(zl *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if actor := middleware.ActorID(c); actor != "" {
				fields = append(fields, zap.String("actor", actor))
			}
			if v.Error != nil {
				zl.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			zl.Info("request", fields...)
			return nil
		},
	})
}
