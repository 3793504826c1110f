package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library-loan-service/api"
	"library-loan-service/internal/config"
	"library-loan-service/internal/database"
	"library-loan-service/internal/domain"
	"library-loan-service/internal/handler"
	"library-loan-service/internal/metrics"
	"library-loan-service/internal/policy"
	"library-loan-service/internal/repository"
	"library-loan-service/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
	}

	// Политика выдачи
	loanPolicy, err := policy.Load(cfg.LoanPolicyFile)
	if err != nil {
		logger.Fatalf("Loan policy load failed: %v", err)
	}
	logger.WithField("file", cfg.LoanPolicyFile).Info("Loan policy loaded")

	// База данных (database/sql)
	db, dialect, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.WithField("driver", dialect).Info("Database connected")

	queries := database.New(db, dialect)

	// Репозитории
	userRepo := repository.NewUserRepository(queries)
	bookRepo := repository.NewBookRepository(queries)
	loanRepo := repository.NewLoanRepository(queries)
	tx := repository.NewTransactor(db, queries)

	// Use Cases
	var loanUC domain.LoanUseCase = usecase.NewLoanUseCase(userRepo, bookRepo, loanRepo, tx, loanPolicy, usecase.SystemClock{})

	// Echo + Handlers
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler(logger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if cfg.MetricsEnabled {
		m := metrics.New()
		loanUC = metrics.NewLoanUseCase(loanUC, m)
		e.Use(m.Middleware())
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	e.Use(handler.LoggingMiddleware(logger))
	e.Use(middleware.ContextTimeout(cfg.RequestTimeout))

	// Handlers
	apiHandler := handler.NewAPIHandler(loanUC, logger)
	api.RegisterHandlers(e, apiHandler)

	e.GET("/health", func(c echo.Context) error {
		if err := db.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
