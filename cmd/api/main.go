package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	authrepo "github.com/fintrack/household-budget/internal/auth/adapter/repo"
	authapi "github.com/fintrack/household-budget/internal/auth/api"
	authservice "github.com/fintrack/household-budget/internal/auth/service"
	budgetrepo "github.com/fintrack/household-budget/internal/budget/adapter/repo"
	budgetapi "github.com/fintrack/household-budget/internal/budget/api"
	budgetservice "github.com/fintrack/household-budget/internal/budget/service"
	"github.com/fintrack/household-budget/internal/platform/database"
	"github.com/fintrack/household-budget/internal/platform/logger"
	"github.com/fintrack/household-budget/internal/platform/server"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	viper.SetConfigFile("configs/config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %s", err)
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	appLogger := logger.NewLogger(viper.GetString("server.mode"))
	defer appLogger.Sync() //nolint:errcheck

	db, err := database.NewPostgresDB(
		viper.GetString("database.dsn"),
		viper.GetInt("database.max_idle_conns"),
		viper.GetInt("database.max_open_conns"),
	)
	if err != nil {
		appLogger.Fatal("Database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		appLogger.Fatal("Database migration failed", zap.Error(err))
	}

	tokenCfg := authservice.TokenConfig{
		Key:           viper.GetString("jwt.key"),
		Issuer:        viper.GetString("jwt.issuer"),
		Audience:      viper.GetString("jwt.audience"),
		ExpiryMinutes: viper.GetInt("jwt.expiry_minutes"),
	}

	// -- Auth module --
	userRepo := authrepo.NewUserRepo(db)
	authSvc := authservice.NewAuthService(userRepo, tokenCfg, appLogger)
	authHandler := authapi.NewAuthHandler(authSvc)

	if err := authSvc.EnsureAdmin(
		context.Background(),
		viper.GetString("admin.email"),
		viper.GetString("admin.password"),
	); err != nil {
		appLogger.Fatal("Admin seeding failed", zap.Error(err))
	}

	// -- Budget module --
	txManager := budgetrepo.NewTxManager(db)
	accountRepo := budgetrepo.NewAccountRepo(db)
	txnRepo := budgetrepo.NewTransactionRepo(db)
	accountSvc := budgetservice.NewAccountService(txManager, accountRepo, txnRepo, appLogger)
	txnSvc := budgetservice.NewTransactionService(txManager, accountRepo, txnRepo, appLogger)
	accountHandler := budgetapi.NewAccountHandler(accountSvc)
	txnHandler := budgetapi.NewTransactionHandler(txnSvc)

	srv := server.NewServer(
		appLogger,
		viper.GetString("server.port"),
		viper.GetString("server.mode"),
		authSvc,
		authHandler,
		accountHandler,
		txnHandler,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Server startup failed", zap.Error(err))
		}
	case sig := <-quit:
		appLogger.Info("Shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			appLogger.Error("Graceful shutdown failed", zap.Error(err))
		}
	}
}
