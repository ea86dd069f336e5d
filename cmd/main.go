package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/dtroode/taskkeeper/internal/api/http/context"
	"github.com/dtroode/taskkeeper/internal/api/http/handler"
	"github.com/dtroode/taskkeeper/internal/api/http/router"
	httpServer "github.com/dtroode/taskkeeper/internal/api/http/server"
	"github.com/dtroode/taskkeeper/internal/config"
	"github.com/dtroode/taskkeeper/internal/logger"
	"github.com/dtroode/taskkeeper/internal/model"
	"github.com/dtroode/taskkeeper/internal/password"
	"github.com/dtroode/taskkeeper/internal/repository/postgres"
	"github.com/dtroode/taskkeeper/internal/server"
	"github.com/dtroode/taskkeeper/internal/service"
	"github.com/dtroode/taskkeeper/internal/token"
	"github.com/dtroode/taskkeeper/internal/validation"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	authTokenRepo := postgres.NewAuthTokenRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	validator := validation.New()

	authService, err := service.NewAuth(userRepo, authTokenRepo, password.NewBcrypt(cfg.Bcrypt.Cost), tokenManager, validator, logger)
	if err != nil {
		logger.Fatal("failed to initialize auth service", "error", err)
	}
	taskService := service.NewTask(taskRepo, validator, logger)
	ctxMgr := httpctx.NewManager()

	srv := registerHTTPServer(logger, authService, taskService, db, ctxMgr, cfg)

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	logger *logger.Logger,
	authService *service.Auth,
	taskService *service.Task,
	pinger handler.Pinger,
	ctxMgr model.ContextManager,
	cfg *config.Config,
) *httpServer.HTTPServer {
	r := router.New(authService, taskService, pinger, ctxMgr, router.Config{
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Session: handler.SessionConfig{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.Secure,
			TTL:        cfg.JWT.TTL,
		},
	}, logger)

	return httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))
}
