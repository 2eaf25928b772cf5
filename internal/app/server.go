// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syukri21/chat/internal/config"
	"github.com/syukri21/chat/internal/db"
	authHandler "github.com/syukri21/chat/internal/handlers/auth"
	"github.com/syukri21/chat/internal/middleware"
	"github.com/syukri21/chat/internal/pkg/crypto"
	"github.com/syukri21/chat/internal/pkg/jwt"
	"github.com/syukri21/chat/internal/pkg/session"
	"github.com/syukri21/chat/internal/repository/postgres"
	authUsecase "github.com/syukri21/chat/internal/service/auth"
	"github.com/syukri21/chat/internal/service/email"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer(cfg config.AppConfig) *Server {
	return &Server{cfg: cfg, engine: gin.New()}
}

func (s *Server) Start() error {
	ctx := context.Background()

	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := postgres.Connect(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("database ready")

	// ----- Redis (optional session cache) -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("redis session cache enabled", zap.String("addr", s.cfg.RedisAddr))
	}

	// ----- Crypto -----
	cipher, err := crypto.NewCipher([]byte(s.cfg.MainKey))
	if err != nil {
		return fmt.Errorf("failed to build cipher: %w", err)
	}
	issuer, err := jwt.NewIssuer(s.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to build token issuer: %w", err)
	}

	// ----- Email -----
	mailer := email.NewSMTPSender(
		s.cfg.SMTPHost,
		s.cfg.SMTPPort,
		s.cfg.SMTPUser,
		s.cfg.SMTPPass,
		s.cfg.SMTPFromName,
		s.cfg.SMTPSecure,
	)

	// ----- Repositories -----
	userRepo := postgres.NewUserRepository(pool)
	credentialRepo := postgres.NewCredentialRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)

	sessionManager := session.NewManager(redisClient, sessionRepo, jwt.DefaultTTL, logger)

	// ----- Services -----
	activationService := authUsecase.NewActivationService(cipher, userRepo, mailer, s.cfg.CallbackBaseURL, logger)
	registerService := authUsecase.NewRegisterService(userRepo, credentialRepo, activationService, logger)
	loginService := authUsecase.NewLoginService(userRepo, credentialRepo, sessionManager, issuer, logger)

	// ----- Handlers & middleware -----
	handler := authHandler.NewAuthHandler(loginService, registerService, activationService, logger)
	gate := middleware.NewAuthGate(loginService, s.cfg.DebugMode, logger)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)

	SetupRouter(s.engine, &Handlers{
		AuthHandler: handler,
		AuthGate:    gate,
	}, s.cfg.DebugMode)

	// ----- HTTP -----
	httpServer := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
		errCh <- httpServer.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
