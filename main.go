package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
	"github.com/budgetbeyond/budget-beyond/internal/handler"
	"github.com/budgetbeyond/budget-beyond/internal/mail"
	"github.com/budgetbeyond/budget-beyond/internal/repository/sqlite"
	"github.com/budgetbeyond/budget-beyond/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: parseLogLevel(os.Getenv("LOG_LEVEL"))}
	var logHandler slog.Handler
	if envOrDefault("LOG_FORMAT", "text") == "json" {
		logHandler = slog.NewJSONHandler(os.Stdout, logOpts)
	} else {
		logHandler = slog.NewTextHandler(os.Stdout, logOpts)
	}
	slog.SetDefault(slog.New(logHandler))

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "budget-beyond.db")
	baseURL := envOrDefault("BASE_URL", "http://127.0.0.1:"+port)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	// Default to secure cookies; disable only for local development.
	cookieSecure := os.Getenv("COOKIE_SECURE") != "false"

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		bcryptCost = parsed
	}

	tokenMaxAge := service.DefaultTokenMaxAge
	if v := os.Getenv("VERIFICATION_TOKEN_MAX_AGE"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			slog.Error("invalid VERIFICATION_TOKEN_MAX_AGE", "value", v)
			os.Exit(1)
		}
		tokenMaxAge = parsed
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	// Without SMTP settings, outbound mail goes to the log so the
	// verification flow stays usable in development.
	var mailer domain.Mailer = mail.LogMailer{}
	if host := os.Getenv("SMTP_HOST"); host != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     host,
			Port:     envOrDefault("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     envOrDefault("SMTP_FROM", "no-reply@budgetbeyond.app"),
		})
		slog.Info("smtp mailer configured", "host", host)
	} else {
		slog.Info("no SMTP configured, mail goes to the log")
	}

	authService := service.NewAuthService(db.Users(), jwtSecret, bcryptCost)
	verificationService := service.NewVerificationService(db.Users(), mailer, jwtSecret, tokenMaxAge, baseURL)
	expenseService := service.NewExpenseService(db.Expenses())
	billService := service.NewBillService(db.Bills())
	taskService := service.NewTaskService(db.Tasks())

	// Allow bursts of 5 credential attempts per IP, refilling one every 2s.
	loginLimiter := service.NewTokenBucket(0.5, 5)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, verificationService,
		expenseService, billService, taskService, loginLimiter, cookieSecure)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.RequestLogger(handler.SecurityHeaders(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(lvl string) slog.Level {
	switch lvl {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
