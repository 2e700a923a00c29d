package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/homeline/homeline-go/internal/config"
	"github.com/homeline/homeline-go/internal/crypto"
	"github.com/homeline/homeline-go/internal/handler"
	"github.com/homeline/homeline-go/internal/logging"
	"github.com/homeline/homeline-go/internal/middleware"
	"github.com/homeline/homeline-go/internal/notify"
	"github.com/homeline/homeline-go/internal/repository"
	"github.com/homeline/homeline-go/internal/service"
	"github.com/homeline/homeline-go/internal/validator"
)

const (
	signinAttempts = 10
	signinWindow   = 15 * time.Minute
)

type stores struct {
	users     service.UserStore
	listings  service.ListingStore
	inquiries service.InquiryStore
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logging.New("homeline-api", cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeDB, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Error("storage unavailable", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = repository.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, signin throttling disabled", "error", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	hasher := crypto.NewHasher(cfg.BcryptCost)
	tokens := crypto.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	v := validator.New()

	authService := service.NewAuthService(st.users, hasher, tokens, v, cfg.ProductKeySecret)
	listingService := service.NewListingService(st.listings, v, log)
	inquiryService := service.NewInquiryService(st.inquiries, listingService, st.users, newNotifier(cfg, log), v, log)

	router := handler.NewRouter(handler.Deps{
		Auth:      authService,
		Listings:  listingService,
		Inquiries: inquiryService,
		Tokens:    tokens,
		Metrics:   middleware.NewMetrics(),
		Login:     middleware.NewLoginLimiter(rdb, signinAttempts, signinWindow, log),
		Log:       log,
		Done:      ctx.Done(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}
	inquiryService.Wait()

	log.Info("server stopped")
}

// openStores connects to MySQL and runs migrations. In development an
// unreachable database falls back to in-memory stores.
func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (stores, func(), error) {
	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		if cfg.Env != "development" {
			return stores{}, nil, err
		}
		log.Warn("database connection failed, using in-memory stores", "error", err)
		mem := repository.NewMemoryStore()
		return stores{users: mem.Users(), listings: mem.Listings(), inquiries: mem.Inquiries()}, func() {}, nil
	}

	if cfg.AutoMigrate {
		if err := repository.Migrate(ctx, db.DB, log); err != nil {
			db.Close()
			return stores{}, nil, err
		}
	}

	return sqlStores(db), func() { db.Close() }, nil
}

func sqlStores(db *sqlx.DB) stores {
	return stores{
		users:     repository.NewUserRepository(db),
		listings:  repository.NewListingRepository(db),
		inquiries: repository.NewInquiryRepository(db),
	}
}

func newNotifier(cfg config.Config, log *slog.Logger) notify.Notifier {
	if cfg.SMTP.Host == "" {
		return notify.NewLogNotifier(log)
	}
	return notify.NewMailNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
}
