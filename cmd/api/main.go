// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/analytics"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/favorite"
	"github.com/your-org/storefront-backend/internal/domain/history"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/recommendation"
	"github.com/your-org/storefront-backend/internal/domain/subscriber"
	"github.com/your-org/storefront-backend/internal/domain/upload"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/postgres"
	redisstore "github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-backend/internal/infrastructure/storage"
	httpserver "github.com/your-org/storefront-backend/internal/interfaces/http"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/interfaces/http/routes"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
)

// repositories is the persistence selected by DB_DRIVER
type repositories struct {
	products    product.Repository
	carts       cart.Repository
	checkouts   checkout.Repository
	orders      order.Repository
	favorites   favorite.Repository
	history     history.Repository
	subscribers subscriber.Repository
	users       user.Repository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting storefront backend")

	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]httpserver.HealthChecker{}

	var repos repositories
	switch cfg.Database.Driver {
	case "memory":
		repos = memoryRepositories()
		log.Warn("Using in-memory store; data is lost on restart")
	default:
		db, err := postgres.NewConnection(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()
		checks["database"] = db

		migration := postgres.NewMigration(db.GetDB(), log)
		if err := migration.RunAutoMigrations(); err != nil {
			log.WithError(err).Fatal("Database migration failed")
		}
		if err := migration.CreateIndexes(); err != nil {
			log.WithError(err).Warn("Index creation failed")
		}
		if cfg.Database.SeedData {
			if err := migration.SeedInitialData(cfg.Database.AdminEmail, cfg.Database.AdminPassword); err != nil {
				log.WithError(err).Warn("Data seeding failed")
			}
		}
		repos = postgresRepositories(db)
	}

	opts := httpserver.Options{LimiterBackend: "memory"}
	if cfg.Redis.Enabled {
		redisClient, err := redisstore.NewConnection(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisClient.Close()
		checks["redis"] = redisClient

		repos.carts = redisstore.NewCarts(repos.carts, redisstore.NewGuestCarts(redisClient, cfg.Redis.GuestCartTTL))
		opts.Limiter = redisstore.NewRateLimiter(redisClient, cfg.Security.RateLimitPerMinute, time.Minute)
		opts.LimiterBackend = "redis"
	} else {
		local := middleware.NewLocalLimiter(cfg.Security.RateLimitPerMinute, cfg.Security.RateLimitBurst)
		go local.RunCleanup(ctx, 10*time.Minute)
		opts.Limiter = local
	}
	opts.HealthChecks = checks

	objectStorage, err := storage.New(cfg.External.Storage, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to configure object storage")
	}

	deps := buildServices(cfg, log, repos, objectStorage)

	if cfg.Database.Driver == "memory" && cfg.Database.SeedData {
		seedMemoryAdmin(ctx, cfg, log, deps.Users)
	}

	server := httpserver.NewServer(cfg, log, deps, opts)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Error("HTTP server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}

func buildServices(cfg *config.Config, log *logrus.Logger, repos repositories, objectStorage upload.Storage) *routes.Dependencies {
	mailer := email.NewService(cfg, log)

	products := product.NewService(repos.products)
	users := user.NewService(repos.users, cfg)
	carts := cart.NewService(repos.carts, products, log)
	orders := order.NewService(repos.orders, pdf.NewService(cfg))
	favorites := favorite.NewService(repos.favorites, products)
	views := history.NewService(repos.history, products)

	return &routes.Dependencies{
		Config:          cfg,
		Logger:          log,
		JWT:             auth.NewJWTManager(cfg),
		Products:        products,
		Carts:           carts,
		Checkouts:       checkout.NewService(repos.checkouts, products, orders, carts, mailer, users, log),
		Orders:          orders,
		Favorites:       favorites,
		History:         views,
		Recommendations: recommendation.NewService(favorites, views, orders, products, cfg.Recommendation),
		Subscribers:     subscriber.NewService(repos.subscribers, mailer, log),
		Users:           users,
		Uploads:         upload.NewService(objectStorage, cfg.Upload, log),
		Analytics:       analytics.NewService(orders, users, products),
	}
}

func memoryRepositories() repositories {
	return repositories{
		products:    memory.NewProducts(),
		carts:       memory.NewCarts(),
		checkouts:   memory.NewCheckouts(),
		orders:      memory.NewOrders(),
		favorites:   memory.NewFavorites(),
		history:     memory.NewHistory(),
		subscribers: memory.NewSubscribers(),
		users:       memory.NewUsers(),
	}
}

func postgresRepositories(db *postgres.DB) repositories {
	gdb := db.GetDB()
	return repositories{
		products:    postgres.NewProducts(gdb),
		carts:       postgres.NewCarts(gdb),
		checkouts:   postgres.NewCheckouts(gdb),
		orders:      postgres.NewOrders(gdb),
		favorites:   postgres.NewFavorites(gdb),
		history:     postgres.NewHistory(gdb),
		subscribers: postgres.NewSubscribers(gdb),
		users:       postgres.NewUsers(gdb),
	}
}

func seedMemoryAdmin(ctx context.Context, cfg *config.Config, log *logrus.Logger, users *user.Service) {
	_, err := users.Create(ctx, &user.CreateRequest{
		Name:     "Admin User",
		Email:    cfg.Database.AdminEmail,
		Password: cfg.Database.AdminPassword,
		Role:     user.RoleAdmin,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to seed admin user")
		return
	}
	log.WithField("email", cfg.Database.AdminEmail).Info("Created admin user")
}
