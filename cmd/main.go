package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	_ "github.com/sixlab/storefront/docs"
	"github.com/sixlab/storefront/internal/app"
	"github.com/sixlab/storefront/internal/config"
	"github.com/sixlab/storefront/internal/discord"
	"github.com/sixlab/storefront/internal/entities"
	"github.com/sixlab/storefront/internal/events"
	"github.com/sixlab/storefront/internal/handler"
	"github.com/sixlab/storefront/internal/orderid"
	"github.com/sixlab/storefront/internal/postgres"
	"github.com/sixlab/storefront/internal/ratelimit"
	"github.com/sixlab/storefront/internal/repo"
	"github.com/sixlab/storefront/internal/seed"
	"github.com/sixlab/storefront/internal/service"
	"github.com/sixlab/storefront/internal/session"
	"github.com/sixlab/storefront/pkg/cache"
	"github.com/sixlab/storefront/pkg/trm"
)

// @title           Storefront API
// @version         1.0
// @description     Order intake and Discord fulfillment backend
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	panicIfErr("failed to run migrations", postgres.Migrate(db))
	logger.Info("postgres connected")

	discordClient := discord.NewClient(logger, conf.Discord)
	sessions := session.NewManager(conf.Session)

	// Without redis order ids degrade to timestamps and rate limits are
	// per-instance. Config validation forbids that in production.
	var (
		ids     orderid.Generator = orderid.NewTimestampGenerator()
		limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(conf.RateLimit.Limit, conf.RateLimit.Window)
	)
	if conf.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		defer rdb.Close()
		ids = orderid.NewCounterGenerator(rdb, conf.Env)
		limiter = ratelimit.NewRedisLimiter(rdb, conf.RateLimit.Limit, conf.RateLimit.Window)
		logger.Info("redis connected", slog.String("addr", conf.Redis.Addr))
	}

	var publisher service.EventPublisher
	if len(conf.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewPublisher(logger, conf.Kafka)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	productRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	catalogCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)

	orderService := service.NewOrderService(logger, discordClient, ids, publisher, conf.Discord)
	authService := service.NewAuthService(logger, discordClient)
	membershipService := service.NewMembershipService(logger, discordClient)
	catalogService := service.NewCatalogService(logger, txManager, productRepo, catalogCache)

	application := app.New(logger, conf)
	application.SetHTTPHandlers(
		handler.NewOrderHandler(logger, orderService, limiter, conf.Admin.Secret),
		handler.NewAuthHandler(logger, authService, sessions, conf.Http.CheckoutURL),
		handler.NewMembershipHandler(logger, membershipService, sessions),
		handler.NewCatalogHandler(logger, catalogService),
	)
	application.SetStarters(catalogCache, catalogSeedAdapter{svc: catalogService})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", application.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", application.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type catalogSyncer interface {
	SyncCatalog(ctx context.Context, products []entities.Product) error
}

// catalogSeedAdapter loads the embedded seed catalog on startup.
type catalogSeedAdapter struct {
	svc catalogSyncer
}

func (a catalogSeedAdapter) Start(ctx context.Context) error {
	products, err := seed.Products()
	if err != nil {
		return err
	}
	return a.svc.SyncCatalog(ctx, products)
}
