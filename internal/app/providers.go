package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	cashdomain "github.com/tair/dairy-ledger/internal/cash/domain"
	customerdomain "github.com/tair/dairy-ledger/internal/customer/domain"
	expensedomain "github.com/tair/dairy-ledger/internal/expense/domain"
	inventorydomain "github.com/tair/dairy-ledger/internal/inventory/domain"
	ledgerdomain "github.com/tair/dairy-ledger/internal/ledger/domain"
	productdomain "github.com/tair/dairy-ledger/internal/product/domain"
	saledomain "github.com/tair/dairy-ledger/internal/sale/domain"
	userdomain "github.com/tair/dairy-ledger/internal/user/domain"
	"github.com/tair/dairy-ledger/kafka"
	"github.com/tair/dairy-ledger/pkg/auth"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/config"
	"github.com/tair/dairy-ledger/pkg/database"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// Models lists every table the service owns, in migration order
func Models() []interface{} {
	return []interface{}{
		&productdomain.Product{},
		&customerdomain.Customer{},
		&inventorydomain.DailyRecord{},
		&inventorydomain.StockMovement{},
		&saledomain.Sale{},
		&saledomain.LineItem{},
		&ledgerdomain.Payment{},
		&ledgerdomain.PaymentAllocation{},
		&cashdomain.CashEntry{},
		&cashdomain.StartingCash{},
		&expensedomain.Expense{},
		&userdomain.UserType{},
		&userdomain.User{},
	}
}

// ProvideDB connects to Postgres and runs migrations
func ProvideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { sqlDB.Close() }

	if err := db.AutoMigrate(Models()...); err != nil {
		cleanup()
		return nil, nil, err
	}
	logger.Logger.Info().Msg("Database initialized successfully")
	return db, cleanup, nil
}

// ProvideGateway wraps the gorm gateway with tracing spans
func ProvideGateway(db *gorm.DB, cfg *config.Config) store.Gateway {
	return store.WithTracing(store.NewGormGateway(db, cfg.StoreTimeout))
}

// ProvideRunner provides the conflict-retrying unit-of-work runner
func ProvideRunner(gw store.Gateway, cfg *config.Config) *store.Runner {
	return store.NewRunner(gw, cfg.StoreConflictRetries)
}

// ProvideRedis returns a nil client when REDIS_ADDR is empty. A Redis that
// is configured but unreachable is logged and treated as absent.
func ProvideRedis(cfg *config.Config) (*redis.Client, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, caching disabled")
		return nil, func() {}
	}
	if client == nil {
		return nil, func() {}
	}
	return client, func() { client.Close() }
}

// ProvideCache provides the read-model cache
func ProvideCache(client *redis.Client, cfg *config.Config) *cache.Cache {
	return cache.New(client, cfg.CacheTTL)
}

// ProvidePublisher returns a nil publisher when Kafka is disabled
func ProvidePublisher(cfg *config.Config) (*kafka.Publisher, func(), error) {
	if !cfg.KafkaEnabled {
		logger.Logger.Info().Msg("Kafka disabled, events will not be published")
		return nil, func() {}, nil
	}
	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		return nil, nil, err
	}
	return publisher, func() { publisher.Close() }, nil
}

// ProvideCalendar provides the shop-local business calendar
func ProvideCalendar(cfg *config.Config) *period.Calendar {
	return period.NewCalendar(cfg.Location())
}

// ProvideGuard installs the JWT secret and returns the page guard
func ProvideGuard(cfg *config.Config) *httpx.Guard {
	if cfg.JWTSecret != "" {
		auth.SetSecret(cfg.JWTSecret)
	}
	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		logger.Logger.Warn().Msg("AUTH_ENABLED is set without JWT_SECRET, every token will be rejected")
	}
	return httpx.NewGuard(cfg.AuthEnabled)
}

// ProvideMetrics provides the request metrics on the default registry
func ProvideMetrics() *httpx.Metrics {
	return httpx.DefaultMetrics()
}

// ProvideRateLimiter is nil without Redis
func ProvideRateLimiter(client *redis.Client, cfg *config.Config) *httpx.RateLimiter {
	return httpx.NewRateLimiter(client, cfg.RateLimitRequests, cfg.RateLimitWindow)
}
