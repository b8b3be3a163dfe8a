package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"paygate-backend/internal/config"
	orderRepo "paygate-backend/internal/domains/order/repository"
	"paygate-backend/internal/domains/payment/credentials"
	paymentGateway "paygate-backend/internal/domains/payment/gateway"
	paymentHandler "paygate-backend/internal/domains/payment/handler"
	paymentService "paygate-backend/internal/domains/payment/service"
	"paygate-backend/internal/infrastructure/audit"
	"paygate-backend/internal/infrastructure/cache"
	"paygate-backend/internal/infrastructure/database"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph. Everything in it is a
// singleton living for the process lifetime.
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB
	Redis  *cache.RedisClient

	// Payment core
	Resolver credentials.Resolver
	Registry *paymentGateway.Registry

	// Repositories
	OrderRepo orderRepo.OrderRepository

	// Services
	PaymentService paymentService.PaymentService

	// Handlers
	PaymentHandler *paymentHandler.PaymentHandler
	WebhookHandler *paymentHandler.WebhookHandler
}

// NewContainer builds the dependency graph in order: config, infrastructure,
// credential resolver, gateway registry, repositories, services, handlers.
func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("config loaded")

	// Database
	c.DB = database.NewPostgresDB(&database.DBConfig{
		Host:              cfg.Database.Host,
		Port:              cfg.Database.Port,
		Username:          cfg.Database.User,
		Password:          cfg.Database.Password,
		DBName:            cfg.Database.Database,
		MaxConns:          int32(cfg.Database.MaxConns),
		MinConns:          int32(cfg.Database.MinConns),
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,
		MaxRetries:        5,
		RetryDelay:        time.Second,
		ConnectTimeout:    10 * time.Second,
	}, log.Logger)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", err)
	}

	// Redis
	c.Redis = cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("redis initialization failed: %w", err)
	}

	// Credential resolver
	resolver, err := buildResolver(c)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Resolver = resolver

	// Gateway registry
	registry, err := paymentGateway.BuildRegistry(ctx, cfg.Payment.Environment, resolver, paymentGateway.DefaultHTTPClient(), log.Logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("gateway registry initialization failed: %w", err)
	}
	c.Registry = registry

	// Repositories
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(c.DB.Pool)

	// Services
	c.PaymentService = paymentService.NewPaymentService(
		c.Registry,
		c.OrderRepo,
		c.Redis,
		audit.NewLogSink(log.Logger),
		log.Logger,
	)

	// Handlers
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.PaymentService)
	c.WebhookHandler = paymentHandler.NewWebhookHandler(c.PaymentService, log.Logger)

	return c, nil
}

func buildResolver(c *Container) (credentials.Resolver, error) {
	switch c.Config.Payment.CredentialSource {
	case "database":
		cipher, err := credentials.NewCipher(c.Config.Payment.MasterKey)
		if err != nil {
			return nil, fmt.Errorf("credential cipher initialization failed: %w", err)
		}
		return credentials.NewStore(c.DB.Pool, cipher), nil
	default:
		resolver := credentials.NewStaticResolver()
		for provider, creds := range config.EnvCredentials() {
			resolver.Set(provider, "default", c.Config.Payment.Environment, creds)
		}
		return resolver, nil
	}
}

func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

// HealthCheck verifies infrastructure connectivity.
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := c.DB.HealthCheck(ctx); err != nil {
		return err
	}
	return c.Redis.HealthCheck(ctx)
}
