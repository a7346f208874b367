package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	natsclient "github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/0xsj/overwatch-pkg/log"
	"github.com/0xsj/overwatch-pkg/types"

	kernelgrpc "github.com/0xsj/overwatch-kernel/internal/adapter/inbound/grpc"
	"github.com/0xsj/overwatch-kernel/internal/adapter/outbound/mapping"
	"github.com/0xsj/overwatch-kernel/internal/adapter/outbound/memory"
	natsadapter "github.com/0xsj/overwatch-kernel/internal/adapter/outbound/nats"
	"github.com/0xsj/overwatch-kernel/internal/adapter/outbound/postgres"
	rediscache "github.com/0xsj/overwatch-kernel/internal/adapter/outbound/redis"
	"github.com/0xsj/overwatch-kernel/internal/adapter/outbound/validation"
	"github.com/0xsj/overwatch-kernel/internal/app/command"
	"github.com/0xsj/overwatch-kernel/internal/app/query"
	"github.com/0xsj/overwatch-kernel/internal/app/service"
	"github.com/0xsj/overwatch-kernel/internal/config"
	portcommand "github.com/0xsj/overwatch-kernel/internal/port/inbound/command"
	portquery "github.com/0xsj/overwatch-kernel/internal/port/inbound/query"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/cache"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/repository"
	"github.com/0xsj/overwatch-kernel/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := log.NewPretty(log.DefaultConfig())

	logger.Info("starting kernel service",
		log.String("version", "1.0.0"),
		log.String("address", cfg.Server.Address()),
		log.String("storage", cfg.Storage.Driver),
	)

	// Initialize tracing
	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Telemetry, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", log.String("error", err.Error()))
		}
	}()

	// Initialize service identity
	identityManager, err := service.NewServiceIdentityManager(cfg.ServiceIdentity)
	if err != nil {
		return fmt.Errorf("failed to initialize service identity: %w", err)
	}

	logger.Info("service identity initialized",
		log.String("service_id", cfg.ServiceIdentity.ID),
		log.String("service_name", cfg.ServiceIdentity.Name),
		log.String("did", identityManager.DID()),
	)

	// Initialize user store
	var userRepo repository.UserRepository
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		userRepo = memory.NewUserRepository()
		logger.Warn("using in-memory user store, data is lost on restart")
	default:
		pool, err := connectPostgres(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer pool.Close()

		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				return fmt.Errorf("failed to migrate schema: %w", err)
			}
		}
		userRepo = postgres.NewUserRepository(pool)
	}

	// Initialize cache
	var userCache cache.UserCache
	if cfg.Redis.Enabled() {
		redisClient, err := connectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()

		userCache = rediscache.NewUserCache(redisClient, cfg.Redis.UserTTL)
	}

	// Initialize event publisher
	var eventPublisher messaging.EventPublisher
	if cfg.NATS.Enabled() {
		natsConn, err := connectNATS(cfg.NATS, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		defer natsConn.Close()

		eventPublisher = natsadapter.NewEventPublisher(
			natsConn,
			cfg.NATS.SubjectPrefix,
			natsadapter.WithSource(natsadapter.Source{
				DID:     identityManager.DID(),
				Service: identityManager.ServiceName(),
			}),
		)
	}

	// Initialize command handlers
	updateUser, err := command.NewUpdateUserHandler(
		userRepo,
		validation.NewUserValidator(),
		mapping.NewUserMapper(),
		userCache,
		eventPublisher,
	)
	if err != nil {
		return fmt.Errorf("failed to create update user handler: %w", err)
	}
	updateUserHandler := command.WithTracing[*portcommand.UpdateUser, types.ID](
		command.WithLogging[*portcommand.UpdateUser, types.ID](logger, updateUser),
	)

	// Initialize query handlers
	getUserHandler := query.WithTracing[portquery.GetUser, portquery.GetUserResult](
		query.NewGetUserHandler(userRepo, userCache),
	)
	getUserByDIDHandler := query.WithTracing[portquery.GetUserByDID, portquery.GetUserByDIDResult](
		query.NewGetUserByDIDHandler(userRepo),
	)

	// Initialize gRPC handler
	handler := kernelgrpc.NewHandler(kernelgrpc.HandlerConfig{
		UpdateUserHandler:   updateUserHandler,
		GetUserHandler:      getUserHandler,
		GetUserByDIDHandler: getUserByDIDHandler,
	})

	// Initialize gRPC server
	serverCfg := kernelgrpc.ServerConfig{
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		EnableReflection:  cfg.Server.EnableReflection,
		EnableHealthCheck: cfg.Server.EnableHealthCheck,
	}

	server, err := kernelgrpc.NewServer(serverCfg, handler, logger)
	if err != nil {
		return fmt.Errorf("failed to create grpc server: %w", err)
	}

	// Handle graceful shutdown
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("kernel service started", log.String("address", serverCfg.Address()))

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("received shutdown signal", log.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}

		logger.Info("kernel service stopped gracefully")
		return nil
	}
}

func connectPostgres(ctx context.Context, cfg config.DatabaseConfig, logger log.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected to postgres",
		log.String("host", cfg.Host),
		log.String("database", cfg.Database),
	)

	return pool, nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, logger log.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("connected to redis",
		log.String("address", cfg.Address()),
	)

	return client, nil
}

func connectNATS(cfg config.NATSConfig, logger log.Logger) (*natsclient.Conn, error) {
	opts := []natsclient.Option{
		natsclient.MaxReconnects(cfg.MaxReconnects),
		natsclient.ReconnectWait(cfg.ReconnectWait),
		natsclient.DisconnectErrHandler(func(nc *natsclient.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", log.String("error", err.Error()))
			}
		}),
		natsclient.ReconnectHandler(func(nc *natsclient.Conn) {
			logger.Info("nats reconnected", log.String("url", nc.ConnectedUrl()))
		}),
	}

	conn, err := natsclient.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	logger.Info("connected to nats",
		log.String("url", conn.ConnectedUrl()),
	)

	return conn, nil
}
