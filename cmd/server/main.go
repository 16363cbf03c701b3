package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	natsclient "github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/0xsj/overwatch-pkg/log"

	ssogrpc "github.com/0xsj/overwatch-sso-instagram/internal/adapter/inbound/grpc"
	"github.com/0xsj/overwatch-sso-instagram/internal/adapter/inbound/instagram"
	natsinbound "github.com/0xsj/overwatch-sso-instagram/internal/adapter/inbound/nats"
	"github.com/0xsj/overwatch-sso-instagram/internal/adapter/inbound/web"
	natsadapter "github.com/0xsj/overwatch-sso-instagram/internal/adapter/outbound/nats"
	"github.com/0xsj/overwatch-sso-instagram/internal/adapter/outbound/postgres"
	redisstore "github.com/0xsj/overwatch-sso-instagram/internal/adapter/outbound/redis"
	"github.com/0xsj/overwatch-sso-instagram/internal/app/command"
	"github.com/0xsj/overwatch-sso-instagram/internal/app/hooks"
	"github.com/0xsj/overwatch-sso-instagram/internal/app/query"
	"github.com/0xsj/overwatch-sso-instagram/internal/app/service"
	"github.com/0xsj/overwatch-sso-instagram/internal/config"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/plugin"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
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
	appLogger := newAppLogger(logger)

	provider := model.InstagramProvider()

	logger.Info("starting sso service",
		log.String("plugin", provider.PluginID()),
		log.String("site_url", cfg.Site.URL),
		log.String("accounts_backend", cfg.Accounts.Backend),
	)

	// Connect to Redis
	redisClient, err := connectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	// Initialize stores
	objects := redisstore.NewObjectStore(redisClient)
	settings := redisstore.NewSettingsStore(redisClient)

	var accounts store.AccountStore
	switch cfg.Accounts.Backend {
	case config.BackendPostgres:
		pool, err := connectPostgres(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer pool.Close()

		if cfg.Database.EnsureSchema {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				return err
			}
		}
		accounts = postgres.NewAccountStore(pool)
	default:
		accounts = redisstore.NewAccountStore(redisClient)
	}

	// Connect to NATS
	var natsConn *natsclient.Conn
	publisher := messaging.Discard()
	if cfg.NATS.Enabled {
		natsConn, err = connectNATS(cfg.NATS, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		defer natsConn.Close()

		publisher = natsadapter.NewEventPublisher(natsConn, cfg.NATS.SubjectPrefix, provider.PluginID())
	}

	// Initialize command handlers
	refreshHandler := command.NewRefreshExternalInfoHandler(
		accounts,
		provider,
		command.RefreshConfig{LogAccessTokens: cfg.Instagram.LogAccessTokens},
		appLogger,
	)
	resolveHandler := command.NewResolveIdentityHandler(
		accounts,
		objects,
		refreshHandler,
		publisher,
		provider,
		appLogger,
	)
	linkHandler := command.NewLinkIdentityHandler(
		accounts,
		objects,
		refreshHandler,
		publisher,
		provider,
		appLogger,
	)
	unlinkHandler := command.NewUnlinkIdentityHandler(
		accounts,
		objects,
		publisher,
		provider,
		appLogger,
	)

	// Initialize query handlers
	associationHandler := query.NewGetAssociationHandler(accounts, provider, cfg.Site.URL)

	// Initialize strategy registration
	strategies := service.NewStrategyService(
		settings,
		linkHandler,
		resolveHandler,
		nil,
		provider,
		service.StrategyConfig{
			SiteURL: cfg.Site.URL,
			Fallback: service.Credentials{
				ClientID:     cfg.Instagram.ClientID,
				ClientSecret: cfg.Instagram.ClientSecret,
			},
			OAuth: service.OAuthConfig{
				HTTPClient: &http.Client{Timeout: cfg.Instagram.HTTPTimeout},
			},
		},
		appLogger,
	)

	// Register plugins
	dispatcher := hooks.NewDispatcher(appLogger, instagram.New(
		provider,
		strategies,
		unlinkHandler,
		associationHandler,
		instagram.Config{
			SiteURL:       cfg.Site.URL,
			SessionHeader: cfg.HTTP.SessionHeader,
			SecureCookie:  cfg.HTTP.SecureCookies,
		},
		appLogger,
	))

	// Initialize HTTP server
	gin.SetMode(cfg.HTTP.Mode)
	httpServer, err := web.NewServer(web.ServerConfig{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	if err := dispatcher.FireInit(ctx, plugin.InitParams{Router: httpServer.Router()}); err != nil {
		return fmt.Errorf("failed to initialize plugins: %w", err)
	}
	web.NewHostHandler(dispatcher).RegisterRoutes(httpServer.Router())

	// Subscribe to account deletions
	if natsConn != nil {
		subscriber := natsinbound.NewSubscriber(natsConn, natsinbound.SubscriberConfig{
			Subject: cfg.NATS.DeletedSubjectFull(),
			Queue:   cfg.NATS.Queue,
		}, dispatcher, appLogger)
		if err := subscriber.Start(); err != nil {
			return err
		}
		defer func() { _ = subscriber.Stop() }()
	}

	// Handle graceful shutdown
	errChan := make(chan error, 2)
	go func() {
		errChan <- httpServer.Start()
	}()

	var grpcServer *ssogrpc.Server
	if cfg.GRPC.Enabled {
		grpcServer = ssogrpc.NewServer(ssogrpc.ServerConfig{
			Host:             cfg.GRPC.Host,
			Port:             cfg.GRPC.Port,
			EnableReflection: cfg.GRPC.EnableReflection,
		}, appLogger)
		if err := grpcServer.Listen(); err != nil {
			return err
		}
		grpcServer.SetServing(true)
		go func() {
			errChan <- grpcServer.Start()
		}()
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("sso service started", log.String("address", cfg.HTTP.Address()))

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("received shutdown signal", log.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer shutdownCancel()

		if grpcServer != nil {
			grpcServer.SetServing(false)
			if err := grpcServer.Stop(shutdownCtx); err != nil {
				logger.Warn("failed to stop grpc server", log.String("error", err.Error()))
			}
		}

		if err := httpServer.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}

		logger.Info("sso service stopped gracefully")
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
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("connected to redis",
		log.String("address", cfg.Address()),
	)

	return client, nil
}

func connectNATS(cfg config.NATSConfig, logger log.Logger) (*natsclient.Conn, error) {
	opts := []natsclient.Option{
		natsclient.Name("sso-instagram"),
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

// appLogger adapts log.Logger to the key/value logging.Logger used internally.
type appLogger struct {
	logger log.Logger
}

func newAppLogger(logger log.Logger) *appLogger {
	return &appLogger{logger: logger}
}

func (l *appLogger) Debug(msg string, fields ...interface{}) {
	l.logger.Debug(msg, toLogFields(fields)...)
}

func (l *appLogger) Info(msg string, fields ...interface{}) {
	l.logger.Info(msg, toLogFields(fields)...)
}

func (l *appLogger) Warn(msg string, fields ...interface{}) {
	l.logger.Warn(msg, toLogFields(fields)...)
}

func (l *appLogger) Error(msg string, fields ...interface{}) {
	l.logger.Error(msg, toLogFields(fields)...)
}

func toLogFields(fields []interface{}) []log.Field {
	if len(fields) == 0 {
		return nil
	}

	result := make([]log.Field, 0, len(fields)/2)
	for i := 0; i < len(fields)-1; i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		if err, ok := fields[i+1].(error); ok {
			result = append(result, log.String(key, err.Error()))
			continue
		}
		result = append(result, log.Any(key, fields[i+1]))
	}
	return result
}
