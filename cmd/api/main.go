package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"aniexo/internal/config"
	pgRepo "aniexo/internal/infra/adapter/persistence/postgres"
	"aniexo/internal/infra/db"
	"aniexo/internal/infra/jikan"
	"aniexo/internal/infra/worker"
	"aniexo/internal/observability/logging"
	"aniexo/internal/observability/metrics"
	"aniexo/internal/observability/tracing"
	pkgconfig "aniexo/pkg/config"
	"aniexo/pkg/cache"
	"aniexo/pkg/ratelimit"

	catUC "aniexo/internal/usecase/catalog"
	libUC "aniexo/internal/usecase/library"

	hhttp "aniexo/internal/handler/http"
	hanime "aniexo/internal/handler/http/anime"
	hauth "aniexo/internal/handler/http/auth"
	hlibrary "aniexo/internal/handler/http/library"
	"aniexo/internal/handler/http/middleware"
	"aniexo/internal/handler/http/requestid"

	_ "aniexo/docs" // swagger docs
)

// @title           Aniexo API
// @version         1.0
// @description     Jikan v4 をキャッシュ付きでプロキシするアニメカタログ API。
// @description     お気に入りと視聴履歴の管理機能を提供します。

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

const (
	maxRequestBody  = 1 << 20 // 1MB
	shutdownTimeout = 10 * time.Second
)

func main() {
	logger := initLogger()
	version := getVersion()

	// background goroutines (warmer, pool stats) stop with this context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp := initTracing()
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	components, err := setupServer(ctx, logger, version)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}
	defer components.Close(logger)

	runServer(ctx, cancel, logger, components, version)
}

// initLogger installs the JSON logger (LOG_FORMAT=text for local development).
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	if os.Getenv("LOG_FORMAT") == "text" {
		logger = logging.NewTextLogger()
	}
	slog.SetDefault(logger)
	return logger
}

// initTracing installs an SDK tracer provider so that inbound and upstream
// spans carry real trace ids, which the request log picks up as trace_id.
func initTracing() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)
	return tp
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return pkgconfig.GetEnvString("VERSION", "dev")
}

// ServerComponents holds what runServer serves and what main must release.
type ServerComponents struct {
	Handler http.Handler
	DB      *sql.DB
	Warmer  *worker.Warmer
}

// Close stops the warmer and closes the database pool.
func (c *ServerComponents) Close(logger *slog.Logger) {
	if c.Warmer != nil {
		c.Warmer.Stop()
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}
}

// setupServer wires the catalog, the optional account features and the
// middleware chain.
func setupServer(ctx context.Context, logger *slog.Logger, version string) (*ServerComponents, error) {
	upCfg, err := config.LoadUpstreamConfig()
	if err != nil {
		return nil, err
	}

	moods := config.DefaultMoodTable()
	if path := os.Getenv("MOOD_TABLE_PATH"); path != "" {
		if moods, err = config.LoadMoodTable(path); err != nil {
			return nil, fmt.Errorf("load mood table: %w", err)
		}
		logger.Info("mood table loaded", slog.String("path", path), slog.Any("moods", moods.Names()))
	}

	limiterMetrics := ratelimit.NewPrometheusMetrics()
	prometheus.MustRegister(limiterMetrics.Collectors()...)
	limiter := ratelimit.NewIntervalLimiter("jikan", upCfg.MinInterval, ratelimit.WithMetrics(limiterMetrics))
	client := jikan.NewClient(upCfg, limiter)

	respCache := cache.NewMemory(upCfg.CacheTTL, cache.WithMetrics(metrics.CacheMetrics{}))
	catalog := catUC.NewService(jikan.NewCatalog(client), respCache)
	catalog.Moods = moods
	catalog.NewsReferenceID = upCfg.NewsReferenceID

	logger.Info("upstream configured",
		slog.String("base_url", upCfg.BaseURL),
		slog.Duration("min_interval", upCfg.MinInterval),
		slog.Int("retry_max_attempts", upCfg.Retry.MaxAttempts),
		slog.Duration("cache_ttl", upCfg.CacheTTL))

	components := &ServerComponents{}
	mux := http.NewServeMux()
	animeHandler := &hanime.Handler{Catalog: catalog, Logger: logger}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		database, tokens, err := setupAccounts(ctx, logger, mux, dsn)
		if err != nil {
			return nil, err
		}
		components.DB = database
		animeHandler.Tokens = tokens
		animeHandler.History = &libUC.Library{History: pgRepo.NewHistoryRepo(database)}
	} else {
		logger.Warn("DATABASE_URL not set, account, favorites and history routes are disabled")
	}

	hanime.Register(mux, animeHandler)

	mux.Handle("GET /health", &hhttp.HealthHandler{
		DB:      components.DB,
		Cache:   respCache,
		Circuit: client.Breaker(),
		Version: version,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: components.DB})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	warmerMetrics := worker.NewMetrics(prometheus.DefaultRegisterer)
	warmerCfg := worker.LoadConfigFromEnv(logger, warmerMetrics)
	if warmerCfg.Enabled {
		w := worker.NewWarmer(catalog, warmerCfg, logger, warmerMetrics)
		if err := w.Start(ctx); err != nil {
			return nil, err
		}
		components.Warmer = w
	} else {
		logger.Info("cache warmer disabled")
	}

	handler, err := applyMiddleware(logger, mux)
	if err != nil {
		return nil, err
	}
	components.Handler = handler
	return components, nil
}

// setupAccounts opens the database, migrates it and mounts the account,
// favorites and history routes.
func setupAccounts(ctx context.Context, logger *slog.Logger, mux *http.ServeMux, dsn string) (*sql.DB, *hauth.TokenIssuer, error) {
	secret := os.Getenv("JWT_SECRET")
	if err := hauth.ValidateJWTSecret(secret); err != nil {
		return nil, nil, fmt.Errorf("JWT_SECRET: %w", err)
	}

	database, err := db.Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := db.MigrateUp(ctx, database); err != nil {
		_ = database.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	go db.ReportStats(ctx, database, 15*time.Second)

	tokens := hauth.NewTokenIssuer(secret, pkgconfig.GetEnvDuration("JWT_TTL", hauth.DefaultTokenTTL))
	accounts := &libUC.Accounts{Users: pgRepo.NewUserRepo(database)}
	lib := &libUC.Library{
		Favorites: pgRepo.NewFavoriteRepo(database),
		History:   pgRepo.NewHistoryRepo(database),
	}

	hauth.Register(mux, &hauth.Handler{
		Accounts:     accounts,
		Tokens:       tokens,
		SecureCookie: pkgconfig.GetEnvBool("COOKIE_SECURE", false),
	})
	hlibrary.Register(mux, &hlibrary.Handler{Svc: lib}, tokens)

	logger.Info("accounts enabled", slog.Duration("token_ttl", tokens.TTL()))
	return database, tokens, nil
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: CORS → Request ID → IP Rate Limit → Recovery → Logging → Body Limit
// → Input Validation → Security Headers → Timeout → Metrics → Tracing
func applyMiddleware(logger *slog.Logger, handler http.Handler) (http.Handler, error) {
	corsConfig := middleware.LoadCORSConfig()
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	mws := []hhttp.Middleware{
		middleware.CORS(corsConfig),
		requestid.Middleware,
	}

	rlCfg := pkgconfig.LoadInboundRateLimitConfig()
	if rlCfg.Enabled {
		extractor, err := middleware.NewIPExtractor(rlCfg.TrustedProxies)
		if err != nil {
			return nil, fmt.Errorf("trusted proxies: %w", err)
		}
		limiter := middleware.NewIPRateLimiter(rlCfg.RequestsPerSecond, rlCfg.Burst, rlCfg.IdleTTL, extractor)
		mws = append(mws, limiter.Middleware)
		logger.Info("rate limiting initialized",
			slog.Float64("rps", rlCfg.RequestsPerSecond),
			slog.Int("burst", rlCfg.Burst),
			slog.Int("trusted_proxies_count", len(rlCfg.TrustedProxies)))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	secCfg := middleware.LoadSecurityConfig()
	if !secCfg.CSPEnabled {
		logger.Warn("CSP is disabled")
	}

	mws = append(mws,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(maxRequestBody),
		hhttp.InputValidation(),
		middleware.SecurityHeaders(secCfg),
		hhttp.Timeout(pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", 60*time.Second)),
		hhttp.MetricsMiddleware,
		tracing.Middleware,
	)
	return hhttp.Chain(handler, mws...), nil
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, components *ServerComponents, version string) {
	addr := ":" + pkgconfig.GetEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		logger.Info("shutting down server...")
	case err := <-errCh:
		logger.Error("server failed", slog.Any("error", err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// warmer and pool stats
	cancel()
	logger.Info("server stopped")
}
