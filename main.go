package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/deardiary/deardiary/backend/go-services/handlers"
	"github.com/deardiary/deardiary/backend/go-services/internal/config"
	"github.com/deardiary/deardiary/backend/go-services/internal/database"
	"github.com/deardiary/deardiary/backend/go-services/internal/export"
	"github.com/deardiary/deardiary/backend/go-services/internal/notes"
	"github.com/deardiary/deardiary/backend/go-services/internal/storage"
	"github.com/deardiary/deardiary/backend/go-services/internal/store"
	"github.com/deardiary/deardiary/backend/go-services/pkg/logger"
	"github.com/deardiary/deardiary/backend/go-services/pkg/metrics"
	"github.com/deardiary/deardiary/backend/go-services/pkg/middleware"
)

func main() {
	// LOG_LEVEL is read again from config once it is loaded
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: store=%s mongo=%v redis=%v minio=%v", cfg.Store.Driver, cfg.MongoDB.Configured(), cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	r := gin.New()
	r.Use(middleware.CORS(cfg.Server.AllowOrigins), middleware.Tracing("deardiary-api"), middleware.RequestLogger(), gin.Recovery())

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis %s:%s not reachable, rate limiter stays in memory: %v", cfg.Redis.Host, cfg.Redis.Port, err)
			_ = rdb.Close()
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	gw, closeStore := database.Open(ctx, cfg)
	defer closeStore(context.Background())

	idxCtx, cancelIdx := context.WithTimeout(ctx, 30*time.Second)
	if err := store.EnsureIndexes(idxCtx, gw, append(notes.Indexes(), export.Indexes()...)); err != nil {
		logger.Warnf("index setup failed: %v", err)
	}
	cancelIdx()

	noteSvc := notes.NewService(gw)

	var archive export.Archive
	if cfg.MinIO.Endpoint != "" {
		if s, err := storage.NewMinIOStorage(ctx, cfg.MinIO); err != nil {
			logger.Warnf("export archive disabled: %v", err)
		} else {
			archive = storage.WithBreaker(s, "minio", 30*time.Second)
			logger.Infof("export archive: bucket %s on %s", s.Bucket(), cfg.MinIO.Endpoint)
		}
	}

	handlers.RegisterRoutes(r, handlers.Deps{
		Store:  gw,
		Info:   handlers.StoreInfo{DatabaseURLSet: cfg.MongoDB.URI != "", DatabaseNameSet: cfg.MongoDB.Database != ""},
		Notes:  noteSvc,
		Export: export.NewService(gw, noteSvc, archive),
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("Dear Diary API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
