package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"kyntel/internal/audit"
	"kyntel/internal/audit/publisher"
	"kyntel/internal/cluster"
	clusterHandler "kyntel/internal/cluster/handler"
	clusterMetrics "kyntel/internal/cluster/metrics"
	"kyntel/internal/graph"
	graphHandler "kyntel/internal/graph/handler"
	graphMetrics "kyntel/internal/graph/metrics"
	"kyntel/internal/jwtauth"
	"kyntel/internal/platform/config"
	"kyntel/internal/platform/httpserver"
	"kyntel/internal/platform/logger"
	"kyntel/internal/platform/middleware"
	platformredis "kyntel/internal/platform/redis"
	"kyntel/internal/registry"
	registryStore "kyntel/internal/registry/store"
	"kyntel/internal/risk"
	riskHandler "kyntel/internal/risk/handler"
	riskMetrics "kyntel/internal/risk/metrics"
	riskStore "kyntel/internal/risk/store"
	"kyntel/internal/timeline"
	timelineHandler "kyntel/internal/timeline/handler"
	timelineMetrics "kyntel/internal/timeline/metrics"
	httptransport "kyntel/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var checks []httptransport.HealthCheck

	// Registry snapshot store: Postgres when configured, in-memory otherwise.
	var source registry.Source
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("ping postgres", "error", err)
			os.Exit(1)
		}
		source = registryStore.NewPostgres(db)
		checks = append(checks, httptransport.HealthCheck{Name: "postgres", Check: db.PingContext})
	} else {
		log.Warn("KYNTEL_POSTGRES_DSN not set, using in-memory registry store")
		source = registryStore.NewMemory()
	}

	// Assessment cache: Redis when configured, otherwise uncached.
	var assessmentCache risk.AssessmentStore
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		assessmentCache = riskStore.NewRedis(redisClient.Client, cfg.AssessmentCacheTTL)
		checks = append(checks, httptransport.HealthCheck{Name: "redis", Check: redisClient.Health})
	} else {
		log.Warn("KYNTEL_REDIS_URL not set, assessment caching disabled")
	}

	// Audit trail: Kafka when configured, in-memory buffer otherwise.
	var auditor audit.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := publisher.NewKafka(ctx, cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		auditor = kafka
	} else {
		log.Warn("KYNTEL_KAFKA_BROKERS not set, audit events stay in memory")
		auditor = publisher.NewMemory()
	}

	clusterSvc := cluster.New(cluster.ThresholdsFromEnv(), log, clusterMetrics.New(), auditor)
	riskSvc, err := risk.New(
		source,
		source,
		assessmentCache,
		risk.WeightsFromEnv(),
		cfg.FetchTimeout,
		log,
		riskMetrics.New(),
		auditor,
	)
	if err != nil {
		log.Error("build risk service", "error", err)
		os.Exit(1)
	}
	graphSvc := graph.New(log, graphMetrics.New(), auditor)
	timelineSvc := timeline.New(source, cfg.FetchTimeout, log, timelineMetrics.New(), auditor)

	var auth func(http.Handler) http.Handler
	if cfg.JWTSigningKey != "" {
		auth = middleware.RequireAuth(jwtauth.New(cfg.JWTSigningKey), log)
	} else {
		log.Warn("KYNTEL_JWT_SIGNING_KEY not set, endpoints are unauthenticated")
	}

	router := httptransport.NewRouter(log, auth, checks,
		clusterHandler.New(clusterSvc, log),
		riskHandler.New(riskSvc, log),
		graphHandler.New(graphSvc, log),
		timelineHandler.New(timelineSvc, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting kyntel", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
