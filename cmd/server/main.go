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

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	auditsvc "ownerverify/internal/audit"
	certhandler "ownerverify/internal/certificate/handler"
	certmetrics "ownerverify/internal/certificate/metrics"
	"ownerverify/internal/certificate/renderer"
	certservice "ownerverify/internal/certificate/service"
	certstore "ownerverify/internal/certificate/store"
	httpapi "ownerverify/internal/http"
	jwttoken "ownerverify/internal/jwt_token"
	"ownerverify/internal/notification"
	ownerhandler "ownerverify/internal/owner/handler"
	ownerservice "ownerverify/internal/owner/service"
	ownerstore "ownerverify/internal/owner/store"
	"ownerverify/internal/platform/blobstore"
	"ownerverify/internal/platform/config"
	"ownerverify/internal/platform/httpserver"
	"ownerverify/internal/platform/kafka/producer"
	"ownerverify/internal/platform/logger"
	"ownerverify/internal/platform/metrics"
	"ownerverify/internal/platform/postgres"
	platformredis "ownerverify/internal/platform/redis"
	ratemw "ownerverify/internal/ratelimit/middleware"
	ratemodels "ownerverify/internal/ratelimit/models"
	"ownerverify/internal/ratelimit/store/bucket"
	"ownerverify/internal/storage"
	verificationhandler "ownerverify/internal/verification/handler"
	verificationmetrics "ownerverify/internal/verification/metrics"
	"ownerverify/internal/verification/ports"
	verificationservice "ownerverify/internal/verification/service"
	verificationstore "ownerverify/internal/verification/store"
	auditpostgres "ownerverify/pkg/platform/audit/store/postgres"
	"ownerverify/pkg/platform/audit/worker"
	"ownerverify/pkg/platform/circuit"
	"ownerverify/pkg/platform/middleware/metadata"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run wires dependencies and blocks until ctx is cancelled or a component fails.
func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	health := map[string]httpapi.HealthCheck{}

	var (
		stores ports.Stores
		tx     ports.TxRunner
		outbox worker.Outbox
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		auditStore := auditpostgres.New(db)
		stores = ports.Stores{
			Owners:        ownerstore.NewOwnerPostgres(db),
			Documents:     ownerstore.NewDocumentPostgres(db),
			Attempts:      verificationstore.NewAttemptPostgres(db),
			Verifications: verificationstore.NewDocumentVerificationPostgres(db),
			Certificates:  certstore.NewPostgres(db),
			Audit:         auditStore,
		}
		tx = newVerificationPostgresTx(db, stores)
		outbox = auditStore
		health["postgres"] = db.PingContext
		log.Info("using postgres storage")
	} else {
		memDB := storage.NewDB()
		stores, tx = memDB.Stores(), memDB
		if err := seedDevData(ctx, memDB, cfg, log); err != nil {
			return err
		}
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var cacheClient *redis.Client
	if redisClient != nil {
		defer redisClient.Close()
		health["redis"] = redisClient.Health
		cacheClient = redisClient.Client
	}
	hashCache := certstore.NewHashCache(cacheClient, stores.Certificates, cfg.CertificateCacheTTL, log)

	var buckets ratemw.BucketStore = bucket.NewInMemoryBucketStore()
	if cacheClient != nil {
		buckets = bucket.NewRedisBucketStore(cacheClient)
	}
	rateLimit := ratemw.New(buckets, log, ratemw.WithDisabled(cfg.RateLimit.Disabled))
	clientIPs, err := metadata.NewIPResolver(cfg.TrustedProxies)
	if err != nil {
		return err
	}

	blobs, err := blobstore.New(cfg.Blob.Dir, cfg.AppBaseURL, []byte(cfg.Blob.AppSecret), cfg.Blob.URLTTL)
	if err != nil {
		return err
	}

	var (
		baseNotifier notification.Notifier = notification.NewLogNotifier(log)
		relay        *worker.Worker
	)
	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := producer.New(ctx, cfg.Kafka.Brokers, "ownerverify", log)
		if err != nil {
			return err
		}
		defer kafka.Close()
		if err := kafka.EnsureTopics(ctx, 3, 1, cfg.Kafka.NotificationTopic, cfg.Kafka.AuditTopic); err != nil {
			log.Warn("failed to ensure kafka topics", "error", err)
		}
		health["kafka"] = kafka.Health
		baseNotifier = notification.NewKafkaNotifier(kafka, cfg.Kafka.NotificationTopic)
		if outbox != nil {
			relay = worker.NewWorker(outbox, kafka, cfg.Kafka.AuditTopic,
				worker.WithInterval(cfg.OutboxPollInterval),
				worker.WithLogger(log),
				worker.WithMetrics(worker.NewMetrics()),
			)
		}
	}
	notifier := notification.NewGuarded(baseNotifier,
		notification.WithTimeout(cfg.NotifierTimeout),
		notification.WithBreaker(circuit.New("notifier")),
		notification.WithLogger(log),
		notification.WithMetrics(notification.NewMetrics()),
	)

	auditOpts := append(auditsvc.OwnerResolvers(stores),
		auditsvc.WithLogger(log),
		auditsvc.WithMetrics(auditsvc.NewMetrics()),
	)
	auditService := auditsvc.NewService(stores.Audit, auditOpts...)

	certificates := certservice.New(stores, tx, renderer.New(""), blobs, auditService, cfg.AppBaseURL,
		certservice.WithLogger(log),
		certservice.WithMetrics(certmetrics.New()),
		certservice.WithHashLookup(hashCache),
		certservice.WithDownloadTTL(cfg.Blob.URLTTL),
	)
	verifications := verificationservice.New(stores, tx, certificates, notifier, auditService,
		verificationservice.WithLogger(log),
		verificationservice.WithMetrics(verificationmetrics.New()),
	)
	owners := ownerservice.New(stores.Owners, stores.Documents, blobs, auditService,
		ownerservice.WithLogger(log),
	)

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	router := httpapi.NewRouter(httpapi.Deps{
		Logger:        log,
		Metrics:       metrics.New(),
		Validator:     jwttoken.NewJWTServiceAdapter(jwtService),
		Owners:        ownerhandler.New(owners, log),
		Verifications: verificationhandler.New(verifications, log),
		Certificates:  certhandler.New(certificates, log),
		Blobs:         blobstore.NewHandler(blobs, log),
		Health:        health,
		ClientIPs:     clientIPs,
		RateLimit:     rateLimit,
		VerifyPolicy:  ratemodels.Policy{Limit: cfg.RateLimit.VerifyLimit, Window: cfg.RateLimit.VerifyWindow},
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting ownerverify", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if relay != nil {
		g.Go(func() error {
			if err := relay.Run(gctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
