package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pstrings "ownerverify/pkg/platform/strings"
)

// Server captures process-level configuration.
type Server struct {
	Addr       string
	AppBaseURL string
	LogLevel   string
	LogFormat  string

	DatabaseURL string
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Auth        AuthConfig
	Blob        BlobConfig
	RateLimit   RateLimitConfig

	// TrustedProxies lists the proxy addresses or CIDRs whose forwarding
	// headers are believed. Empty means clients are identified by RemoteAddr.
	TrustedProxies []string

	CertificateCacheTTL time.Duration
	NotifierTimeout     time.Duration
	OutboxPollInterval  time.Duration

	// DevManagerID owns the sample owner seeded into in-memory storage.
	DevManagerID string
}

type DatabaseConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds the certificate lookup cache connection. An empty URL disables caching.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures notification publishing and the audit outbox relay.
// No brokers means notifications go to the log notifier and the relay is not started.
type KafkaConfig struct {
	Brokers           []string
	NotificationTopic string
	AuditTopic        string
}

type AuthConfig struct {
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
}

type BlobConfig struct {
	Dir       string
	AppSecret string
	URLTTL    time.Duration
}

// RateLimitConfig bounds the public verification endpoint per client IP.
type RateLimitConfig struct {
	Disabled     bool
	VerifyLimit  int
	VerifyWindow time.Duration
}

// FromEnv builds a Server config from environment variables, loading a .env
// file first when one exists.
func FromEnv() Server {
	_ = godotenv.Load()

	return Server{
		Addr:       getEnv("OWNERVERIFY_ADDR", ":8080"),
		AppBaseURL: strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8080"), "/"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "json"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:           pstrings.SplitList(os.Getenv("KAFKA_BROKERS"), ","),
			NotificationTopic: getEnv("KAFKA_NOTIFICATION_TOPIC", "ownerverify.notifications"),
			AuditTopic:        getEnv("KAFKA_AUDIT_TOPIC", "ownerverify.audit.activity"),
		},
		Auth: AuthConfig{
			// Development default; deployments must override it.
			JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     getEnv("JWT_ISSUER", "permits-portal"),
			JWTAudience:   getEnv("JWT_AUDIENCE", "ownerverify"),
		},
		Blob: BlobConfig{
			Dir:       getEnv("BLOB_DIR", "./data/blobs"),
			AppSecret: getEnv("APP_SECRET", "dev-app-secret-change-in-production"),
			URLTTL:    getEnvDuration("BLOB_URL_TTL", 15*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Disabled:     getEnvBool("RATE_LIMIT_DISABLED", false),
			VerifyLimit:  getEnvInt("RATE_LIMIT_VERIFY_LIMIT", 60),
			VerifyWindow: getEnvDuration("RATE_LIMIT_VERIFY_WINDOW", time.Minute),
		},
		TrustedProxies: pstrings.SplitList(os.Getenv("TRUSTED_PROXIES"), ","),

		CertificateCacheTTL: getEnvDuration("CERTIFICATE_CACHE_TTL", 10*time.Minute),
		NotifierTimeout:     getEnvDuration("NOTIFIER_TIMEOUT", 3*time.Second),
		OutboxPollInterval:  getEnvDuration("OUTBOX_POLL_INTERVAL", 2*time.Second),

		DevManagerID: os.Getenv("DEV_MANAGER_ID"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
