// Package config builds typed configuration from environment variables so the
// commands stay lean. Every value has a development default.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DraftBackend selects the Draft Store implementation.
type DraftBackend string

const (
	DraftBackendMemory   DraftBackend = "memory"
	DraftBackendSQLite   DraftBackend = "sqlite"
	DraftBackendRedis    DraftBackend = "redis"
	DraftBackendPostgres DraftBackend = "postgres"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Session configures the browser session cookie.
type Session struct {
	CookieName string
	HashKey    string
	BlockKey   string
	MaxAge     time.Duration
	Secure     bool
}

// DraftStore selects and tunes the Draft Store backend.
type DraftStore struct {
	Backend DraftBackend
	TTL     time.Duration
}

// RedisConfig configures the Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the Postgres connection pool.
type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SQLiteConfig configures the file-backed Draft Store.
type SQLiteConfig struct {
	Path string
}

// Collaborator configures the request-processing and identity API clients.
type Collaborator struct {
	RequestsBaseURL  string
	IdentityBaseURL  string
	Timeout          time.Duration
	FailureThreshold int
	Cooldown         time.Duration
}

// Payment configures the consultation checkpoint.
type Payment struct {
	ConsultationFee decimal.Decimal
	Currency        string
}

// Kafka configures the audit publisher. An empty broker list disables it.
type Kafka struct {
	Brokers    []string
	AuditTopic string
	ClientID   string
	// AuditPartitions and AuditReplication size the audit topic when it is
	// created on startup. -1 leaves the choice to the broker.
	AuditPartitions  int32
	AuditReplication int16
}

// Identity configures the reference identity resolving party.
type Identity struct {
	Addr          string
	JWTSigningKey string
	TokenTTL      time.Duration
	OTPTTL        time.Duration
	OTPBcryptCost int
	DeviceBinding bool
	OTPBackend    string
	SeedAccounts  map[string]string
}

// Config is the full service configuration.
type Config struct {
	Server       Server
	Session      Session
	DraftStore   DraftStore
	Redis        RedisConfig
	Postgres     PostgresConfig
	SQLite       SQLiteConfig
	Collaborator Collaborator
	Payment      Payment
	Kafka        Kafka
	Identity     Identity
	LogLevel     string
	LogFormat    string
}

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	fee, err := decimal.NewFromString(getEnv("CONSULTATION_FEE", "29.00"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CONSULTATION_FEE: %w", err)
	}
	if !fee.IsPositive() {
		return Config{}, fmt.Errorf("CONSULTATION_FEE must be positive")
	}

	backend := DraftBackend(getEnv("DRAFT_STORE_BACKEND", string(DraftBackendSQLite)))
	switch backend {
	case DraftBackendMemory, DraftBackendSQLite, DraftBackendRedis, DraftBackendPostgres:
	default:
		return Config{}, fmt.Errorf("unknown DRAFT_STORE_BACKEND %q", backend)
	}

	cfg := Config{
		Server: Server{
			Addr:            getEnv("RXINTAKE_ADDR", ":8080"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			RequestTimeout:  getDuration("REQUEST_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Session: Session{
			CookieName: getEnv("SESSION_COOKIE_NAME", "rx_session"),
			// Use a default for development - should be overridden in production
			HashKey:  getEnv("SESSION_HASH_KEY", "dev-session-hash-key-change-in-production"),
			BlockKey: os.Getenv("SESSION_BLOCK_KEY"),
			MaxAge:   getDuration("SESSION_MAX_AGE", 7*24*time.Hour),
			Secure:   getBool("SESSION_SECURE", false),
		},
		DraftStore: DraftStore{
			Backend: backend,
			TTL:     getDuration("DRAFT_STORE_TTL", 7*24*time.Hour),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			DSN:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "rxintake-drafts.db"),
		},
		Collaborator: Collaborator{
			RequestsBaseURL:  getEnv("REQUESTS_API_URL", "http://localhost:9090"),
			IdentityBaseURL:  getEnv("IDENTITY_API_URL", "http://localhost:8081"),
			Timeout:          getDuration("COLLABORATOR_TIMEOUT", 10*time.Second),
			FailureThreshold: getInt("COLLABORATOR_FAILURE_THRESHOLD", 5),
			Cooldown:         getDuration("COLLABORATOR_COOLDOWN", 30*time.Second),
		},
		Payment: Payment{
			ConsultationFee: fee,
			Currency:        strings.ToUpper(getEnv("PAYMENT_CURRENCY", "EUR")),
		},
		Kafka: Kafka{
			Brokers:          splitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic:       getEnv("KAFKA_AUDIT_TOPIC", "rxintake.audit"),
			ClientID:         getEnv("KAFKA_CLIENT_ID", "rxintake"),
			AuditPartitions:  int32(getInt("KAFKA_AUDIT_PARTITIONS", -1)),
			AuditReplication: int16(getInt("KAFKA_AUDIT_REPLICATION", -1)),
		},
		Identity: Identity{
			Addr: getEnv("IDENTITY_ADDR", ":8081"),
			// Use a default for development - should be overridden in production
			JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			TokenTTL:      getDuration("IDENTITY_TOKEN_TTL", time.Hour),
			OTPTTL:        getDuration("OTP_TTL", 10*time.Minute),
			OTPBcryptCost: getInt("OTP_BCRYPT_COST", 10),
			DeviceBinding: getBool("DEVICE_BINDING_ENABLED", true),
			OTPBackend:    getEnv("OTP_STORE_BACKEND", "memory"),
			SeedAccounts:  parseSeedAccounts(os.Getenv("IDENTITY_SEED_ACCOUNTS")),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if cfg.DraftStore.Backend == DraftBackendRedis && cfg.Redis.URL == "" {
		return Config{}, fmt.Errorf("REDIS_URL is required for the redis draft store")
	}
	if cfg.DraftStore.Backend == DraftBackendPostgres && cfg.Postgres.DSN == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required for the postgres draft store")
	}
	return cfg, nil
}

// IsDevelopment reports whether dev-only conveniences may be enabled.
func (c Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseSeedAccounts reads "email=patientID,email=patientID".
func parseSeedAccounts(s string) map[string]string {
	accounts := make(map[string]string)
	for _, pair := range splitList(s) {
		email, patientID, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		accounts[strings.ToLower(strings.TrimSpace(email))] = strings.TrimSpace(patientID)
	}
	return accounts
}
