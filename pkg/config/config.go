package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Insights     InsightsConfig
	RateLimit    RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SELLERBOARD_APP_ENV" required:"true"`
	Port         string `envconfig:"SELLERBOARD_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SELLERBOARD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SELLERBOARD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SELLERBOARD_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SELLERBOARD_DB_DSN"`
	Driver string `envconfig:"SELLERBOARD_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SELLERBOARD_DB_HOST"`
	LegacyPort     int    `envconfig:"SELLERBOARD_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SELLERBOARD_DB_USER"`
	LegacyPassword string `envconfig:"SELLERBOARD_DB_PASSWORD"`
	LegacyName     string `envconfig:"SELLERBOARD_DB_NAME"`
	LegacySSLMode  string `envconfig:"SELLERBOARD_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SELLERBOARD_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SELLERBOARD_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SELLERBOARD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SELLERBOARD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SELLERBOARD_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SELLERBOARD_REDIS_ADDR"`
	Password     string        `envconfig:"SELLERBOARD_REDIS_PASSWORD"`
	DB           int           `envconfig:"SELLERBOARD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SELLERBOARD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SELLERBOARD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SELLERBOARD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SELLERBOARD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SELLERBOARD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SELLERBOARD_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SELLERBOARD_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SELLERBOARD_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SELLERBOARD_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SELLERBOARD_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"SELLERBOARD_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"SELLERBOARD_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	SnapshotTopic        string `envconfig:"SELLERBOARD_PUBSUB_SNAPSHOT_TOPIC" default:"sb-scrape-snapshots"`
	SnapshotSubscription string `envconfig:"SELLERBOARD_PUBSUB_SNAPSHOT_SUBSCRIPTION"`
}

type InsightsConfig struct {
	APIKey   string        `envconfig:"SELLERBOARD_INSIGHTS_API_KEY"`
	BaseURL  string        `envconfig:"SELLERBOARD_INSIGHTS_BASE_URL" default:"https://api.openai.com/v1"`
	Model    string        `envconfig:"SELLERBOARD_INSIGHTS_MODEL" default:"gpt-4o-mini"`
	Timeout  time.Duration `envconfig:"SELLERBOARD_INSIGHTS_TIMEOUT" default:"30s"`
	CacheTTL time.Duration `envconfig:"SELLERBOARD_INSIGHTS_CACHE_TTL" default:"1h"`
	Cooldown time.Duration `envconfig:"SELLERBOARD_INSIGHTS_COOLDOWN" default:"30s"`
}

type RateLimitConfig struct {
	InsightsWindow     time.Duration `envconfig:"SELLERBOARD_RATE_LIMIT_INSIGHTS_WINDOW" default:"1m"`
	InsightsIPLimit    int           `envconfig:"SELLERBOARD_RATE_LIMIT_INSIGHTS_IP_LIMIT" default:"10"`
	InsightsStoreLimit int           `envconfig:"SELLERBOARD_RATE_LIMIT_INSIGHTS_STORE_LIMIT" default:"5"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
