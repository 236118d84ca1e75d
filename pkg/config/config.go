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
	DB           DBConfig
	Redis        RedisConfig
	Quote        QuoteConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = "file:smileroute.db?_fk=1"
		}
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SMILEROUTE_APP_ENV" required:"true"`
	Port         string `envconfig:"SMILEROUTE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SMILEROUTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMILEROUTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SMILEROUTE_DB_DSN"`
	Driver string `envconfig:"SMILEROUTE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SMILEROUTE_DB_HOST"`
	Port     int    `envconfig:"SMILEROUTE_DB_PORT" default:"5432"`
	User     string `envconfig:"SMILEROUTE_DB_USER"`
	Password string `envconfig:"SMILEROUTE_DB_PASSWORD"`
	Name     string `envconfig:"SMILEROUTE_DB_NAME"`
	SSLMode  string `envconfig:"SMILEROUTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SMILEROUTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SMILEROUTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SMILEROUTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SMILEROUTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SMILEROUTE_REDIS_URL"`
	Address      string        `envconfig:"SMILEROUTE_REDIS_ADDR"`
	Password     string        `envconfig:"SMILEROUTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMILEROUTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMILEROUTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMILEROUTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMILEROUTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMILEROUTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMILEROUTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// QuoteConfig tunes the quote session engine and submission adapter.
type QuoteConfig struct {
	SessionTTL        time.Duration `envconfig:"SMILEROUTE_QUOTE_SESSION_TTL" default:"24h"`
	SubmissionTimeout time.Duration `envconfig:"SMILEROUTE_QUOTE_SUBMISSION_TIMEOUT" default:"10s"`
	PromoCacheTTL     time.Duration `envconfig:"SMILEROUTE_PROMO_CACHE_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SMILEROUTE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SMILEROUTE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, envVar := range requiredDBEnvVars {
		if values[envVar] == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
