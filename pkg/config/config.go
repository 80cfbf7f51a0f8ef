package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

const (
	EnvPrefix = "PRODUCERS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"

	EnvAppEnv        = "PRODUCERS_APP_ENV"
	EnvPort          = "PRODUCERS_APP_PORT"
	EnvPublicBaseURL = "PRODUCERS_PUBLIC_BASE_URL"
	EnvDBDSN         = "PRODUCERS_DB_DSN"
	EnvDBDriver      = "PRODUCERS_DB_DRIVER"
	EnvDBHost        = "PRODUCERS_DB_HOST"
	EnvDBUser        = "PRODUCERS_DB_USER"
	EnvDBName        = "PRODUCERS_DB_NAME"
	EnvStorage       = "PRODUCERS_STORAGE_BACKEND"
	EnvS3Bucket      = "PRODUCERS_S3_BUCKET"
	EnvS3Region      = "PRODUCERS_S3_REGION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
	Storage      StorageConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := multierr.Combine(
		cfg.DB.ensureDSN(),
		cfg.Storage.validate(),
		cfg.App.validate(),
	); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"PRODUCERS_APP_ENV" required:"true"`
	Port            string        `envconfig:"PRODUCERS_APP_PORT" default:"8000"`
	LogLevel        string        `envconfig:"PRODUCERS_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"PRODUCERS_LOG_WARN_STACK" default:"false"`
	PublicBaseURL   string        `envconfig:"PRODUCERS_PUBLIC_BASE_URL"`
	ShutdownTimeout time.Duration `envconfig:"PRODUCERS_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

func (a AppConfig) validate() error {
	if a.PublicBaseURL == "" {
		return nil
	}
	u, err := url.Parse(a.PublicBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute url", EnvPublicBaseURL)
	}
	return nil
}

type DBConfig struct {
	DSN    string `envconfig:"PRODUCERS_DB_DSN"`
	Driver string `envconfig:"PRODUCERS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PRODUCERS_DB_HOST"`
	LegacyPort     int    `envconfig:"PRODUCERS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PRODUCERS_DB_USER"`
	LegacyPassword string `envconfig:"PRODUCERS_DB_PASSWORD"`
	LegacyName     string `envconfig:"PRODUCERS_DB_NAME"`
	LegacySSLMode  string `envconfig:"PRODUCERS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRODUCERS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRODUCERS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRODUCERS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRODUCERS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	SlowQuery       time.Duration `envconfig:"PRODUCERS_DB_SLOW_QUERY" default:"500ms"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PRODUCERS_AUTO_MIGRATE" default:"false"`
}

// StorageConfig selects where producer images live. Only URL resolution happens here;
// uploads are handled outside this service.
type StorageConfig struct {
	Backend  string `envconfig:"PRODUCERS_STORAGE_BACKEND" default:"local"`
	MediaURL string `envconfig:"PRODUCERS_MEDIA_URL" default:"/media/"`

	S3Bucket    string `envconfig:"PRODUCERS_S3_BUCKET"`
	S3Region    string `envconfig:"PRODUCERS_S3_REGION" default:"eu-west-1"`
	S3Endpoint  string `envconfig:"PRODUCERS_S3_ENDPOINT"`
	S3AccessKey string `envconfig:"PRODUCERS_S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"PRODUCERS_S3_SECRET_KEY"`
	S3PathStyle bool   `envconfig:"PRODUCERS_S3_PATH_STYLE" default:"false"`
	CDNDomain   string `envconfig:"PRODUCERS_CDN_DOMAIN"`
	BasePath    string `envconfig:"PRODUCERS_S3_BASE_PATH"`
}

func (s StorageConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Backend)) {
	case StorageLocal:
		return nil
	case StorageS3:
		var err error
		if s.S3Bucket == "" {
			err = multierr.Append(err, fmt.Errorf("%s is required for the s3 backend", EnvS3Bucket))
		}
		if s.S3Region == "" {
			err = multierr.Append(err, fmt.Errorf("%s is required for the s3 backend", EnvS3Region))
		}
		return err
	default:
		return fmt.Errorf("%s must be one of %s, %s", EnvStorage, StorageLocal, StorageS3)
	}
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PRODUCERS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	MaxAge         int      `envconfig:"PRODUCERS_CORS_MAX_AGE" default:"300"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "producers.db"
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
