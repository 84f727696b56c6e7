package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "PROMOSTORE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv           = "PROMOSTORE_APP_ENV"
	EnvPort             = "PROMOSTORE_APP_PORT"
	EnvLogLevel         = "PROMOSTORE_LOG_LEVEL"
	EnvCartStorage      = "PROMOSTORE_CART_STORAGE"
	EnvCartFileDir      = "PROMOSTORE_CART_FILE_DIR"
	EnvRedisURL         = "PROMOSTORE_REDIS_URL"
	EnvRedisAddr        = "PROMOSTORE_REDIS_ADDR"
	EnvDBDSN            = "PROMOSTORE_DB_DSN"
	EnvDBDriver         = "PROMOSTORE_DB_DRIVER"
	EnvBrowseDelay      = "PROMOSTORE_BROWSE_DELAY"
	EnvQuotationExport  = "PROMOSTORE_QUOTATION_EXPORT"
	EnvHTTPAllowOrigins = "PROMOSTORE_HTTP_ALLOWED_ORIGINS"
)

// Cart storage backends.
const (
	CartStorageMemory = "memory"
	CartStorageFile   = "file"
	CartStorageRedis  = "redis"
	CartStorageSQL    = "sql"
)

// Quotation export formats.
const (
	QuotationExportHTML = "html"
	QuotationExportPDF  = "pdf"
)

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Cart      CartConfig
	Redis     RedisConfig
	DB        DBConfig
	Browse    BrowseConfig
	Quotation QuotationConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PROMOSTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"PROMOSTORE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PROMOSTORE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"PROMOSTORE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"PROMOSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `envconfig:"PROMOSTORE_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"PROMOSTORE_HTTP_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"PROMOSTORE_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	AllowedOrigins  []string      `envconfig:"PROMOSTORE_HTTP_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

type CartConfig struct {
	Storage       string        `envconfig:"PROMOSTORE_CART_STORAGE" default:"memory"`
	FileDir       string        `envconfig:"PROMOSTORE_CART_FILE_DIR" default:"./data/carts"`
	TTL           time.Duration `envconfig:"PROMOSTORE_CART_TTL" default:"720h"`
	MaxOpenStores int           `envconfig:"PROMOSTORE_CART_MAX_OPEN_STORES" default:"1024"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PROMOSTORE_REDIS_URL"`
	Address      string        `envconfig:"PROMOSTORE_REDIS_ADDR"`
	Password     string        `envconfig:"PROMOSTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROMOSTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROMOSTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROMOSTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROMOSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROMOSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PROMOSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type DBConfig struct {
	DSN         string `envconfig:"PROMOSTORE_DB_DSN"`
	Driver      string `envconfig:"PROMOSTORE_DB_DRIVER" default:"postgres"`
	AutoMigrate bool   `envconfig:"PROMOSTORE_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"PROMOSTORE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PROMOSTORE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PROMOSTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROMOSTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite one.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), "sqlite")
}

type BrowseConfig struct {
	Delay       time.Duration `envconfig:"PROMOSTORE_BROWSE_DELAY" default:"500ms"`
	MaxSessions int           `envconfig:"PROMOSTORE_BROWSE_MAX_SESSIONS" default:"1024"`
}

type QuotationConfig struct {
	Export     string        `envconfig:"PROMOSTORE_QUOTATION_EXPORT" default:"html"`
	ChromePath string        `envconfig:"PROMOSTORE_CHROME_PATH"`
	Timeout    time.Duration `envconfig:"PROMOSTORE_QUOTATION_EXPORT_TIMEOUT" default:"30s"`
}

func (c *Config) validate() error {
	c.Cart.Storage = strings.ToLower(strings.TrimSpace(c.Cart.Storage))
	switch c.Cart.Storage {
	case CartStorageMemory:
	case CartStorageFile:
		if strings.TrimSpace(c.Cart.FileDir) == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvCartFileDir, EnvCartStorage, CartStorageFile)
		}
	case CartStorageRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required when %s=%s", EnvRedisURL, EnvRedisAddr, EnvCartStorage, CartStorageRedis)
		}
	case CartStorageSQL:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvCartStorage, CartStorageSQL)
		}
		switch strings.ToLower(strings.TrimSpace(c.DB.Driver)) {
		case "postgres", "sqlite":
		default:
			return fmt.Errorf("unsupported %s %q", EnvDBDriver, c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvCartStorage, c.Cart.Storage)
	}

	c.Quotation.Export = strings.ToLower(strings.TrimSpace(c.Quotation.Export))
	switch c.Quotation.Export {
	case QuotationExportHTML, QuotationExportPDF:
	default:
		return fmt.Errorf("unsupported %s %q", EnvQuotationExport, c.Quotation.Export)
	}

	if c.Browse.Delay < 0 {
		return fmt.Errorf("%s must not be negative", EnvBrowseDelay)
	}
	return nil
}
