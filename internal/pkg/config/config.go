package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, gateway secret)
// - default: Values common across all environments (timezone, timeouts, business rules)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	AMQP    AMQPConfig
	Gateway GatewayConfig
	Booking BookingConfig
	Sweeper SweeperConfig
	CORS    CORSConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" required:"true"`
	Password      string `envconfig:"DB_PASSWORD" required:"true"`
	DBName        string `envconfig:"DB_NAME" required:"true"`
	SSLMode       string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone      string `envconfig:"DB_TIMEZONE" default:"Asia/Dhaka"`
	MaxConns      int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	RunMigrations bool   `envconfig:"DB_RUN_MIGRATIONS" default:"true"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	// Empty address disables the advisory lock and rate limiter.
	Enabled bool `envconfig:"REDIS_ENABLED" default:"true"`
}

type AMQPConfig struct {
	URL      string `envconfig:"AMQP_URL" default:""`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"booking_events"`
}

type GatewayConfig struct {
	// sandbox accepts every delivery as verified; live calls the validation API.
	Mode           string        `envconfig:"GATEWAY_MODE" default:"sandbox"`
	StoreID        string        `envconfig:"GATEWAY_STORE_ID" default:""`
	StorePassword  string        `envconfig:"GATEWAY_STORE_PASSWORD" default:""`
	SigningSecret  string        `envconfig:"GATEWAY_SIGNING_SECRET" required:"true"`
	ValidationURL  string        `envconfig:"GATEWAY_VALIDATION_URL" default:"https://sandbox.sslcommerz.com/validator/api/validationserverAPI.php"`
	VerifyTimeout  time.Duration `envconfig:"GATEWAY_VERIFY_TIMEOUT" default:"5s"`
	AmountScale    int32         `envconfig:"GATEWAY_AMOUNT_SCALE" default:"0"`
	IdempotencyTTL time.Duration `envconfig:"GATEWAY_IDEMPOTENCY_TTL" default:"720h"`
}

type BookingConfig struct {
	HoldWindow         time.Duration `envconfig:"BOOKING_HOLD_WINDOW" default:"10m"`
	AdvanceRateBps     int64         `envconfig:"BOOKING_ADVANCE_RATE_BPS" default:"1000"`
	CommissionRateBps  int64         `envconfig:"BOOKING_COMMISSION_RATE_BPS" default:"500"`
	ProcessingFee      int64         `envconfig:"BOOKING_PROCESSING_FEE" default:"50"`
	LockTTL            time.Duration `envconfig:"BOOKING_LOCK_TTL" default:"30s"`
	RateLimitPerWindow int           `envconfig:"BOOKING_RATE_LIMIT" default:"10"`
	RateLimitWindow    time.Duration `envconfig:"BOOKING_RATE_LIMIT_WINDOW" default:"1m"`
}

type SweeperConfig struct {
	Enabled          bool   `envconfig:"SWEEPER_ENABLED" default:"true"`
	ExpirySchedule   string `envconfig:"SWEEPER_EXPIRY_SCHEDULE" default:"@every 30s"`
	CompleteSchedule string `envconfig:"SWEEPER_COMPLETE_SCHEDULE" default:"@every 5m"`
	PurgeSchedule    string `envconfig:"SWEEPER_PURGE_SCHEDULE" default:"@every 1h"`
	BatchSize        int    `envconfig:"SWEEPER_BATCH_SIZE" default:"100"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-User-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Dhaka"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"21600"` // 6*60*60
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c GatewayConfig) IsLive() bool {
	return c.Mode == "live"
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Dhaka",
			MaxConns: 20,
		},
		Redis: RedisConfig{
			Enabled: false,
		},
		AMQP: AMQPConfig{
			Exchange: "booking_events",
		},
		Gateway: GatewayConfig{
			Mode:           "sandbox",
			SigningSecret:  "test-signing-secret",
			VerifyTimeout:  time.Second,
			IdempotencyTTL: time.Hour,
		},
		Booking: BookingConfig{
			HoldWindow:         10 * time.Minute,
			AdvanceRateBps:     1000,
			CommissionRateBps:  500,
			ProcessingFee:      50,
			LockTTL:            30 * time.Second,
			RateLimitPerWindow: 100,
			RateLimitWindow:    time.Minute,
		},
		Sweeper: SweeperConfig{
			Enabled:   false,
			BatchSize: 100,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Dhaka",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 21600,
		},
	}
}
