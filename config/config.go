package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Port   string `env:"PORT" envDefault:"8080"`

	DBType         string `env:"DB_TYPE" envDefault:"mongo"`
	MongoURL       string `env:"MONGO_URL" envDefault:"mongodb://localhost:27017/?replicaSet=rs0"`
	MongoDatabase  string `env:"MONGO_DATABASE" envDefault:"givebridge"`
	PostgresURL    string `env:"POSTGRES_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://db/migrations"`

	JWTSecret  string        `env:"JWT_SECRET,required,notEmpty"`
	JWTIssuer  string        `env:"JWT_ISSUER" envDefault:"givebridge"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"12"`

	// Image uploads: "local" writes to UploadDir, "r2" pushes to Cloudflare R2.
	ImageStore    string `env:"IMAGE_STORE" envDefault:"local"`
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"uploads/images"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"5242880"`

	R2Bucket          string `env:"R2_BUCKET"`
	R2AccountID       string `env:"R2_ACCOUNT_ID"`
	R2PublicURL       string `env:"R2_PUBLIC_URL"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`

	// Rate limiting on signup/login is disabled when RedisURL is empty.
	RedisURL       string `env:"REDIS_URL"`
	RateLimitRPS   int    `env:"RATE_LIMIT_RPS" envDefault:"1"`
	RateLimitBurst int    `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// TrustProxy takes the client address from X-Forwarded-For/X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	CORSAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"20s"`
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBType {
	case "mongo":
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required when DB_TYPE=mongo")
		}
	case "postgres":
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when DB_TYPE=postgres")
		}
	default:
		return fmt.Errorf("DB_TYPE %q not supported", c.DBType)
	}

	switch c.ImageStore {
	case "local":
	case "r2":
		if c.R2Bucket == "" || c.R2AccountID == "" || c.R2PublicURL == "" {
			return fmt.Errorf("missing required R2 environment variables")
		}
	default:
		return fmt.Errorf("IMAGE_STORE %q not supported", c.ImageStore)
	}

	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
