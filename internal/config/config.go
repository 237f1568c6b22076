package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	MongoURI string `env:"MONGO_URI"`
	MongoDB  string `env:"MONGO_DB" envDefault:"laptopStore"`

	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"2m"`

	NATSURL string `env:"NATS_URL"`

	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"50"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"14"`

	FirebaseProjectID       string   `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string   `env:"FIREBASE_CREDENTIALS_FILE"`
	AdminEmails             []string `env:"ADMIN_EMAILS" envSeparator:","`
	AuthDisabled            bool     `env:"AUTH_DISABLED"`

	MediaCloudName    string `env:"MEDIA_CLOUD_NAME"`
	MediaUploadPreset string `env:"MEDIA_UPLOAD_PRESET"`
	MediaFolder       string `env:"MEDIA_FOLDER" envDefault:"laptops"`
	MediaUploadURL    string `env:"MEDIA_UPLOAD_URL"`
	MediaMaxBytes     int    `env:"MEDIA_MAX_BYTES" envDefault:"716800"`

	CORSOrigins         []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	ReviewRatePerMinute float64  `env:"REVIEW_RATE_PER_MINUTE" envDefault:"3"`
	// TrustedProxies vacío: X-Forwarded-For se ignora y ClientIP es la IP del socket
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// IsProduction indica si corre en producción
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadConfig carga la configuración desde variables de entorno
func LoadConfig() (*Config, error) {
	// Solo cargar .env en desarrollo local
	// En producción esto se ignora automáticamente
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			logrus.WithError(err).Warn("error loading .env file")
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate revisa lo mínimo para levantar el servidor
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.IsProduction() && c.AuthDisabled {
		return fmt.Errorf("AUTH_DISABLED cannot be set in production")
	}
	if !c.AuthDisabled && c.FirebaseProjectID == "" && c.FirebaseCredentialsFile == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID or FIREBASE_CREDENTIALS_FILE is required unless AUTH_DISABLED is set")
	}
	return nil
}
