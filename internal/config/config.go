package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	UploadDisk   = "disk"
	UploadS3     = "s3"
	UploadMemory = "memory"
)

type Config struct {
	ServerPort int
	LogLevel   string

	StoreDriver   string
	MongoURL      string
	MongoDatabase string
	DatabaseURL   string

	JWTSecret []byte
	TokenTTL  time.Duration

	CartSlots int

	UploadBackend string
	UploadDir     string
	PublicBaseURL string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	CORSOrigins []string
}

// Load reads .env (when present) and the process environment. It is called
// once at start-up; nothing re-reads configuration afterwards.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	port := EnvIntDefault("SERVER_PORT", EnvIntDefault("PORT", 4000))

	cfg := &Config{
		ServerPort: port,
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		StoreDriver:   strings.ToLower(EnvDefault("STORE_DRIVER", DriverMongo)),
		MongoURL:      os.Getenv("MONGO_URL"),
		MongoDatabase: EnvDefault("MONGO_DATABASE", "ecommerce"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:  EnvDurationDefault("TOKEN_TTL", 0),

		CartSlots: EnvIntDefault("CART_SLOTS", 300),

		UploadBackend: strings.ToLower(EnvDefault("UPLOAD_BACKEND", UploadDisk)),
		UploadDir:     EnvDefault("UPLOAD_DIR", "upload/images"),
		PublicBaseURL: strings.TrimRight(EnvDefault("PUBLIC_BASE_URL", fmt.Sprintf("http://localhost:%d", port)), "/"),

		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Region:    EnvDefault("S3_REGION", "us-east-1"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3PublicURL: strings.TrimRight(os.Getenv("S3_PUBLIC_URL"), "/"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		CORSOrigins: CSV(EnvDefault("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.JWTSecret) == 0 {
		return fmt.Errorf("missing required env JWT_SECRET")
	}
	if c.CartSlots <= 0 {
		return fmt.Errorf("CART_SLOTS must be positive, got %d", c.CartSlots)
	}

	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURL == "" {
			return fmt.Errorf("missing required env MONGO_URL for store driver %q", c.StoreDriver)
		}
	case DriverPostgres, DriverSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("missing required env DATABASE_URL for store driver %q", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.UploadBackend {
	case UploadDisk, UploadMemory:
	case UploadS3:
		if c.S3Bucket == "" || c.S3PublicURL == "" {
			return fmt.Errorf("S3_BUCKET and S3_PUBLIC_URL are required for upload backend s3")
		}
	default:
		return fmt.Errorf("unknown UPLOAD_BACKEND %q", c.UploadBackend)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
