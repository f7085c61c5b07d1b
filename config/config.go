package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the service.
type Config struct {
	DatabaseURL        string
	DBMaxOpenConns     int
	DBConnectTimeout   time.Duration
	ServerPort         int
	DefaultSlotMinutes int
	PublicURL          string
	CORSAllowedOrigins []string

	RedisURL string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	SnapshotCron        string
	SnapshotTournaments []string
}

// R2Enabled reports whether object storage credentials are present.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

// SMTPEnabled reports whether outgoing mail is configured.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// Load reads the configuration from the environment. A .env file is loaded
// first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	maxConns, err := intFromEnv("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, err
	}
	if maxConns <= 0 {
		return nil, fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", maxConns)
	}

	connectSeconds, err := intFromEnv("DB_CONNECT_TIMEOUT_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	if connectSeconds <= 0 {
		return nil, fmt.Errorf("DB_CONNECT_TIMEOUT_SECONDS must be positive, got %d", connectSeconds)
	}

	port, err := intFromEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	slotMinutes, err := intFromEnv("DEFAULT_SLOT_MINUTES", 90)
	if err != nil {
		return nil, err
	}
	if slotMinutes <= 0 || slotMinutes > 24*60 {
		return nil, fmt.Errorf("DEFAULT_SLOT_MINUTES must be between 1 and 1440, got %d", slotMinutes)
	}

	smtpPort, err := intFromEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	origins := splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	cfg := &Config{
		DatabaseURL:        dbURL,
		DBMaxOpenConns:     maxConns,
		DBConnectTimeout:   time.Duration(connectSeconds) * time.Second,
		ServerPort:         port,
		DefaultSlotMinutes: slotMinutes,
		PublicURL:          strings.TrimSuffix(os.Getenv("PUBLIC_URL"), "/"),
		CORSAllowedOrigins: origins,

		RedisURL: os.Getenv("REDIS_URL"),

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: smtpPort,
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),

		SnapshotCron:        firstNonEmpty(os.Getenv("SNAPSHOT_CRON"), "*/15 * * * *"),
		SnapshotTournaments: splitList(os.Getenv("SNAPSHOT_TOURNAMENTS")),
	}

	return cfg, nil
}

func intFromEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
