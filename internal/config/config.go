package config

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
	Email    EmailConfig
	FreeTier FreeTierConfig
	Stripe   StripeConfig
	OCR      OCRConfig
	Frontend FrontendConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

// DSN returns the PostgreSQL connection URL with credentials escaped.
func (d *DBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings. Storage is optional: with Enabled false,
// PDF exports are streamed back and asset uploads are disabled.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ContactTo   string `mapstructure:"contact_to"`
}

// FreeTierConfig holds free plan limits.
type FreeTierConfig struct {
	MonthlyDownloads int `mapstructure:"monthly_downloads"`
}

// StripeConfig holds payment provider settings. An empty SecretKey disables payments.
type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	PriceMonthly  string `mapstructure:"price_monthly"`
	PriceLifetime string `mapstructure:"price_lifetime"`
	SuccessPath   string `mapstructure:"success_path"`
	CancelPath    string `mapstructure:"cancel_path"`
}

// Enabled reports whether payments are configured.
func (s StripeConfig) Enabled() bool {
	return s.SecretKey != ""
}

// OCRConfig holds document autofill settings.
type OCRConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Provider        string `mapstructure:"provider"` // "vision" or "documentai"
	CredentialsFile string `mapstructure:"credentials_file"`
	CredentialsJSON string `mapstructure:"credentials_json"`
	MaxFileSizeMB   int64  `mapstructure:"max_file_size_mb"`

	// Document AI processor coordinates.
	ProjectID   string `mapstructure:"project_id"`
	Location    string `mapstructure:"location"`
	ProcessorID string `mapstructure:"processor_id"`
}

// FrontendConfig holds the public URL of the web client.
type FrontendConfig struct {
	URL string `mapstructure:"url"`
}

// Load reads configuration from environment variables with the INVOICEGEN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOICEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "invoicegen")
	v.SetDefault("db.password", "invoicegen_secret")
	v.SetDefault("db.name", "invoicegen_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.connect_timeout", "5s")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "invoicegen")

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "invoicegen-files")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 5)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@invoicegen.app")
	v.SetDefault("email.from_name", "InvoiceGen")
	v.SetDefault("email.contact_to", "support@invoicegen.app")

	// Free tier defaults
	v.SetDefault("free_tier.monthly_downloads", 3)

	// Stripe defaults (disabled)
	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.webhook_secret", "")
	v.SetDefault("stripe.price_monthly", "")
	v.SetDefault("stripe.price_lifetime", "")
	v.SetDefault("stripe.success_path", "/payment/success?session_id={CHECKOUT_SESSION_ID}")
	v.SetDefault("stripe.cancel_path", "/pricing")

	// OCR defaults (disabled)
	v.SetDefault("ocr.enabled", false)
	v.SetDefault("ocr.provider", "vision")
	v.SetDefault("ocr.location", "us")
	v.SetDefault("ocr.credentials_file", "")
	v.SetDefault("ocr.credentials_json", "")
	v.SetDefault("ocr.max_file_size_mb", 10)

	v.SetDefault("frontend.url", "http://localhost:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "INVOICEGEN_SERVER_PORT",
		"server.read_timeout":         "INVOICEGEN_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "INVOICEGEN_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":     "INVOICEGEN_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":          "INVOICEGEN_SERVER_ENVIRONMENT",
		"db.host":                     "INVOICEGEN_DB_HOST",
		"db.port":                     "INVOICEGEN_DB_PORT",
		"db.user":                     "INVOICEGEN_DB_USER",
		"db.password":                 "INVOICEGEN_DB_PASSWORD",
		"db.name":                     "INVOICEGEN_DB_NAME",
		"db.sslmode":                  "INVOICEGEN_DB_SSLMODE",
		"db.max_open":                 "INVOICEGEN_DB_MAX_OPEN",
		"db.max_idle":                 "INVOICEGEN_DB_MAX_IDLE",
		"db.conn_max_lifetime":        "INVOICEGEN_DB_CONN_MAX_LIFETIME",
		"db.connect_timeout":          "INVOICEGEN_DB_CONNECT_TIMEOUT",
		"jwt.secret":                  "INVOICEGEN_JWT_SECRET",
		"jwt.access_expiry":           "INVOICEGEN_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":          "INVOICEGEN_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                  "INVOICEGEN_JWT_ISSUER",
		"s3.enabled":                  "INVOICEGEN_S3_ENABLED",
		"s3.region":                   "INVOICEGEN_S3_REGION",
		"s3.bucket":                   "INVOICEGEN_S3_BUCKET",
		"s3.endpoint":                 "INVOICEGEN_S3_ENDPOINT",
		"s3.access_key":               "INVOICEGEN_S3_ACCESS_KEY",
		"s3.secret_key":               "INVOICEGEN_S3_SECRET_KEY",
		"s3.max_file_size_mb":         "INVOICEGEN_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":           "INVOICEGEN_S3_PRESIGN_EXPIRY",
		"log.level":                   "INVOICEGEN_LOG_LEVEL",
		"log.format":                  "INVOICEGEN_LOG_FORMAT",
		"cors.allowed_origins":        "INVOICEGEN_CORS_ALLOWED_ORIGINS",
		"email.provider":              "INVOICEGEN_EMAIL_PROVIDER",
		"email.region":                "INVOICEGEN_EMAIL_REGION",
		"email.from_address":          "INVOICEGEN_EMAIL_FROM_ADDRESS",
		"email.from_name":             "INVOICEGEN_EMAIL_FROM_NAME",
		"email.contact_to":            "INVOICEGEN_EMAIL_CONTACT_TO",
		"free_tier.monthly_downloads": "INVOICEGEN_FREE_TIER_MONTHLY_DOWNLOADS",
		"stripe.secret_key":           "INVOICEGEN_STRIPE_SECRET_KEY",
		"stripe.webhook_secret":       "INVOICEGEN_STRIPE_WEBHOOK_SECRET",
		"stripe.price_monthly":        "INVOICEGEN_STRIPE_PRICE_MONTHLY",
		"stripe.price_lifetime":       "INVOICEGEN_STRIPE_PRICE_LIFETIME",
		"stripe.success_path":         "INVOICEGEN_STRIPE_SUCCESS_PATH",
		"stripe.cancel_path":          "INVOICEGEN_STRIPE_CANCEL_PATH",
		"ocr.enabled":                 "INVOICEGEN_OCR_ENABLED",
		"ocr.credentials_file":        "INVOICEGEN_OCR_CREDENTIALS_FILE",
		"ocr.credentials_json":        "INVOICEGEN_OCR_CREDENTIALS_JSON",
		"ocr.max_file_size_mb":        "INVOICEGEN_OCR_MAX_FILE_SIZE_MB",
		"ocr.provider":                "INVOICEGEN_OCR_PROVIDER",
		"ocr.project_id":              "INVOICEGEN_OCR_PROJECT_ID",
		"ocr.location":                "INVOICEGEN_OCR_LOCATION",
		"ocr.processor_id":            "INVOICEGEN_OCR_PROCESSOR_ID",
		"frontend.url":                "INVOICEGEN_FRONTEND_URL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVOICEGEN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOICEGEN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		ConnectTimeout:  v.GetDuration("db.connect_timeout"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		ContactTo:   v.GetString("email.contact_to"),
	}
	cfg.FreeTier = FreeTierConfig{
		MonthlyDownloads: v.GetInt("free_tier.monthly_downloads"),
	}
	cfg.Stripe = StripeConfig{
		SecretKey:     v.GetString("stripe.secret_key"),
		WebhookSecret: v.GetString("stripe.webhook_secret"),
		PriceMonthly:  v.GetString("stripe.price_monthly"),
		PriceLifetime: v.GetString("stripe.price_lifetime"),
		SuccessPath:   v.GetString("stripe.success_path"),
		CancelPath:    v.GetString("stripe.cancel_path"),
	}
	cfg.OCR = OCRConfig{
		Enabled:         v.GetBool("ocr.enabled"),
		CredentialsFile: v.GetString("ocr.credentials_file"),
		CredentialsJSON: v.GetString("ocr.credentials_json"),
		MaxFileSizeMB:   v.GetInt64("ocr.max_file_size_mb"),
		Provider:        strings.ToLower(v.GetString("ocr.provider")),
		ProjectID:       v.GetString("ocr.project_id"),
		Location:        v.GetString("ocr.location"),
		ProcessorID:     v.GetString("ocr.processor_id"),
	}
	cfg.Frontend = FrontendConfig{
		URL: strings.TrimRight(v.GetString("frontend.url"), "/"),
	}

	return cfg, nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
