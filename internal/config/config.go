package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env      string
	Port     string
	HTTPPort string // optional plain-HTTP listener that redirects to HTTPS
	LogLevel string

	DatabaseURL      string
	DBMaxOpenConns   int
	DBIdleTimeout    time.Duration
	DBConnectTimeout time.Duration

	RedisURL string

	JWTSecret    string
	JWTExpiresIn time.Duration

	CORSOrigins []string

	RateLimitWindow time.Duration
	RateLimitMax    int

	UploadDir   string
	MaxFileSize int64

	FrontendURL      string
	AdminEmail       string
	FromEmail        string
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPass         string
	SMTPSecure       bool
	SendinblueAPIKey string // Brevo API key; preferred over SMTP when set

	SSLKeyPath  string
	SSLCertPath string
	SSLCAPath   string
	SSLKey      string
	SSLCert     string
	SSLCA       string
	ForceSSL    bool // serve TLS outside production
	DisableSSL  bool

	HealthAdminKey string
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TLSWanted reports whether serve should try to load key material.
func (c *Config) TLSWanted() bool {
	return (c.IsProduction() || c.ForceSSL) && !c.DisableSSL
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3001")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "gfg_stable")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_IDLE_TIMEOUT", "30s")
	v.SetDefault("DB_CONNECT_TIMEOUT", "2s")
	v.SetDefault("JWT_EXPIRES_IN", "24h")
	v.SetDefault("RATE_LIMIT_WINDOW_MS", 900000)
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 100)
	v.SetDefault("UPLOAD_DIR", "uploads/tax-documents")
	v.SetDefault("MAX_FILE_SIZE", 10*1024*1024)
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("FROM_EMAIL", "noreply@gfgstable.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("LOG_LEVEL", "info")
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	env := v.GetString("NODE_ENV")
	if env == "" {
		env = v.GetString("APP_ENV")
	}
	if env == "" {
		env = "development"
	}

	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		if env == "production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		jwtSecret = "development-secret-change-me"
	}

	return &Config{
		Env:              env,
		Port:             v.GetString("PORT"),
		HTTPPort:         v.GetString("HTTP_PORT"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		DatabaseURL:      databaseURL(v),
		DBMaxOpenConns:   v.GetInt("DB_MAX_OPEN_CONNS"),
		DBIdleTimeout:    v.GetDuration("DB_IDLE_TIMEOUT"),
		DBConnectTimeout: v.GetDuration("DB_CONNECT_TIMEOUT"),
		RedisURL:         v.GetString("REDIS_URL"),
		JWTSecret:        jwtSecret,
		JWTExpiresIn:     v.GetDuration("JWT_EXPIRES_IN"),
		CORSOrigins:      corsOrigins(env, v.GetString("CORS_ORIGIN")),
		RateLimitWindow:  time.Duration(v.GetInt64("RATE_LIMIT_WINDOW_MS")) * time.Millisecond,
		RateLimitMax:     v.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		UploadDir:        v.GetString("UPLOAD_DIR"),
		MaxFileSize:      v.GetInt64("MAX_FILE_SIZE"),
		FrontendURL:      strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		AdminEmail:       v.GetString("ADMIN_EMAIL"),
		FromEmail:        v.GetString("FROM_EMAIL"),
		SMTPHost:         v.GetString("SMTP_HOST"),
		SMTPPort:         v.GetInt("SMTP_PORT"),
		SMTPUser:         v.GetString("SMTP_USER"),
		SMTPPass:         v.GetString("SMTP_PASS"),
		SMTPSecure:       strings.EqualFold(v.GetString("SMTP_SECURE"), "true"),
		SendinblueAPIKey: v.GetString("SENDINBLUE_API_KEY"),
		SSLKeyPath:       v.GetString("SSL_KEY_PATH"),
		SSLCertPath:      v.GetString("SSL_CERT_PATH"),
		SSLCAPath:        v.GetString("SSL_CA_PATH"),
		SSLKey:           v.GetString("SSL_KEY"),
		SSLCert:          v.GetString("SSL_CERT"),
		SSLCA:            v.GetString("SSL_CA"),
		ForceSSL:         strings.EqualFold(v.GetString("FORCE_SSL"), "true"),
		DisableSSL:       strings.EqualFold(v.GetString("DISABLE_SSL"), "true"),
		HealthAdminKey:   v.GetString("HEALTH_ADMIN_KEY"),
	}, nil
}

// databaseURL prefers DATABASE_URL and otherwise assembles a postgres URL from DB_* parts.
func databaseURL(v *viper.Viper) string {
	if dsn := v.GetString("DATABASE_URL"); dsn != "" {
		return dsn
	}
	host := v.GetString("DB_HOST")
	// avoid IPv6 localhost resolution on hosts where postgres binds 127.0.0.1 only
	if host == "localhost" {
		host = "127.0.0.1"
	}
	sslMode := "disable"
	if strings.EqualFold(v.GetString("DB_SSL"), "true") {
		sslMode = "require"
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(v.GetString("DB_USER"), v.GetString("DB_PASSWORD")),
		Host:   host + ":" + v.GetString("DB_PORT"),
		Path:   "/" + v.GetString("DB_NAME"),
	}
	q := url.Values{}
	q.Set("sslmode", sslMode)
	secs := int(v.GetDuration("DB_CONNECT_TIMEOUT").Seconds())
	if secs < 1 {
		secs = 1
	}
	q.Set("connect_timeout", fmt.Sprint(secs))
	u.RawQuery = q.Encode()
	return u.String()
}

func corsOrigins(env, raw string) []string {
	if env != "production" {
		return []string{"http://localhost:3001", "http://localhost:8080"}
	}
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
