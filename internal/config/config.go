package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Discord Discord `validate:"required"`

	Session Session `validate:"required"`

	Admin Admin `validate:"required"`

	RateLimit RateLimit `validate:"required"`

	Redis Redis

	Postgres Postgres `validate:"required"`

	Kafka Kafka

	Cache Cache
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`

	// CheckoutURL is where OAuth callbacks redirect the browser,
	// with a query-string status flag appended.
	CheckoutURL string `validate:"required,url"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

type Discord struct {
	BotToken     string `validate:"required"`
	GuildID      string `validate:"required,number"`
	CategoryID   string `validate:"required,number"`
	StaffRoleID  string `validate:"omitempty,number"`
	ClientID     string `validate:"required"`
	ClientSecret string `validate:"required"`
	RedirectURI  string `validate:"required,url"`

	APIBaseURL string `validate:"required,url"`

	// Timeout bounds channel/message calls, ShortTimeout the optional
	// invite/DM calls.
	Timeout      time.Duration `validate:"gt=0"`
	ShortTimeout time.Duration `validate:"gt=0"`
}

type Session struct {
	Secret     string        `validate:"required,min=32"`
	CookieName string        `validate:"required"`
	TTL        time.Duration `validate:"gt=0"`
	Secure     bool
}

type Admin struct {
	Secret string `validate:"required"`
}

type RateLimit struct {
	Limit  int           `validate:"gte=1"`
	Window time.Duration `validate:"gt=0"`
}

type Redis struct {
	Addr     string `validate:"omitempty,hostname_port"`
	Password string
	DB       int `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

type Kafka struct {
	Brokers []string `validate:"omitempty,dive,hostname_port"`
	Topic   string

	BatchTimeout time.Duration `validate:"gte=0"`
}

type Cache struct {
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host:        env("HOST", "localhost"),
			Port:        env("PORT", "8080"),
			CheckoutURL: env("CHECKOUT_URL", "http://localhost:3000/checkout"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Discord: Discord{
			BotToken:     env("DISCORD_BOT_TOKEN", ""),
			GuildID:      env("DISCORD_GUILD_ID", ""),
			CategoryID:   env("DISCORD_CATEGORY_ID", ""),
			StaffRoleID:  env("DISCORD_STAFF_ROLE_ID", ""),
			ClientID:     env("DISCORD_CLIENT_ID", ""),
			ClientSecret: env("DISCORD_CLIENT_SECRET", ""),
			RedirectURI:  env("DISCORD_REDIRECT_URI", "http://localhost:8080/api/discord/callback"),

			APIBaseURL: env("DISCORD_API_BASE_URL", "https://discord.com/api/v10"),

			Timeout:      envDuration("DISCORD_TIMEOUT", 15*time.Second),
			ShortTimeout: envDuration("DISCORD_SHORT_TIMEOUT", 10*time.Second),
		},

		Session: Session{
			Secret:     env("SESSION_SECRET", ""),
			CookieName: env("SESSION_COOKIE_NAME", "discordUserId"),
			TTL:        envDuration("SESSION_TTL", 7*24*time.Hour),
			Secure:     env("ENV", "development") == "production",
		},

		Admin: Admin{
			Secret: env("ADMIN_SECRET", ""),
		},

		RateLimit: RateLimit{
			Limit:  envInt("RATE_LIMIT", 10),
			Window: envDuration("RATE_LIMIT_WINDOW", time.Minute),
		},

		Redis: Redis{
			Addr:     env("REDIS_ADDR", ""),
			Password: env("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "storefront"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Kafka: Kafka{
			Brokers:      splitNonEmpty(env("KAFKA_BROKERS", "")),
			Topic:        env("KAFKA_TOPIC", "order-events"),
			BatchTimeout: envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Cache: Cache{
			Capacity: envInt("CACHE_CAPACITY", 128),
			TTL:      envDuration("CACHE_TTL", 5*time.Minute),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	// The atomic order counter lives in redis; without it order ids
	// degrade to timestamps, which is acceptable only outside production.
	if c.Env == "production" && c.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required in production")
	}
	return nil
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	if len(fallback) == 0 {
		return ""
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
