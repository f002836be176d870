package config

import (
	"flag"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Поддерживаемые бэкенды хранилища токенов
const (
	StoreMemory = "memory"
	StoreSQL    = "sql"
	StoreRedis  = "redis"
)

const (
	defaultHost        = "0.0.0.0"
	defaultPort        = 8080
	defaultDatabaseDSN = "file::memory:?cache=shared"
	defaultRedisAddr   = "localhost:6379"
	defaultRedisPrefix = "tokengate"
	defaultServerURL   = "http://localhost:8080"
	defaultTelegramAPI = "https://api.telegram.org"
)

type Config struct {
	// Server-side settings
	Host          string `env:"HOST"`
	Port          int    `env:"PORT"`
	StoreBackend  string `env:"STORE_BACKEND"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`
	RedisPrefix   string `env:"REDIS_PREFIX"`
	EnableMetrics bool   `env:"ENABLE_METRICS"`
	Debug         bool   `env:"DEBUG"`

	// Client-side settings
	ServerURL    string        `env:"SERVER_URL"`
	PollInterval time.Duration `env:"POLL_INTERVAL"`
	PollTimeout  time.Duration `env:"POLL_TIMEOUT"`
	Version      bool          `env:"-"` // show client version and exit (flag only)

	// Telegram delivery of the validation link (client)
	TelegramAPIURL      string `env:"TELEGRAM_API_URL"`
	TelegramBotKey      string `env:"TELEGRAM_BOT_KEY"`
	TelegramChatID      string `env:"TELEGRAM_CHAT_ID"`
	TelegramCredentials string `env:"TELEGRAM_CREDENTIALS"` // file with id= and botkey= lines
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.Host, "host", cfg.Host, "адрес для прослушивания")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "порт для прослушивания")
	flag.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "бэкенд хранилища: memory, sql или redis")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к SQLite")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "адрес Redis (host:port)")
	flag.StringVar(&cfg.RedisPassword, "redis-password", cfg.RedisPassword, "пароль Redis")
	flag.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "номер базы Redis")
	flag.StringVar(&cfg.RedisPrefix, "redis-prefix", cfg.RedisPrefix, "префикс ключей Redis")
	flag.BoolVar(&cfg.EnableMetrics, "metrics", cfg.EnableMetrics, "публиковать /metrics для Prometheus")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "development-логгер")
	// Client flags
	flag.StringVar(&cfg.ServerURL, "server-url", cfg.ServerURL, "URL of the TokenGate server")
	flag.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "interval between status checks (wait)")
	flag.DurationVar(&cfg.PollTimeout, "poll-timeout", cfg.PollTimeout, "how long wait keeps polling")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")
	flag.StringVar(&cfg.TelegramAPIURL, "telegram-api-url", cfg.TelegramAPIURL, "Telegram Bot API base URL")
	flag.StringVar(&cfg.TelegramBotKey, "telegram-bot-key", cfg.TelegramBotKey, "Telegram bot key")
	flag.StringVar(&cfg.TelegramChatID, "telegram-chat-id", cfg.TelegramChatID, "Telegram chat id that receives the link")
	flag.StringVar(&cfg.TelegramCredentials, "telegram-credentials", cfg.TelegramCredentials, "path to a credentials file with id= and botkey= lines")

	flag.Parse()

	cfg.applyDefaults()

	return cfg
}

// Addr возвращает адрес сервера в формате host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = defaultHost
	}
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = defaultPort
	}

	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case StoreMemory, StoreSQL, StoreRedis:
	default:
		c.StoreBackend = StoreMemory
	}

	if c.DatabaseDSN == "" {
		c.DatabaseDSN = defaultDatabaseDSN
	}
	if c.RedisAddr == "" {
		c.RedisAddr = defaultRedisAddr
	}
	if c.RedisPrefix == "" {
		c.RedisPrefix = defaultRedisPrefix
	}

	// ServerURL: только http(s) с хостом, иначе дефолт
	if u, err := url.Parse(c.ServerURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		c.ServerURL = defaultServerURL
	}
	c.ServerURL = strings.TrimRight(c.ServerURL, "/")

	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = 10 * time.Second
	}
	if c.TelegramAPIURL == "" {
		c.TelegramAPIURL = defaultTelegramAPI
	}
	c.TelegramAPIURL = strings.TrimRight(c.TelegramAPIURL, "/")
}
