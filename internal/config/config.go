package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Meta         Meta         `mapstructure:",squash"`
	Cache        Cache        `mapstructure:",squash"`
	CacheJanitor CacheJanitor `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	SecretKey    string       `mapstructure:"secret_key"`
}

type Server struct {
	Host                  string   `mapstructure:"host"`
	Port                  string   `mapstructure:"port"`
	AllowedOrigins        []string `mapstructure:"allowed_origins"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
	MaxIdleConns int    `mapstructure:"database_max_idle_conns"`
}

type Meta struct {
	BaseURL               string  `mapstructure:"meta_base_url"`
	URL                   string  `mapstructure:"meta_url"`
	Version               string  `mapstructure:"meta_version"`
	AppID                 string  `mapstructure:"meta_app_id"`
	AppSecret             string  `mapstructure:"meta_app_secret"`
	HTTPTimeoutSeconds    int     `mapstructure:"meta_http_timeout_seconds"`
	MaxRetries            int     `mapstructure:"meta_max_retries"`
	RetryBackoffMs        int     `mapstructure:"meta_retry_backoff_ms"`
	UsageThresholdPercent float64 `mapstructure:"meta_usage_threshold_percent"`
	RequestsPerSecond     float64 `mapstructure:"meta_requests_per_second"`
	RequestBurst          int     `mapstructure:"meta_request_burst"`
	MaxPages              int     `mapstructure:"meta_max_pages"`
}

// Cache define a capacidade e os tiers de TTL do cache de respostas
type Cache struct {
	MaxEntries       int `mapstructure:"cache_max_entries"`
	TTLShortSeconds  int `mapstructure:"cache_ttl_short_seconds"`
	TTLMediumSeconds int `mapstructure:"cache_ttl_medium_seconds"`
	TTLLongSeconds   int `mapstructure:"cache_ttl_long_seconds"`
}

type CacheJanitor struct {
	IntervalSeconds int  `mapstructure:"cache_sweep_interval_seconds"`
	Enabled         bool `mapstructure:"cache_sweep_enabled"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	JWTSecret string `mapstructure:"auth_jwt_secret"`
}

func (m Meta) HTTPTimeout() time.Duration {
	return time.Duration(m.HTTPTimeoutSeconds) * time.Second
}

func (m Meta) RetryBackoff() time.Duration {
	return time.Duration(m.RetryBackoffMs) * time.Millisecond
}

func (s Server) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

func (c Cache) ShortTTL() time.Duration {
	return time.Duration(c.TTLShortSeconds) * time.Second
}

func (c Cache) MediumTTL() time.Duration {
	return time.Duration(c.TTLMediumSeconds) * time.Second
}

func (c Cache) LongTTL() time.Duration {
	return time.Duration(c.TTLLongSeconds) * time.Second
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 45)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads_dashboard?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "")
	viper.SetDefault("META_APP_SECRET", "")
	viper.SetDefault("META_HTTP_TIMEOUT_SECONDS", 30)
	viper.SetDefault("META_MAX_RETRIES", 2)              // apenas erros transitórios
	viper.SetDefault("META_RETRY_BACKOFF_MS", 300)       // dobra a cada tentativa
	viper.SetDefault("META_USAGE_THRESHOLD_PERCENT", 95) // acima disso a Meta já está limitando
	viper.SetDefault("META_REQUESTS_PER_SECOND", 10)
	viper.SetDefault("META_REQUEST_BURST", 20)
	viper.SetDefault("META_MAX_PAGES", 20)

	viper.SetDefault("CACHE_MAX_ENTRIES", 500)
	viper.SetDefault("CACHE_TTL_SHORT_SECONDS", 60)   // "hoje"
	viper.SetDefault("CACHE_TTL_MEDIUM_SECONDS", 120) // padrão
	viper.SetDefault("CACHE_TTL_LONG_SECONDS", 300)   // 90 dias / máximo
	viper.SetDefault("CACHE_SWEEP_INTERVAL_SECONDS", 60)
	viper.SetDefault("CACHE_SWEEP_ENABLED", true)

	viper.SetDefault("AUTH_JWT_SECRET", "your_jwt_secret")
	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.BaseURL = strings.TrimSuffix(config.Meta.BaseURL, "/")
	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if config.SecretKey == "" {
		return nil, fmt.Errorf("config: SECRET_KEY is required to encrypt stored access tokens")
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
