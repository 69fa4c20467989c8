// Package config предоставляет структуры и функцию для загрузки настроек CLI.
// Настройки читаются из необязательного YAML-файла и переменных окружения MOL_*,
// значения по умолчанию заданы тегами env-default.
// Секретов (ключей API) здесь нет, они читаются пакетом credentials.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Окружения провайдера.
const (
	EnvProduction = "production"
	EnvDev        = "dev"
)

// ConfigPathEnv — переменная окружения с путём к файлу настроек.
const ConfigPathEnv = "MOL_CONFIG_PATH"

var (
	apiURLs = map[string]string{
		EnvProduction: "https://api.mollie.com/v2",
		EnvDev:        "https://api.mollie.dev/v2",
	}
	checkoutURLs = map[string]string{
		EnvProduction: "https://www.mollie.com/checkout/select-method/",
		EnvDev:        "https://mollie.dev/checkout/select-method/",
	}
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"MOL_ENV" env-default:"production"`
	LogLevel        string `yaml:"log_level" env:"MOL_LOG_LEVEL" env-default:"info"`
	CredentialsPath string `yaml:"credentials_path" env:"MOL_CREDENTIALS_PATH"`
	API             `yaml:"api"`
	MetricsPush     `yaml:"metrics"`
}

// API структура для настройки HTTP-клиента провайдера
type API struct {
	URL         string        `yaml:"url" env:"MOL_API_URL"`
	CheckoutURL string        `yaml:"checkout_url" env:"MOL_CHECKOUT_URL"`
	Timeout     time.Duration `yaml:"timeout" env:"MOL_API_TIMEOUT" env-default:"10s"`
	UserAgent   string        `yaml:"user_agent" env:"MOL_USER_AGENT"`
}

// MetricsPush структура для отправки метрик в Prometheus Pushgateway
type MetricsPush struct {
	PushgatewayURL string `yaml:"pushgateway_url" env:"MOL_PUSHGATEWAY_URL"`
	Job            string `yaml:"job" env:"MOL_METRICS_JOB" env-default:"mol"`
}

// Load загружает настройки. Если path пуст, берётся MOL_CONFIG_PATH;
// если и он пуст, настройки собираются только из окружения и значений по умолчанию.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: cannot read environment: %w", op, err)
		}
	} else {
		path = ExpandHome(path)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s: config file %s: %w", op, path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s: cannot read config %s: %w", op, path, err)
		}
	}

	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = DefaultCredentialsPath()
	}
	cfg.CredentialsPath = ExpandHome(cfg.CredentialsPath)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, ok := apiURLs[c.Env]; !ok {
		return fmt.Errorf("unknown env %q: expected %q or %q", c.Env, EnvProduction, EnvDev)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("api timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// BaseURL возвращает базовый URL API для текущего окружения.
func (c *Config) BaseURL() string {
	if c.URL != "" {
		return strings.TrimRight(c.URL, "/")
	}
	return apiURLs[c.Env]
}

// CheckoutBaseURL возвращает адрес страницы выбора метода оплаты, к которому дописывается ID платежа.
func (c *Config) CheckoutBaseURL() string {
	if c.CheckoutURL != "" {
		return c.CheckoutURL
	}
	return checkoutURLs[c.Env]
}

// SlogLevel возвращает уровень логирования. Некорректное значение отсекается в Load.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// DefaultCredentialsPath возвращает ~/.mol/conf.toml.
func DefaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".mol", "conf.toml")
	}
	return filepath.Join(home, ".mol", "conf.toml")
}

// ExpandHome раскрывает ведущий "~/" в домашний каталог пользователя.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"LogLevel: %s\n"+
			"CredentialsPath: %s\n"+
			"API:\n"+
			"  URL: %s\n"+
			"  CheckoutURL: %s\n"+
			"  Timeout: %s\n"+
			"Metrics:\n"+
			"  PushgatewayURL: %s\n"+
			"  Job: %s\n",
		c.Env,
		c.LogLevel,
		c.CredentialsPath,
		c.BaseURL(),
		c.CheckoutBaseURL(),
		c.Timeout,
		c.PushgatewayURL,
		c.Job,
	)
}
