package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	base "beerbasement/internal/config"
)

const (
	defaultServerAddress  = "http://localhost:8080"
	defaultVisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"
	defaultLogLevel       = "info"
	defaultTimeoutSeconds = 30
)

type Config struct {
	Env            string `mapstructure:"app_env"`
	ServerAddress  string `mapstructure:"server_address"`
	User           string `mapstructure:"beer_user"`
	APIToken       string `mapstructure:"api_token"`
	VisionAPIKey   string `mapstructure:"vision_api_key"`
	VisionEndpoint string `mapstructure:"vision_endpoint"`
	VisionToken    string `mapstructure:"vision_token"`
	GazetteerPath  string `mapstructure:"gazetteer_path"`
	TimeoutSeconds int    `mapstructure:"http_timeout_seconds"`
	LogLevel       string `mapstructure:"log_level"`
}

// MustLoad загружает конфигурацию клиента и паникует при ошибке
func MustLoad() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает .env, переменные окружения и необязательный YAML файл configFile
func Load(configFile string) (*Config, error) {
	base.LoadEnv(".env", "../.env")

	v := viper.GetViper()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации %s: %w", configFile, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", base.EnvLocal)
	v.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	v.SetDefault("VISION_ENDPOINT", defaultVisionEndpoint)
	v.SetDefault("HTTP_TIMEOUT_SECONDS", defaultTimeoutSeconds)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	// без умолчания AutomaticEnv не видит ключ при Unmarshal
	for _, k := range []string{"BEER_USER", "API_TOKEN", "VISION_API_KEY", "VISION_TOKEN", "GAZETTEER_PATH"} {
		v.SetDefault(k, "")
	}
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:            base.NormalizeEnv(v.GetString("APP_ENV")),
		ServerAddress:  normalizeAddress(v.GetString("SERVER_ADDRESS")),
		User:           v.GetString("BEER_USER"),
		APIToken:       v.GetString("API_TOKEN"),
		VisionAPIKey:   v.GetString("VISION_API_KEY"),
		VisionEndpoint: v.GetString("VISION_ENDPOINT"),
		VisionToken:    v.GetString("VISION_TOKEN"),
		GazetteerPath:  v.GetString("GAZETTEER_PATH"),
		TimeoutSeconds: v.GetInt("HTTP_TIMEOUT_SECONDS"),
		LogLevel:       v.GetString("LOG_LEVEL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalizeAddress добавляет схему к адресу вида host:port
func normalizeAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr != "" && !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return strings.TrimRight(addr, "/")
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if u, err := url.Parse(c.ServerAddress); err != nil || u.Host == "" {
		return fmt.Errorf("неверный server_address %q", c.ServerAddress)
	}
	if c.VisionEndpoint == "" {
		return fmt.Errorf("vision_endpoint не может быть пустым")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("http_timeout_seconds не может быть отрицательным")
	}
	return nil
}

// Timeout таймаут HTTP вызовов
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == base.EnvProd
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == base.EnvLocal
}
