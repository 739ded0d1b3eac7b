package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	base "beerbasement/internal/config"
)

const (
	defaultRunAddress    = ":8080"
	defaultMigrations    = "migrations"
	defaultSQLitePath    = "beerbasement.db"
	defaultCacheTTL      = 60
	defaultLogLevel      = "info"
	envPathRelativeToCmd = "../../.env"
)

type Config struct {
	Env    string
	DB     db
	Server server
	Cache  cache
	Logger logger
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
	SQLitePath  string `env:"SQLITE_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type cache struct {
	RedisAddr string        `env:"REDIS_ADDR"`
	TTL       time.Duration `env:"CACHE_TTL_SECONDS"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// MustLoad загружает конфигурацию сервера и паникует при ошибке
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

func Load() (*Config, error) {
	base.LoadEnv(".env", envPathRelativeToCmd)

	viper.SetDefault("RUN_ADDRESS", defaultRunAddress)
	viper.SetDefault("MIGRATIONS_PATH", defaultMigrations)
	viper.SetDefault("SQLITE_PATH", defaultSQLitePath)
	viper.SetDefault("CACHE_TTL_SECONDS", defaultCacheTTL)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("APP_ENV", base.EnvLocal)

	config := Config{
		Env: base.NormalizeEnv(viper.GetString("app_env")),
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
			SQLitePath:  viper.GetString("sqlite_path"),
		},
		Server: server{RunAddress: viper.GetString("run_address")},
		Cache: cache{
			RedisAddr: viper.GetString("redis_addr"),
			TTL:       time.Duration(viper.GetInt("cache_ttl_seconds")) * time.Second,
		},
		Logger: logger{LogLevel: viper.GetString("log_level")},
	}

	if config.Server.RunAddress == "" {
		return nil, fmt.Errorf("run_address не может быть пустым")
	}
	if config.Cache.TTL < 0 {
		return nil, fmt.Errorf("cache_ttl_seconds не может быть отрицательным")
	}
	return &config, nil
}

// UsePostgres true, если задан DATABASE_URI
func (c *Config) UsePostgres() bool {
	return c.DB.DatabaseURI != ""
}
