package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// LoadEnv подгружает первый найденный .env файл и включает чтение переменных окружения.
// Возвращает путь загруженного файла или пустую строку.
func LoadEnv(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			continue
		}
		viper.AutomaticEnv()
		return p
	}
	viper.AutomaticEnv()
	return ""
}

// NormalizeEnv приводит неизвестное окружение к local
func NormalizeEnv(env string) string {
	switch env {
	case EnvDev, EnvProd:
		return env
	default:
		return EnvLocal
	}
}
