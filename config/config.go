package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	BotType          string `mapstructure:"BOT_TYPE"`
	APIBaseURL       string `mapstructure:"API_BASE_URL"`
	APIFallbackURL   string `mapstructure:"API_FALLBACK_URL"`
	PaymentSiteURL   string `mapstructure:"PAYMENT_SITE_URL"`
	DB_URL           string `mapstructure:"DB_URL"`
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	QRSiteAddr       string `mapstructure:"QR_SITE_ADDR"`
}

func LoadConfig(path string) (config Config, err error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return config, fmt.Errorf("ошибка получения абсолютного пути: %w", err)
	}

	viper.AddConfigPath(filepath.Dir(absPath))
	viper.SetConfigName(filepath.Base(absPath))
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return config, fmt.Errorf("ошибка чтения конфигурации: %w", err)
	}

	if err := viper.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("ошибка преобразования конфига: %w", err)
	}

	if config.BotType == "" {
		config.BotType = "main"
	}
	if config.QRSiteAddr == "" {
		config.QRSiteAddr = ":3002"
	}

	return config, nil
}
