package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Delivery DeliveryConfig
	Gateway  GatewayConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type DeliveryConfig struct {
	// MaxDistanceKm is the single delivery radius applied to every seller;
	// there are no per-seller zones.
	MaxDistanceKm float64
	// ChargeMinor is the flat delivery charge in minor currency units.
	ChargeMinor int64
	Currency    string
}

type GatewayConfig struct {
	BaseURL        string
	KeyID          string
	KeySecret      string
	HMACSecret     string
	WebhookSecret  string
	RequestTimeout time.Duration
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "tiffinbox")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "tiffinbox")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_DISTANCE_KM", 5.0)
	viper.SetDefault("DELIVERY_CHARGE_MINOR", 2000)
	viper.SetDefault("CURRENCY", "INR")
	viper.SetDefault("GATEWAY_BASE_URL", "http://localhost:8090/v1")
	viper.SetDefault("GATEWAY_KEY_ID", "")
	viper.SetDefault("GATEWAY_KEY_SECRET", "")
	viper.SetDefault("PAYMENT_HMAC_SECRET", "")
	viper.SetDefault("WEBHOOK_SECRET", "")
	viper.SetDefault("GATEWAY_REQUEST_TIMEOUT", "10s")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	gatewayTimeout, err := time.ParseDuration(viper.GetString("GATEWAY_REQUEST_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Delivery: DeliveryConfig{
			MaxDistanceKm: viper.GetFloat64("MAX_DISTANCE_KM"),
			ChargeMinor:   viper.GetInt64("DELIVERY_CHARGE_MINOR"),
			Currency:      viper.GetString("CURRENCY"),
		},
		Gateway: GatewayConfig{
			BaseURL:        viper.GetString("GATEWAY_BASE_URL"),
			KeyID:          viper.GetString("GATEWAY_KEY_ID"),
			KeySecret:      viper.GetString("GATEWAY_KEY_SECRET"),
			HMACSecret:     viper.GetString("PAYMENT_HMAC_SECRET"),
			WebhookSecret:  viper.GetString("WEBHOOK_SECRET"),
			RequestTimeout: gatewayTimeout,
		},
	}

	return cfg, nil
}
