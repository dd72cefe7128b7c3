// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	App struct {
		DueReviewLimit int `mapstructure:"due_review_limit"`
	} `mapstructure:"app"`
	JWT struct {
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"jwt"`
	Auth struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"auth"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数からの上書き (例: APP_JWT_SECRET_KEY)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.App.DueReviewLimit <= 0 {
		log.Printf("Due review limit not set or invalid, using default '%d'", DefaultDueReviewLimit)
		Cfg.App.DueReviewLimit = DefaultDueReviewLimit
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if !viper.IsSet("auth.enabled") {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		Cfg.Auth.Enabled = true
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Due Review Limit: %d", Cfg.App.DueReviewLimit)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}
