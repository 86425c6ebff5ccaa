// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	// NewLimit は「今日のキュー」に混ぜる新規カード数の既定値 (クエリで未指定の場合)
	NewLimit int `mapstructure:"new_limit"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type WordHelperConfig struct {
	DictionaryBaseURL string `mapstructure:"dictionary_base_url"`
	PixabayBaseURL    string `mapstructure:"pixabay_base_url"`
	PixabayAPIKey     string `mapstructure:"pixabay_api_key"` // 未設定ならフォールバック画像のみ
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
}

type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	App        AppConfig        `mapstructure:"app"`
	CORS       CORSConfig       `mapstructure:"cors"`
	WordHelper WordHelperConfig `mapstructure:"word_helper"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数でも上書き可能にする (例: APP_DATABASE_URL)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("word_helper.pixabay_api_key", "PIXABAY_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
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
	if Cfg.App.NewLimit <= 0 || Cfg.App.NewLimit > MaxNewLimit {
		log.Printf("App new limit not set or invalid, using default '%d'", DefaultNewLimit)
		Cfg.App.NewLimit = DefaultNewLimit
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if Cfg.WordHelper.DictionaryBaseURL == "" {
		Cfg.WordHelper.DictionaryBaseURL = DefaultDictionaryBaseURL
	}
	if Cfg.WordHelper.PixabayBaseURL == "" {
		Cfg.WordHelper.PixabayBaseURL = DefaultPixabayBaseURL
	}
	if Cfg.WordHelper.TimeoutSeconds <= 0 {
		Cfg.WordHelper.TimeoutSeconds = DefaultWordHelperTimeoutSeconds
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("New Card Limit: %d", Cfg.App.NewLimit)

	return nil
}
