package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Generator GeneratorConfig
	Export    ExportConfig
	Plots     PlotsConfig
	API       APIConfig
	Storage   StorageConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Env             string        `mapstructure:"env"`
	LogLevel        string        `mapstructure:"log_level"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type GeneratorConfig struct {
	Users              int           `mapstructure:"users"`
	ReadingsPerUser    int           `mapstructure:"readings_per_user"`
	StartDate          string        `mapstructure:"start_date"`
	ReadingInterval    time.Duration `mapstructure:"reading_interval"`
	OutsideTempMin     float64       `mapstructure:"outside_temp_min"`
	OutsideTempMax     float64       `mapstructure:"outside_temp_max"`
	OutsideHumidityMin float64       `mapstructure:"outside_humidity_min"`
	OutsideHumidityMax float64       `mapstructure:"outside_humidity_max"`
	MaxRoomOffset      float64       `mapstructure:"max_room_offset"`
	Seed               int64         `mapstructure:"seed"`
}

type ExportConfig struct {
	CSVMaxRows  int `mapstructure:"csv_max_rows"`
	PreviewRows int `mapstructure:"preview_rows"`
}

type PlotsConfig struct {
	Width             int `mapstructure:"width"`
	Height            int `mapstructure:"height"`
	HistogramBins     int `mapstructure:"histogram_bins"`
	GridBins          int `mapstructure:"grid_bins"`
	ComparisonSamples int `mapstructure:"comparison_samples"`
}

type APIConfig struct {
	BasePath        string        `mapstructure:"base_path"`
	RateLimit       int           `mapstructure:"rate_limit"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
}

type StorageConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Endpoint  string        `mapstructure:"endpoint"`
	AccessKey string        `mapstructure:"access_key"`
	SecretKey string        `mapstructure:"secret_key"`
	Bucket    string        `mapstructure:"bucket"`
	UseSSL    bool          `mapstructure:"use_ssl"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type SchedulerConfig struct {
	RegenerationInterval time.Duration `mapstructure:"regeneration_interval"`
	Timeout              time.Duration `mapstructure:"timeout"`
}

func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/iot-datagen/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	overrideFromEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "iot-datagen")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", "30s")

	v.SetDefault("generator.users", 1000)
	v.SetDefault("generator.readings_per_user", 1000)
	v.SetDefault("generator.start_date", "2015-01-01")
	v.SetDefault("generator.reading_interval", "6h")
	v.SetDefault("generator.outside_temp_min", 70.0)
	v.SetDefault("generator.outside_temp_max", 95.0)
	v.SetDefault("generator.outside_humidity_min", 50.0)
	v.SetDefault("generator.outside_humidity_max", 95.0)
	v.SetDefault("generator.max_room_offset", 10.0)
	v.SetDefault("generator.seed", 0)

	v.SetDefault("export.csv_max_rows", 10000)
	v.SetDefault("export.preview_rows", 10)

	v.SetDefault("plots.width", 1600)
	v.SetDefault("plots.height", 1200)
	v.SetDefault("plots.histogram_bins", 150)
	v.SetDefault("plots.grid_bins", 200)
	v.SetDefault("plots.comparison_samples", 500)

	v.SetDefault("api.base_path", "/api/v1")
	v.SetDefault("api.rate_limit", 100)
	v.SetDefault("api.rate_limit_window", "1m")

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.endpoint", "minio:9000")
	v.SetDefault("storage.access_key", "minioadmin")
	v.SetDefault("storage.secret_key", "minioadmin")
	v.SetDefault("storage.bucket", "iot-exports")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.timeout", "30s")

	v.SetDefault("scheduler.regeneration_interval", "0s")
	v.SetDefault("scheduler.timeout", "10m")
}

func overrideFromEnv(v *viper.Viper) {
	if env := os.Getenv("APP_ENV"); env != "" {
		v.Set("app.env", env)
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		v.Set("app.log_level", logLevel)
	}

	if users := os.Getenv("GENERATOR_USERS"); users != "" {
		v.Set("generator.users", users)
	}
	if readings := os.Getenv("GENERATOR_READINGS_PER_USER"); readings != "" {
		v.Set("generator.readings_per_user", readings)
	}
	if startDate := os.Getenv("GENERATOR_START_DATE"); startDate != "" {
		v.Set("generator.start_date", startDate)
	}

	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		v.Set("storage.endpoint", endpoint)
		v.Set("storage.enabled", true)
	}
	if accessKey := os.Getenv("MINIO_ACCESS_KEY"); accessKey != "" {
		v.Set("storage.access_key", accessKey)
	}
	if secretKey := os.Getenv("MINIO_SECRET_KEY"); secretKey != "" {
		v.Set("storage.secret_key", secretKey)
	}
	if bucket := os.Getenv("MINIO_BUCKET"); bucket != "" {
		v.Set("storage.bucket", bucket)
	}
}

func validateConfig(cfg *Config) error {
	if cfg.App.Port <= 0 {
		return fmt.Errorf("app port must be positive")
	}
	if _, err := time.Parse("2006-01-02", cfg.Generator.StartDate); err != nil {
		return fmt.Errorf("generator start_date must be YYYY-MM-DD: %w", err)
	}
	if cfg.Generator.ReadingInterval <= 0 {
		return fmt.Errorf("generator reading_interval must be positive")
	}
	if cfg.Generator.OutsideTempMax < cfg.Generator.OutsideTempMin {
		return fmt.Errorf("generator outside temperature range is inverted")
	}
	if cfg.Generator.OutsideHumidityMax < cfg.Generator.OutsideHumidityMin {
		return fmt.Errorf("generator outside humidity range is inverted")
	}
	if cfg.Generator.MaxRoomOffset < 0 {
		return fmt.Errorf("generator max_room_offset must be nonnegative")
	}
	if cfg.Export.CSVMaxRows <= 0 {
		return fmt.Errorf("export csv_max_rows must be positive")
	}
	if cfg.Plots.Width <= 0 || cfg.Plots.Height <= 0 {
		return fmt.Errorf("plot dimensions must be positive")
	}
	if cfg.Plots.HistogramBins <= 0 || cfg.Plots.GridBins <= 0 {
		return fmt.Errorf("plot bin counts must be positive")
	}
	if cfg.Storage.Enabled {
		if cfg.Storage.Endpoint == "" {
			return fmt.Errorf("storage endpoint must not be empty when storage is enabled")
		}
		if cfg.Storage.Bucket == "" {
			return fmt.Errorf("storage bucket must not be empty when storage is enabled")
		}
	}
	return nil
}
