package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config covers runtime wiring: listen addresses, artifact paths, and
// the dashboard session backend. The image size and the class taxonomy
// are compile-time constants tied to the trained model, not config.
type Config struct {
	App     AppConfig     `toml:"app"`
	Model   ModelConfig   `toml:"model"`
	Session SessionConfig `toml:"session"`
	Redis   RedisConfig   `toml:"redis"`
}

type AppConfig struct {
	Name          string `toml:"name"`
	Env           string `toml:"env"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	DashboardPort int    `toml:"dashboard_port"`
	GinMode       string `toml:"gin_mode"`
}

type ModelConfig struct {
	Path              string `toml:"path"`
	MetadataPath      string `toml:"metadata_path"`
	ONNXSharedLibPath string `toml:"onnx_shared_lib_path"`
}

type SessionConfig struct {
	Backend    string `toml:"backend"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) DashboardAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.DashboardPort)
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:          "lung-cancer-classification",
			Env:           "dev",
			Host:          "0.0.0.0",
			Port:          5000,
			DashboardPort: 8501,
			GinMode:       "debug",
		},
		Model: ModelConfig{
			Path:              "models/best_lung_model.onnx",
			MetadataPath:      "models/model_metadata.json",
			ONNXSharedLibPath: "", // use default or set via MODEL_ONNX_LIB
		},
		Session: SessionConfig{
			Backend:    "memory",
			TTLMinutes: 30,
		},
		Redis: RedisConfig{
			Addr:     "127.0.0.1:6379",
			Password: "",
			DB:       0,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.DashboardPort = getEnvAsInt("APP_DASHBOARD_PORT", cfg.App.DashboardPort)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Model.Path = getEnv("MODEL_PATH", cfg.Model.Path)
	cfg.Model.MetadataPath = getEnv("MODEL_METADATA_PATH", cfg.Model.MetadataPath)
	cfg.Model.ONNXSharedLibPath = getEnv("MODEL_ONNX_LIB", cfg.Model.ONNXSharedLibPath)

	cfg.Session.Backend = getEnv("SESSION_BACKEND", cfg.Session.Backend)
	cfg.Session.TTLMinutes = getEnvAsInt("SESSION_TTL_MINUTES", cfg.Session.TTLMinutes)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
