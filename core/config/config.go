package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"caseload-api/core/logger"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type StorageConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	PresignTTL      int    `mapstructure:"presign_ttl"` // minutes
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Init loads .env (optional), then config.yaml (optional), then environment
// variables and makes the result available through Get/GetSafe.
func Init() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("config: no .env file loaded", "error", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logger.Info("config: no config file found, using defaults and env")
	}

	bindEnvOverrides(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "caseload")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.presign_ttl", 15)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func bindEnvOverrides(v *viper.Viper) {
	envMap := map[string]string{
		"server.port":               "SERVER_PORT",
		"database.host":             "DB_HOST",
		"database.port":             "DB_PORT",
		"database.user":             "DB_USER",
		"database.password":         "DB_PASSWORD",
		"database.dbname":           "DB_NAME",
		"redis.addr":                "REDIS_ADDR",
		"redis.password":            "REDIS_PASSWORD",
		"jwt.secret":                "JWT_SECRET",
		"storage.endpoint":          "S3_ENDPOINT",
		"storage.region":            "S3_REGION",
		"storage.bucket":            "S3_BUCKET",
		"storage.access_key_id":     "S3_ACCESS_KEY_ID",
		"storage.secret_access_key": "S3_SECRET_ACCESS_KEY",
		"log.level":                 "LOG_LEVEL",
	}
	for key, env := range envMap {
		_ = v.BindEnv(key, env)
	}
}

// Get returns the loaded configuration. Panics if Init has not run.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: Get called before Init")
	}
	return instance
}

// GetSafe returns the configuration and whether it has been initialized.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
