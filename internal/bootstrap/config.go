package bootstrap

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort         string  `mapstructure:"SERVER_PORT"`
	RedisUrl           string  `mapstructure:"REDIS_URL"`
	MongoUri           string  `mapstructure:"MONGO_URI"`
	MongoDatabase      string  `mapstructure:"MONGO_DATABASE"`
	IsLocalCors        bool    `mapstructure:"LOCAL_CORS"`
	SnapshotTTLMinutes int     `mapstructure:"SNAPSHOT_TTL_MINUTES"`
	LockTTLSeconds     int     `mapstructure:"LOCK_TTL_SECONDS"`
	AIServiceAddr      string  `mapstructure:"AI_SERVICE_ADDR"`
	AIServicePort      string  `mapstructure:"AI_SERVICE_PORT"`
	RateLimitPerSecond float64 `mapstructure:"RATE_LIMIT_PER_SECOND"`
	RateLimitBurst     int     `mapstructure:"RATE_LIMIT_BURST"`
	// Storage is "mongo" or "memory".
	Storage            string  `mapstructure:"STORAGE"`
}

var defaults = map[string]any{
	"SERVER_PORT":           "8080",
	"REDIS_URL":             "localhost:6379",
	"MONGO_URI":             "mongodb://localhost:27017",
	"MONGO_DATABASE":        "signal_siege",
	"LOCAL_CORS":            false,
	"SNAPSHOT_TTL_MINUTES":  24 * 60,
	"LOCK_TTL_SECONDS":      10,
	"AI_SERVICE_ADDR":       "",
	"AI_SERVICE_PORT":       "8082",
	"STORAGE":               "mongo",
	"RATE_LIMIT_PER_SECOND": 5.0,
	"RATE_LIMIT_BURST":      10,
}

// Setup reads the dotenv file at cfgPath. Environment variables override the
// file and defaults fill the rest.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	v.SetConfigFile(cfgPath)

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c Config) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLMinutes) * time.Minute
}

func (c Config) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}
