package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"

	defaultThinkDelayMin    = 500 * time.Millisecond
	defaultThinkDelayJitter = time.Second
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"MTTT_LOG_LEVEL" env-default:"info"`
	Storage           string `yaml:"storage" env:"MTTT_STORAGE" env-default:"sqlite"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"MTTT_SQLITE_STORAGE_PATH" env-default:"./stats.db"`
	Game              Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"MTTT_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"MTTT_REDIS_PORT" env-default:"6379"`
}

type Game struct {
	Mode             string        `yaml:"mode" env:"MTTT_GAME_MODE" env-default:"bot"`
	Difficulty       string        `yaml:"difficulty" env:"MTTT_GAME_DIFFICULTY" env-default:"medium"`
	Seed             int64         `yaml:"seed" env:"MTTT_GAME_SEED" env-default:"0"`
	ThinkDelayMin    time.Duration `yaml:"think-delay-min" env:"MTTT_GAME_THINK_DELAY_MIN"`
	ThinkDelayJitter time.Duration `yaml:"think-delay-jitter" env:"MTTT_GAME_THINK_DELAY_JITTER"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	// durations are preset: an explicit 0s in the file must disable the delay
	config := &Config{
		Game: Game{
			ThinkDelayMin:    defaultThinkDelayMin,
			ThinkDelayJitter: defaultThinkDelayJitter,
		},
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
