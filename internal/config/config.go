package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Board    Board   `yaml:"board"`
	Match    Match   `yaml:"match"`
	Symbols  Symbols `yaml:"symbols"`
	Redis    Redis   `yaml:"redis"`
}

type Board struct {
	Rows    int `yaml:"rows" env:"BOARD_ROWS" env-default:"3"`
	Columns int `yaml:"columns" env:"BOARD_COLUMNS" env-default:"3"`
}

type Match struct {
	AutoResetDelay time.Duration `yaml:"auto-reset-delay" env:"MATCH_AUTO_RESET_DELAY" env-default:"1s"`
}

type Symbols struct {
	P1 string `yaml:"p1" env:"SYMBOL_P1" env-default:"X"`
	P2 string `yaml:"p2" env:"SYMBOL_P2" env-default:"O"`
}

type Redis struct {
	Enabled     bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host        string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SnapshotTTL time.Duration `yaml:"snapshot-ttl" env:"REDIS_SNAPSHOT_TTL" env-default:"1h"`
}

// MustLoad - load all configurations from the yml file, or from the environment
// and defaults when the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
