package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"12345"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Game       Game   `yaml:"game"`
	Redis      Redis  `yaml:"redis"`
}

type Game struct {
	WinLength      int `yaml:"win-length" env:"WIN_LENGTH" env-default:"5"`
	DrawLimit      int `yaml:"draw-limit" env:"DRAW_LIMIT" env-default:"200"`
	OutboundBuffer int `yaml:"outbound-buffer" env:"OUTBOUND_BUFFER" env-default:"64"`
}

type Redis struct {
	Enabled  bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host     string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	ScoreTTL time.Duration `yaml:"score-ttl" env:"REDIS_SCORE_TTL" env-default:"24h"`
}

const HTTPPortOff = "off"

var (
	ErrInvalidWinLength = errors.New("win length must be at least 1")
	ErrInvalidDrawLimit = errors.New("draw limit must not be negative")
)

// MustLoad - loads config.yml at path if it exists, otherwise environment variables only.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	} else if err = cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	if that.Game.WinLength < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWinLength, that.Game.WinLength)
	}

	if that.Game.DrawLimit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDrawLimit, that.Game.DrawLimit)
	}

	return nil
}

// HTTPEnabled - reports whether the status server should run; http-port "off" disables it.
func (that *Config) HTTPEnabled() bool {
	return that.HTTPPort != "" && that.HTTPPort != HTTPPortOff
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
