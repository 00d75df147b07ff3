package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Board    Board    `yaml:"board"`
	Marks    []string `yaml:"marks" env:"MARKS" env-default:"X,O"`
	Events   Events   `yaml:"events"`
}

type Board struct {
	Size           int `yaml:"size" env:"BOARD_SIZE" env-default:"3"`
	CoordinateBase int `yaml:"coordinate-base" env:"BOARD_COORDINATE_BASE" env-default:"0"`
}

type Events struct {
	Redis Redis `yaml:"redis"`
}

type Redis struct {
	Enabled       bool   `yaml:"enabled" env:"EVENTS_REDIS_ENABLED" env-default:"false"`
	Host          string `yaml:"host" env:"EVENTS_REDIS_HOST" env-default:"localhost"`
	Port          string `yaml:"port" env:"EVENTS_REDIS_PORT" env-default:"6379"`
	ChannelPrefix string `yaml:"channel-prefix" env:"EVENTS_REDIS_CHANNEL_PREFIX" env-default:"tictactoe"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads the yaml file with env overrides, or env alone when the file does not exist.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, statErr := os.Stat(path); statErr == nil {
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log-level %q", ErrInvalidConfig, that.LogLevel)
	}

	if that.Board.Size < 3 {
		return fmt.Errorf("%w: board size must be at least 3, got %d", ErrInvalidConfig, that.Board.Size)
	}

	if that.Board.CoordinateBase != 0 && that.Board.CoordinateBase != 1 {
		return fmt.Errorf("%w: coordinate-base must be 0 or 1, got %d", ErrInvalidConfig, that.Board.CoordinateBase)
	}

	if len(that.Marks) != 2 || that.Marks[0] == "" || that.Marks[1] == "" || that.Marks[0] == that.Marks[1] {
		return fmt.Errorf("%w: need two distinct non-empty marks, got %q", ErrInvalidConfig, that.Marks)
	}

	return nil
}

func (that *Config) MarkList() []entity.Mark {
	marks := make([]entity.Mark, len(that.Marks))
	for i, mark := range that.Marks {
		marks[i] = entity.Mark(mark)
	}

	return marks
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
