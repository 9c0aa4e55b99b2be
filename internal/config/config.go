package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	errorsUtils "github.com/Egor213/LogVault/pkg/errors"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		App        `yaml:"app"`
		Log        `yaml:"log"`
		HTTP       `yaml:"http"`
		Prometheus `yaml:"prometheus"`
		Store      `yaml:"store"`
		Kafka      `yaml:"kafka"`
	}

	App struct {
		Name    string `yaml:"name" env:"APP_NAME" env-default:"logvault"`
		Version string `yaml:"version" env:"APP_VERSION" env-default:"dev"`
	}

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	}

	HTTP struct {
		Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"5s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"3s"`
	}

	Prometheus struct {
		Port string `yaml:"port" env:"PROMETHEUS_PORT" env-default:"9090"`
	}

	Store struct {
		Retention     time.Duration `yaml:"retention" env:"STORE_RETENTION" env-default:"1h"`
		SweepInterval time.Duration `yaml:"sweep_interval" env:"STORE_SWEEP_INTERVAL" env-default:"5m"`
	}

	Kafka struct {
		Enabled bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"logs.ingested"`
	}
)

const (
	DefaultConfigPath = "config/config.yaml"
	DefaultEnvPath    = ".env"
)

var ErrInvalidConfig = errors.New("invalid config")

// LoadDotEnv loads variables from the file named by APP_ENV_PATH (default .env).
// A missing file is not an error.
func LoadDotEnv() error {
	envPath := lookupPath("APP_ENV_PATH", DefaultEnvPath)
	if err := godotenv.Load(envPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", envPath).Debug("No .env file, skipping")
			return nil
		}
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}

// Path returns the config file path from APP_CONFIG_PATH or the default.
func Path() string {
	return lookupPath("APP_CONFIG_PATH", DefaultConfigPath)
}

func New() (*Config, error) {
	return Load(Path())
}

// Load reads path and applies environment overrides. Without the file only
// the environment and defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errorsUtils.WrapPathErr(err)
		}
		log.WithField("path", path).Info("Config file not found, using environment")
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		return cfg, cfg.validate()
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if err := cleanenv.UpdateEnv(cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Store.Retention <= 0 {
		return errorsUtils.Join(ErrInvalidConfig, errors.New("store.retention must be positive"))
	}
	if c.Store.SweepInterval <= 0 {
		return errorsUtils.Join(ErrInvalidConfig, errors.New("store.sweep_interval must be positive"))
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 || c.HTTP.ShutdownTimeout <= 0 {
		return errorsUtils.Join(ErrInvalidConfig, errors.New("http timeouts must be positive"))
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return errorsUtils.Join(ErrInvalidConfig, errors.New("kafka.brokers and kafka.topic are required when kafka is enabled"))
	}
	return nil
}

func lookupPath(env, def string) string {
	p, ok := os.LookupEnv(env)
	if !ok || p == "" {
		return def
	}
	return p
}
