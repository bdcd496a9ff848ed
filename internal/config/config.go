package config

import "errors"

// Config holds runtime configuration for the server.
type Config struct {
	Port       string `env:"PORT" envDefault:"4000"`
	AdminToken string `env:"ADMIN_TOKEN"`
	Log        LogConfig
	Storage    StorageConfig
	Facade     FacadeConfig
	Metrics    MetricsConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	cfg.Storage.applyDefaults()
	if err := errors.Join(cfg.Storage.validate(), cfg.Facade.validate()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
