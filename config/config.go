package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v8"
)

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"imgconv"`
	Port    string `env:"PORT" envDefault:"8080"`

	// Upload policy. Fixed at startup; the validator and the conversion
	// service read from here instead of free-floating constants.
	MaxUploadSizeBytes int64 `env:"MAX_UPLOAD_SIZE_BYTES" envDefault:"10485760"`
	MaxFilenameLength  int   `env:"MAX_FILENAME_LENGTH" envDefault:"255"`
	DefaultQuality     int   `env:"DEFAULT_QUALITY" envDefault:"90"`
	MaxDimension       int   `env:"MAX_DIMENSION" envDefault:"10000"`

	ConversionTimeoutInSec int `env:"CONVERSION_TIMEOUT_IN_SEC" envDefault:"30"`

	RateLimitMaxRequests   int `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"100"`
	RateLimitDurationInSec int `env:"RATE_LIMIT_DURATION_IN_SEC" envDefault:"5"`
}

func (c *Config) ConversionTimeout() time.Duration {
	return time.Duration(c.ConversionTimeoutInSec) * time.Second
}

func (c *Config) RateLimitDuration() time.Duration {
	return time.Duration(c.RateLimitDurationInSec) * time.Second
}

func New() *Config {
	conf := &Config{}

	if err := env.Parse(conf); err != nil {
		slog.Error(err.Error())

		panic("Failed to parse config")
	}

	return conf
}
