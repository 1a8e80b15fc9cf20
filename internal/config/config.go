package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jrsteele09/tcms-client/internal/errors"
)

// ConfigPathEnvVar names a YAML file to read before the environment.
const ConfigPathEnvVar = "TCMS_CONFIG"

type Config interface {
	EnvConfig
	ClientConfig
	SessionConfig
	TelemetryConfig
}

// Settings is the full configuration. Environment variables override the YAML file.
type Settings struct {
	App       AppSettings       `yaml:"app"`
	Client    ClientSettings    `yaml:"client"`
	Session   SessionSettings   `yaml:"session"`
	Telemetry TelemetrySettings `yaml:"telemetry"`
}

type mainConfig struct {
	settings Settings
}

var _ Config = mainConfig{}

// Load reads path, or the file named by TCMS_CONFIG when path is "", then the environment.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}

	var s Settings
	if path != "" {
		if err := cleanenv.ReadConfig(path, &s); err != nil {
			return nil, fmt.Errorf("[config Load] read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&s); err != nil {
		return nil, fmt.Errorf("[config Load] read env: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return mainConfig{settings: s}, nil
}

// Usage describes every environment variable Load reads.
func Usage() string {
	desc, err := cleanenv.GetDescription(&Settings{}, nil)
	if err != nil {
		return err.Error()
	}
	return desc
}

func (s Settings) validate() error {
	switch s.Session.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return errors.Wrapf(errors.ErrInvalidArgument, "[config] unknown session store %q", s.Session.Store)
	}
	if s.Session.Store == StoreFile && strings.TrimSpace(s.Session.File) == "" {
		return errors.Wrapf(errors.ErrInvalidArgument, "[config] session file is required for the file store")
	}
	if s.Session.Store == StoreRedis && strings.TrimSpace(s.Session.Redis.Addr) == "" {
		return errors.Wrapf(errors.ErrInvalidArgument, "[config] redis address is required for the redis store")
	}
	if strings.TrimSpace(s.Client.BaseURL) == "" {
		return errors.Wrapf(errors.ErrInvalidArgument, "[config] base url is required")
	}
	return nil
}
