package config

import "strings"

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	IsDev() bool
}

type AppSettings struct {
	Name     string `yaml:"name" env:"TCMS_APP_NAME" env-default:"TCMS" env-description:"name shown in the banner"`
	Env      string `yaml:"env" env:"TCMS_ENV" env-default:"DEV" env-description:"DEV for console logs, anything else for JSON"`
	LogLevel string `yaml:"log_level" env:"TCMS_LOG_LEVEL" env-default:"info" env-description:"zerolog level"`
}

func (c mainConfig) GetAppName() string {
	return c.settings.App.Name
}

func (c mainConfig) GetEnv() string {
	return strings.ToUpper(c.settings.App.Env)
}

func (c mainConfig) GetLogLevel() string {
	return c.settings.App.LogLevel
}

func (c mainConfig) IsDev() bool {
	return c.GetEnv() == "DEV"
}
