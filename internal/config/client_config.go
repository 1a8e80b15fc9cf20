package config

import "time"

type ClientConfig interface {
	GetBaseURL() string
	GetReportTimeout() time.Duration
}

type ClientSettings struct {
	BaseURL       string        `yaml:"base_url" env:"TCMS_BASE_URL" env-default:"http://localhost:8000" env-description:"backend origin"`
	ReportTimeout time.Duration `yaml:"report_timeout" env:"TCMS_REPORT_TIMEOUT" env-default:"60s" env-description:"deadline for attendance report generation"`
}

func (c mainConfig) GetBaseURL() string {
	return c.settings.Client.BaseURL
}

func (c mainConfig) GetReportTimeout() time.Duration {
	return c.settings.Client.ReportTimeout
}
