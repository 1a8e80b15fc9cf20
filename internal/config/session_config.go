package config

// StoreKind selects where session keys are kept.
type StoreKind string

const (
	StoreMemory StoreKind = "memory"
	StoreFile   StoreKind = "file"
	StoreRedis  StoreKind = "redis"
)

type SessionConfig interface {
	GetSessionStore() StoreKind
	GetSessionFile() string
	GetSessionPassphrase() string
	GetRedis() RedisSettings
}

type SessionSettings struct {
	Store      StoreKind     `yaml:"store" env:"TCMS_SESSION_STORE" env-default:"file" env-description:"memory, file or redis"`
	File       string        `yaml:"file" env:"TCMS_SESSION_FILE" env-default:".tcms-session.json" env-description:"session file for the file store"`
	Passphrase string        `yaml:"passphrase" env:"TCMS_SESSION_PASSPHRASE" env-description:"seals the session file when set"`
	Redis      RedisSettings `yaml:"redis"`
}

type RedisSettings struct {
	Addr     string `yaml:"addr" env:"TCMS_REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"TCMS_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"TCMS_REDIS_DB" env-default:"0"`
	Prefix   string `yaml:"prefix" env:"TCMS_REDIS_PREFIX" env-default:"tcms"`
}

func (c mainConfig) GetSessionStore() StoreKind {
	return c.settings.Session.Store
}

func (c mainConfig) GetSessionFile() string {
	return c.settings.Session.File
}

func (c mainConfig) GetSessionPassphrase() string {
	return c.settings.Session.Passphrase
}

func (c mainConfig) GetRedis() RedisSettings {
	return c.settings.Session.Redis
}
