package config

import "time"

type Config interface {
	EnvConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetAPIBaseURL() string
	GetEnv() string
}

type SessionConfig interface {
	GetRedisAddr() string
	GetRedisPassword() string
	GetSessionTTL() time.Duration
}

type mainConfig struct {
	EnvVars
	Session
}

func New() Config {
	return mainConfig{}
}
