package config

import "time"

const (
	redisAddrVar     = "REDIS_ADDR"
	redisPasswordVar = "REDIS_PASSWORD"
	sessionTTLVar    = "SESSION_TTL"
)

type Session struct{}

var _ SessionConfig = Session{}

// GetRedisAddr returns the address of the Redis instance used for the
// browser-session token store. Empty means the in-memory store is used.
func (Session) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "")
}

func (Session) GetRedisPassword() string {
	return GetEnv(redisPasswordVar, "")
}

// GetSessionTTL returns how long an idle browser session (and its stored
// token pair) is retained.
func (Session) GetSessionTTL() time.Duration {
	ttl, err := time.ParseDuration(GetEnv(sessionTTLVar, "24h"))
	if err != nil {
		return 24 * time.Hour
	}
	return ttl
}
