package config

import "errors"

var (
	ErrRedisAddrMissing        = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB          = errors.New("REDIS_DB must be a non-negative integer")
	ErrInvalidRedisTLS         = errors.New("REDIS_TLS must be a boolean")
	ErrInvalidRedisDialTimeout = errors.New("REDIS_DIAL_TIMEOUT must be a positive duration")
	ErrInvalidTimezone         = errors.New("DEADLINE_TIMEZONE must be an IANA timezone name")
	ErrInvalidLegacyPlurals    = errors.New("DEADLINE_LEGACY_PLURALS must be a boolean")
	ErrInvalidTasksURL         = errors.New("PRIMIND_TASKS_URL must be an absolute http(s) URL")
)
