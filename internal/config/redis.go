package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// deadlineRedisAddrEnv lets the item store live on a different instance
	// than other services that share REDIS_ADDR.
	deadlineRedisAddrEnv = "DEADLINE_REDIS_ADDR"
	redisAddrEnv         = "REDIS_ADDR"
	redisPasswordEnv     = "REDIS_PASSWORD"
	redisDBEnv           = "REDIS_DB"
	redisTLSEnv          = "REDIS_TLS"
	redisDialTimeoutEnv  = "REDIS_DIAL_TIMEOUT"

	defaultRedisAddr        = "localhost:6379"
	defaultRedisDB          = 0
	defaultRedisDialTimeout = 5 * time.Second
)

// RedisConfig describes the connection to the item store.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	TLS         bool
	DialTimeout time.Duration
}

func LoadRedisConfig() (*RedisConfig, error) {
	addr := os.Getenv(deadlineRedisAddrEnv)
	if addr == "" {
		addr = os.Getenv(redisAddrEnv)
	}
	if addr == "" {
		addr = defaultRedisAddr
	}

	db := defaultRedisDB
	if raw := os.Getenv(redisDBEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return nil, ErrInvalidRedisDB
		}
		db = parsed
	}

	useTLS := false
	if raw := os.Getenv(redisTLSEnv); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRedisTLS, raw)
		}
		useTLS = parsed
	}

	dialTimeout := defaultRedisDialTimeout
	if raw := os.Getenv(redisDialTimeoutEnv); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRedisDialTimeout, raw)
		}
		dialTimeout = parsed
	}

	return &RedisConfig{
		Addr:        addr,
		Password:    os.Getenv(redisPasswordEnv),
		DB:          db,
		TLS:         useTLS,
		DialTimeout: dialTimeout,
	}, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}

// Options builds the client options for the item store.
func (c *RedisConfig) Options() *redis.Options {
	opts := &redis.Options{
		Addr:        c.Addr,
		Password:    c.Password,
		DB:          c.DB,
		DialTimeout: c.DialTimeout,
	}
	if c.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}
