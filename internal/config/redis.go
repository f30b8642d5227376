package config

// Redis backs the response cache and the rate limiter.  If the server cannot
// be reached at startup, NewRedisClient returns nil and callers degrade
// gracefully by disabling both.

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	TLS      bool   `env:"TLS" envDefault:"false"`
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
}

// NewRedisClient instantiates a Redis client and pings it with a short
// timeout.  The returned client is nil when Redis is disabled or
// unreachable.
func NewRedisClient(ctx context.Context, conf Redis) *redis.Client {
	if !conf.Enabled {
		return nil
	}
	var tlsConf *tls.Config
	if conf.TLS {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      conf.Addr,
		Password:  conf.Password,
		DB:        conf.DB,
		TLSConfig: tlsConf,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
