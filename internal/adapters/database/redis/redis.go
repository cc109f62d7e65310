package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/241luca/soccer-manager/internal/adapters/database/redis/sessions"
)

type Client struct {
	Sessions *sessions.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	sessionStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := sessionStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping session storage: %w", err)
	}

	return &Client{
		Sessions: sessions.NewStorage(sessionStorage),
	}, nil
}
