package sessions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/241luca/soccer-manager/internal/domain/service"
)

// Storage keeps refresh token sessions keyed by the token's jti. A key
// expires together with the refresh token it backs.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Set(ctx context.Context, jti string, session service.Session, ttl time.Duration) error {
	return s.redis.Set(ctx, jti, session.UserID+":"+session.OrganizationID, ttl).Err()
}

// Get returns the session for a jti, or nil when the token was revoked or
// expired.
func (s *Storage) Get(ctx context.Context, jti string) (*service.Session, error) {
	value, err := s.redis.Get(ctx, jti).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	userID, organizationID, _ := strings.Cut(value, ":")
	return &service.Session{
		UserID:         userID,
		OrganizationID: organizationID,
	}, nil
}

func (s *Storage) Delete(ctx context.Context, jti string) error {
	return s.redis.Del(ctx, jti).Err()
}
