package service

import (
	"context"
	"fmt"
	"time"

	"smilematch-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const scanBatchSize = 100

// SessionStore is the registry of issued tokens. A token is valid only while its key exists.
type SessionStore interface {
	Register(ctx context.Context, userID uuid.UUID, tokens ...RegisteredToken) error
	Exists(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

// RegisteredToken identifies one issued token and how long it stays valid
type RegisteredToken struct {
	TokenType jwt.TokenType
	TokenID   string
	TTL       time.Duration
}

type redisSessionStore struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSessionStore(redisClient *redis.Client, log *logrus.Logger) SessionStore {
	return &redisSessionStore{redisClient: redisClient, log: log}
}

// sessionKey returns <type>_token:<user id>:<token id>
func sessionKey(userID uuid.UUID, tokenType jwt.TokenType, tokenID string) string {
	return fmt.Sprintf("%s_token:%s:%s", tokenType, userID.String(), tokenID)
}

// Register stores all tokens in one MULTI/EXEC
func (s *redisSessionStore) Register(ctx context.Context, userID uuid.UUID, tokens ...RegisteredToken) error {
	_, err := s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, t := range tokens {
			pipe.Set(ctx, sessionKey(userID, t.TokenType, t.TokenID), "valid", t.TTL)
		}
		return nil
	})
	if err != nil {
		s.log.Warnf("Failed to store tokens in Redis: %+v", err)
		return err
	}
	return nil
}

func (s *redisSessionStore) Exists(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, sessionKey(userID, tokenType, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check token validity: %+v", err)
		return false, err
	}
	return exists > 0, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) error {
	if err := s.redisClient.Del(ctx, sessionKey(userID, tokenType, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to delete %s token: %+v", tokenType, err)
		return err
	}
	return nil
}

// RevokeAll deletes every token of the user
func (s *redisSessionStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, tokenType := range []jwt.TokenType{jwt.AccessToken, jwt.RefreshToken} {
		pattern := sessionKey(userID, tokenType, "*")
		iter := s.redisClient.Scan(ctx, 0, pattern, scanBatchSize).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			s.log.Warnf("Failed to scan %s token keys: %+v", tokenType, err)
			return err
		}
		if len(keys) == 0 {
			continue
		}
		if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
			s.log.Warnf("Failed to delete %s tokens: %+v", tokenType, err)
			return err
		}
	}
	return nil
}
