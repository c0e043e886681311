package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gratefultolord/intake_bot/internal/dialog"
)

const stateKeyPrefix = "intake:state:"

// Redis stores each conversation state as a JSON value. A zero TTL keeps
// states until they are deleted. A value that does not decode is reported as
// absent, so the conversation starts over and the next save replaces it.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

type RedisOption func(*Redis)

func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

func WithRedisLogger(log zerolog.Logger) RedisOption {
	return func(r *Redis) {
		r.log = log
	}
}

func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// NewRedisClient parses url and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("store.NewRedisClient: parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("store.NewRedisClient: ping: %w", err)
	}

	return client, nil
}

func (r *Redis) Load(ctx context.Context, userID string) (dialog.State, bool, error) {
	raw, err := r.client.Get(ctx, stateKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return dialog.State{}, false, nil
	}
	if err != nil {
		return dialog.State{}, false, fmt.Errorf("Redis.Load: %w", err)
	}

	var st dialog.State
	if err := json.Unmarshal(raw, &st); err != nil {
		r.log.Warn().Err(err).Str("user_id", userID).Msg("Redis.Load: undecodable state, starting over")
		return dialog.State{}, false, nil
	}

	return st, true, nil
}

func (r *Redis) Save(ctx context.Context, userID string, st dialog.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("Redis.Save: encode state: %w", err)
	}

	if err := r.client.Set(ctx, stateKeyPrefix+userID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("Redis.Save: %w", err)
	}

	return nil
}
