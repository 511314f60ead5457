package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	localCache "git.solsynth.dev/hypernet/circle/pkg/internal/cache"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// InitializeSessions picks the session store from settings.
func InitializeSessions() error {
	var backend SessionStore
	switch kind := viper.GetString("sessions.store"); kind {
	case "", "memory":
		if localCache.S == nil {
			if err := localCache.NewStore(); err != nil {
				return fmt.Errorf("unable to create session cache: %v", err)
			}
		}
		backend = NewCacheSessionStore(localCache.S, localCache.Wait)
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     viper.GetString("sessions.redis.addr"),
			Password: viper.GetString("sessions.redis.password"),
			DB:       viper.GetInt("sessions.redis.db"),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("unable to connect to redis: %v", err)
		}
		backend = NewRedisSessionStore(rdb)
	default:
		return fmt.Errorf("unknown session store %q", kind)
	}

	Sessions = NewSessionManager(backend, viper.GetDuration("sessions.ttl"))
	log.Info().Str("store", viper.GetString("sessions.store")).Msg("Session store is ready.")
	return nil
}

// CacheSessionStore keeps sessions in the process local cache,
// they are gone once the process restarts. Writes are flushed before
// returning since the next request reads them straight away.
type CacheSessionStore struct {
	marshal *marshaler.Marshaler
	flush   func()
}

func NewCacheSessionStore(s store.StoreInterface, flush func()) *CacheSessionStore {
	if flush == nil {
		flush = func() {}
	}
	return &CacheSessionStore{marshal: marshaler.New(cache.New[any](s)), flush: flush}
}

func (v *CacheSessionStore) Load(ctx context.Context, key string, out any) error {
	if _, err := v.marshal.Get(ctx, key, out); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	return nil
}

func (v *CacheSessionStore) Save(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := v.marshal.Set(ctx, key, value, store.WithExpiration(ttl)); err != nil {
		return fmt.Errorf("unable to write session cache: %v", err)
	}
	v.flush()
	return nil
}

func (v *CacheSessionStore) Remove(ctx context.Context, key string) error {
	if err := v.marshal.Delete(ctx, key); err != nil {
		return err
	}
	v.flush()
	return nil
}

// RedisSessionStore shares sessions between several circle instances.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client, prefix: "circle:session:"}
}

func (v *RedisSessionStore) Load(ctx context.Context, key string, out any) error {
	raw, err := v.client.Get(ctx, v.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrSessionNotFound
	} else if err != nil {
		return err
	}
	return jsoniter.Unmarshal(raw, out)
}

func (v *RedisSessionStore) Save(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := jsoniter.Marshal(value)
	if err != nil {
		return err
	}
	return v.client.Set(ctx, v.prefix+key, raw, ttl).Err()
}

func (v *RedisSessionStore) Remove(ctx context.Context, key string) error {
	return v.client.Del(ctx, v.prefix+key).Err()
}
