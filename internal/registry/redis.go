package registry

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const usersKey = "tubesum:users"

type redisRegistry struct {
	rdb *redis.Client
}

// OpenRedis connects using a redis:// URL.
func OpenRedis(ctx context.Context, url string) (Registry, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &redisRegistry{rdb: rdb}, nil
}

func (r *redisRegistry) Contains(ctx context.Context, id int64) (bool, error) {
	ok, err := r.rdb.SIsMember(ctx, usersKey, id).Result()
	if err != nil {
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return ok, nil
}

func (r *redisRegistry) Insert(ctx context.Context, id int64) error {
	if err := r.rdb.SAdd(ctx, usersKey, id).Err(); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *redisRegistry) All(ctx context.Context) ([]int64, error) {
	members, err := r.rdb.SMembers(ctx, usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad member %q: %w", m, err)
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (r *redisRegistry) Close() error { return r.rdb.Close() }
