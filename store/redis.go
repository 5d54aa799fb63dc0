package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisPipelineSize = 500

// Redis stores records as plain string values and the id set as a redis set.
type Redis struct {
	rdb redis.UniversalClient
}

func NewRedis(rdb redis.UniversalClient) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Get(ctx context.Context, id string) ([]byte, error) {
	data, err := r.rdb.Get(ctx, RecordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	return data, nil
}

func (r *Redis) GetMany(ctx context.Context, ids []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(ids))
	for _, chunk := range chunks(ids, redisPipelineSize) {
		keys := make([]string, len(chunk))
		for i, id := range chunk {
			keys[i] = RecordKey(id)
		}
		vals, err := r.rdb.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, fmt.Errorf("redis mget %d keys: %w", len(keys), err)
		}
		for i, v := range vals {
			if s, ok := v.(string); ok {
				out[chunk[i]] = []byte(s)
			}
		}
	}
	return out, nil
}

func (r *Redis) PutMany(ctx context.Context, records []Record) error {
	for _, chunk := range chunks(records, redisPipelineSize) {
		members := make([]any, len(chunk))
		_, err := r.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			for i, rec := range chunk {
				pipe.Set(ctx, RecordKey(rec.ID), rec.Data, 0)
				members[i] = rec.ID
			}
			pipe.SAdd(ctx, MembersKey, members...)
			return nil
		})
		if err != nil {
			return fmt.Errorf("redis put %d records: %w", len(chunk), err)
		}
	}
	return nil
}

func (r *Redis) Count(ctx context.Context) (int64, error) {
	n, err := r.rdb.SCard(ctx, MembersKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis scard: %w", err)
	}
	return n, nil
}

func (r *Redis) Members(ctx context.Context) ([]string, error) {
	ids, err := r.rdb.SMembers(ctx, MembersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers: %w", err)
	}
	return ids, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
