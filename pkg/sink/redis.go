package sink

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/agentstation/partsync/pkg/constants"
	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/records"
)

// RedisSink stores every record as a hash at <prefix>:<collection>:<name>
// and indexes names in the set <prefix>:<collection>.
type RedisSink struct {
	Addr   string
	DB     int
	prefix string
	client *redis.Client
}

// NewRedisSink connects lazily to addr.
func NewRedisSink(addr, password string, db int, prefix string) *RedisSink {
	if addr == "" {
		addr = constants.DefaultRedisAddr
	}
	if prefix == "" {
		prefix = constants.DefaultSinkPrefix
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisSink{Addr: addr, DB: db, prefix: prefix, client: rdb}
}

// Ping checks the connection.
func (s *RedisSink) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.WrapResource("connect", "sink", s.Addr, err)
	}
	return nil
}

// Write stores rec in a single transaction.
func (s *RedisSink) Write(ctx context.Context, collection string, rec *records.Record) error {
	name := rec.Name()
	if name == "" {
		return errors.NewMissingNameError("sink", -1)
	}

	values := make([]any, 0, 2*rec.Len())
	for _, k := range rec.Keys() {
		values = append(values, k, rec.Value(k))
	}

	hashKey := Key(s.prefix, collection, name)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, hashKey)
		pipe.HSet(ctx, hashKey, values...)
		pipe.SAdd(ctx, Key(s.prefix, collection), name)
		return nil
	})
	if err != nil {
		return errors.WrapResource("publish", "component", hashKey, err)
	}
	return nil
}

// Read returns the stored fields of one record.
func (s *RedisSink) Read(ctx context.Context, collection, name string) (map[string]string, error) {
	hashKey := Key(s.prefix, collection, name)
	vals, err := s.client.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return nil, errors.WrapResource("read", "component", hashKey, err)
	}
	if len(vals) == 0 {
		return nil, errors.NewNotFoundError("component", hashKey)
	}
	return vals, nil
}

// Close releases the client.
func (s *RedisSink) Close() error {
	return s.client.Close()
}
