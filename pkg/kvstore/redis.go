package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const maxWatchRetries = 10

// RedisStore keeps each item as a hash at "<table>:<key>" whose fields hold
// JSON-encoded attribute values. Indexed attributes are mirrored in sets at
// "idx:<table>:<attr>:<value>".
type RedisStore struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisStore(client *redis.Client, log *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		log:    log.With(zap.String("store", "redis")),
	}
}

func itemKey(table Table, key string) string {
	return table.Name + ":" + key
}

func indexKey(table Table, attr, value string) string {
	return "idx:" + table.Name + ":" + attr + ":" + value
}

// EnsureTable is a no-op: Redis keyspaces need no declaration.
func (s *RedisStore) EnsureTable(ctx context.Context, table Table) error {
	return nil
}

func (s *RedisStore) Get(ctx context.Context, table Table, key string) (Item, error) {
	fields, err := s.client.HGetAll(ctx, itemKey(table, key)).Result()
	if err != nil {
		s.log.Error("Failed to get item",
			zap.Error(err),
			zap.String("table", table.Name),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("get %s/%s: %w", table.Name, key, err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	return decodeFields(fields)
}

func (s *RedisStore) Put(ctx context.Context, table Table, key string, item Item) error {
	fields := make(map[string]any, len(item))
	for attr, value := range item {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s/%s.%s: %w", table.Name, key, attr, err)
		}
		fields[attr] = string(encoded)
	}

	hash := itemKey(table, key)
	err := s.watch(ctx, hash, func(tx *redis.Tx) error {
		previous, err := indexValues(ctx, tx, table, key)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, hash)
			if len(fields) > 0 {
				pipe.HSet(ctx, hash, fields)
			}
			for attr, value := range previous {
				pipe.SRem(ctx, indexKey(table, attr, value), key)
			}
			for _, attr := range table.Indexes {
				if value, ok := item[attr].(string); ok {
					pipe.SAdd(ctx, indexKey(table, attr, value), key)
				}
			}
			return nil
		})
		return err
	})
	if err != nil {
		s.log.Error("Failed to put item",
			zap.Error(err),
			zap.String("table", table.Name),
			zap.String("key", key),
		)
		return fmt.Errorf("put %s/%s: %w", table.Name, key, err)
	}

	return nil
}

func (s *RedisStore) Delete(ctx context.Context, table Table, key string) error {
	hash := itemKey(table, key)

	var deleted *redis.IntCmd
	err := s.watch(ctx, hash, func(tx *redis.Tx) error {
		previous, err := indexValues(ctx, tx, table, key)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			deleted = pipe.Del(ctx, hash)
			for attr, value := range previous {
				pipe.SRem(ctx, indexKey(table, attr, value), key)
			}
			return nil
		})
		return err
	})
	if err != nil {
		s.log.Error("Failed to delete item",
			zap.Error(err),
			zap.String("table", table.Name),
			zap.String("key", key),
		)
		return fmt.Errorf("delete %s/%s: %w", table.Name, key, err)
	}

	if deleted.Val() == 0 {
		return ErrNotFound
	}

	return nil
}

// watch runs fn under WATCH on hash, retrying when another writer touched
// the hash between the index read and the transaction.
func (s *RedisStore) watch(ctx context.Context, hash string, fn func(tx *redis.Tx) error) error {
	var err error
	for attempt := 0; attempt < maxWatchRetries; attempt++ {
		err = s.client.Watch(ctx, fn, hash)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		s.log.Debug("Write raced, retrying", zap.String("key", hash), zap.Int("attempt", attempt+1))
	}
	return err
}

func (s *RedisStore) Query(ctx context.Context, table Table, attr, value string) ([]Item, error) {
	if !table.indexed(attr) {
		return nil, fmt.Errorf("query %s by %s: %w", table.Name, attr, ErrNotIndexed)
	}

	keys, err := s.client.SMembers(ctx, indexKey(table, attr, value)).Result()
	if err != nil {
		s.log.Error("Failed to read index",
			zap.Error(err),
			zap.String("table", table.Name),
			zap.String("attr", attr),
		)
		return nil, fmt.Errorf("query %s by %s: %w", table.Name, attr, err)
	}
	sort.Strings(keys)

	cmds := make([]*redis.MapStringStringCmd, len(keys))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, key := range keys {
			cmds[i] = pipe.HGetAll(ctx, itemKey(table, key))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query %s by %s: %w", table.Name, attr, err)
	}

	items := make([]Item, 0, len(keys))
	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		item, err := decodeFields(fields)
		if err != nil {
			return nil, err
		}
		// The item may have been rewritten after the index was read.
		if current, _ := item[attr].(string); current != value {
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

type hashReader interface {
	HMGet(ctx context.Context, key string, fields ...string) *redis.SliceCmd
}

// indexValues returns the currently stored values of table's indexed attributes.
func indexValues(ctx context.Context, c hashReader, table Table, key string) (map[string]string, error) {
	values := make(map[string]string)
	if len(table.Indexes) == 0 {
		return values, nil
	}

	raw, err := c.HMGet(ctx, itemKey(table, key), table.Indexes...).Result()
	if err != nil {
		return nil, fmt.Errorf("read index attributes of %s/%s: %w", table.Name, key, err)
	}

	for i, v := range raw {
		encoded, ok := v.(string)
		if !ok {
			continue
		}
		var decoded string
		if err := json.Unmarshal([]byte(encoded), &decoded); err == nil {
			values[table.Indexes[i]] = decoded
		}
	}

	return values, nil
}

func decodeFields(fields map[string]string) (Item, error) {
	item := make(Item, len(fields))
	for attr, encoded := range fields {
		var value any
		if err := json.Unmarshal([]byte(encoded), &value); err != nil {
			return nil, fmt.Errorf("decode attribute %s: %w", attr, err)
		}
		item[attr] = value
	}
	return item, nil
}
