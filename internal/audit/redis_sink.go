package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSink appends entries to a capped Redis list, oldest first.
type RedisSink struct {
	client     redis.Cmdable
	key        string
	maxEntries int64
}

// NewRedisSink returns a sink writing to key. maxEntries <= 0 disables trimming.
func NewRedisSink(client redis.Cmdable, key string, maxEntries int64) *RedisSink {
	return &RedisSink{client: client, key: key, maxEntries: maxEntries}
}

func (s *RedisSink) Record(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.key, data)
	if s.maxEntries > 0 {
		pipe.LTrim(ctx, s.key, -s.maxEntries, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store audit entry: %w", err)
	}
	return nil
}

// Recent returns up to limit of the newest entries in the order they were recorded.
func (s *RedisSink) Recent(ctx context.Context, limit int64) ([]Entry, error) {
	if limit <= 0 {
		return []Entry{}, nil
	}
	raw, err := s.client.LRange(ctx, s.key, -limit, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read audit entries: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
