package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces this module's keys in a shared Redis database.
const keyPrefix = "pipocas:"

func init() {
	Register("redis", openRedis)
}

// redisStore holds all payloads in two Redis keys, however many entries the
// store carries:
//
//   - {prefix}archives — a hash of payloads (field = download URL). Fields
//     expire individually through HPEXPIRE, so Redis drops stale payloads
//     without application-side sweeps.
//   - {prefix}recency  — a sorted set ordering the same fields by
//     last-access time in microseconds.
//
// Both Get and Put run as Lua scripts so the touch and the write-plus-evict
// are each atomic. HPEXPIRE needs Redis 7.4+ or Valkey 8+; on older servers
// payloads are stored but never expire.
type redisStore struct {
	client     *redis.Client
	ttl        time.Duration
	maxEntries int
	notify     EvictNotify
	logger     Logger
	archiveKey string
	recencyKey string
}

// touchScript reads a payload and refreshes its recency score on a hit.
//
// KEYS[1] = archives hash, KEYS[2] = recency sorted set
// ARGV[1] = now in µs, ARGV[2] = field (download URL)
var touchScript = redis.NewScript(`
local val = redis.call('HGET', KEYS[1], ARGV[2])
if val then
    redis.call('ZADD', KEYS[2], ARGV[1], ARGV[2])
end
return val
`)

// writeScript stores a payload with a per-field TTL, refreshes its recency
// score, and pops the oldest fields while the store is over capacity. A
// recency member whose hash field already expired still gets popped; the
// HDEL is then a no-op and the stale member is gone.
//
// KEYS[1] = archives hash, KEYS[2] = recency sorted set
// ARGV[1] = payload, ARGV[2] = now in µs, ARGV[3] = field,
// ARGV[4] = max entries, ARGV[5] = TTL in ms
//
// Returns the dropped field names, possibly empty.
var writeScript = redis.NewScript(`
local field = ARGV[3]
local max   = tonumber(ARGV[4])
local ttl   = tonumber(ARGV[5])

redis.call('HSET', KEYS[1], field, ARGV[1])
redis.call('HPEXPIRE', KEYS[1], ttl, 'FIELDS', 1, field)
redis.call('ZADD', KEYS[2], ARGV[2], field)

local size = redis.call('ZCARD', KEYS[2])
local dropped = {}
while size > max do
    local oldest = redis.call('ZPOPMIN', KEYS[2], 1)
    if #oldest == 0 then break end
    redis.call('HDEL', KEYS[1], oldest[1])
    table.insert(dropped, oldest[1])
    size = size - 1
end

return dropped
`)

func openRedis(opts Options) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddress,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisStore{
		client:     client,
		ttl:        opts.TTL,
		maxEntries: opts.MaxEntries,
		notify:     opts.OnEvict,
		logger:     opts.Logger,
		archiveKey: keyPrefix + "archives",
		recencyKey: keyPrefix + "recency",
	}, nil
}

func (s *redisStore) scriptKeys() []string {
	return []string{s.archiveKey, s.recencyKey}
}

func (s *redisStore) logError(msg string, err error) {
	if s.logger != nil {
		s.logger.Error(msg, err)
	}
}

func (s *redisStore) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	now := strconv.FormatInt(time.Now().UnixMicro(), 10)
	val, err := touchScript.Run(ctx, s.client, s.scriptKeys(), now, key).Text()
	if err != nil {
		// redis.Nil is a plain miss
		if !errors.Is(err, redis.Nil) {
			s.logError("redis store get failed", err)
		}
		return nil, false
	}
	return []byte(val), true
}

func (s *redisStore) Put(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	now := strconv.FormatInt(time.Now().UnixMicro(), 10)
	dropped, err := writeScript.Run(ctx, s.client, s.scriptKeys(),
		value, now, key,
		strconv.Itoa(s.maxEntries),
		strconv.FormatInt(s.ttl.Milliseconds(), 10),
	).StringSlice()
	if err != nil {
		s.logError("redis store put failed", err)
		return
	}

	if s.notify != nil {
		for _, key := range dropped {
			s.notify(key, nil)
		}
	}
}

func (s *redisStore) Has(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ok, err := s.client.HExists(ctx, s.archiveKey, key).Result()
	if err != nil {
		s.logError("redis store has failed", err)
		return false
	}
	return ok
}

func (s *redisStore) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := s.client.HLen(ctx, s.archiveKey).Result()
	if err != nil {
		s.logError("redis store len failed", err)
		return 0
	}
	return int(n)
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
