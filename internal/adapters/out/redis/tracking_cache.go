// Package redis keeps public tracking snapshots in Redis in front of the order store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

// keyTracking is tracking:{order_id} -> JSON ports.TrackingSnapshot.
const keyTracking = "tracking:%s"

// DefaultTTL bounds how stale a snapshot can get if a write after a commit is lost.
const DefaultTTL = 5 * time.Minute

// setIfNewer writes ARGV[1] with a PX of ARGV[3] unless the cached snapshot already
// carries a version >= ARGV[2]. Returns 1 when written.
var setIfNewer = goredis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current then
	local ok, cached = pcall(cjson.decode, current)
	if ok and type(cached) == 'table' and tonumber(cached.version) and tonumber(cached.version) >= tonumber(ARGV[2]) then
		return 0
	end
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

var _ ports.TrackingCache = (*TrackingCache)(nil)

// TrackingCache implements ports.TrackingCache.
type TrackingCache struct {
	client goredis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewTrackingCache wraps a client. prefix namespaces keys per deployment and may be empty.
func NewTrackingCache(client goredis.Cmdable, prefix string, ttl time.Duration) *TrackingCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TrackingCache{client: client, prefix: prefix, ttl: ttl}
}

// NewClient opens a client for addr.
func NewClient(addr string) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

func (c *TrackingCache) Get(ctx context.Context, orderID string) (ports.TrackingSnapshot, bool, error) {
	raw, err := c.client.Get(ctx, c.key(orderID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return ports.TrackingSnapshot{}, false, nil
	}
	if err != nil {
		return ports.TrackingSnapshot{}, false, fmt.Errorf("get tracking snapshot %s: %w", orderID, err)
	}

	var snapshot ports.TrackingSnapshot
	if err = json.Unmarshal(raw, &snapshot); err != nil {
		return ports.TrackingSnapshot{}, false, fmt.Errorf("decode tracking snapshot %s: %w", orderID, err)
	}
	return snapshot, true, nil
}

// Set stores snapshot unless the cache already holds the same or a newer version.
// An undecodable entry is overwritten.
func (c *TrackingCache) Set(ctx context.Context, snapshot ports.TrackingSnapshot) (bool, error) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return false, fmt.Errorf("encode tracking snapshot %s: %w", snapshot.OrderID, err)
	}
	written, err := setIfNewer.Run(ctx, c.client,
		[]string{c.key(snapshot.OrderID)},
		raw, snapshot.Version, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("set tracking snapshot %s: %w", snapshot.OrderID, err)
	}
	return written == 1, nil
}

func (c *TrackingCache) key(orderID string) string {
	key := fmt.Sprintf(keyTracking, orderID)
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}
