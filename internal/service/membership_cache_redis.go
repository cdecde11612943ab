package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisMembershipCache envuelve un MembershipGuard con una caché TTL
// en Redis. La membresía ya se verifica en modo mejor-esfuerzo (hay
// ventana entre chequeo y escritura), así que un TTL corto no cambia
// el modelo de consistencia.
type redisMembershipCache struct {
	client redisGetSetter
	source MembershipGuard
	ttl    time.Duration
	prefix string
}

type redisGetSetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

func NewRedisMembershipCache(client *redis.Client, ttl time.Duration, source MembershipGuard) MembershipGuard {
	if client == nil || source == nil {
		return source
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &redisMembershipCache{
		client: client,
		source: source,
		ttl:    ttl,
		prefix: "membership:",
	}
}

func (c *redisMembershipCache) IsMember(ctx context.Context, userID, groupID string) (bool, error) {
	key := c.prefix + groupID + ":" + userID

	if cached, err := c.get(key); err == nil {
		return cached == "1", nil
	}

	member, err := c.source.IsMember(ctx, userID, groupID)
	if err != nil {
		return false, err
	}

	value := "0"
	if member {
		value = "1"
	}
	c.set(key, value)
	return member, nil
}

func (c *redisMembershipCache) get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return c.client.Get(ctx, key).Result()
}

// set es mejor-esfuerzo: si Redis no responde, la fuente ya contestó.
func (c *redisMembershipCache) set(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = c.client.Set(ctx, key, value, c.ttl).Err()
}
