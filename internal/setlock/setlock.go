// Package setlock provides short per-collection leases so that two requests
// do not run position sweeps on the same setlist at once.
package setlock

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var ErrLocked = errors.New("collection is being modified, try again")

const keyPrefix = "bandpractise:lock:"

// Noop never blocks.
type Noop struct{}

func (Noop) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}

// release deletes the key only if it still holds our token.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis takes the lock with SET NX PX. A lock that is not released expires
// after ttl.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ok, err := r.rdb.SetNX(ctx, keyPrefix+key, token, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "lock %s", key)
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() {
		// the request context may already be done
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := release.Run(ctx, r.rdb, []string{keyPrefix + key}, token).Err(); err != nil {
			log.Printf("bandpractise: release lock %s: %v", key, err)
		}
	}, nil
}
