package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
)

const releaseTimeout = 2 * time.Second

// SlotLocker holds a per-availability Redis key while a booking runs.
// The key carries a random token so only the owner can release it.
type SlotLocker struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

var _ availability.SlotLocker = (*SlotLocker)(nil)

func NewSlotLocker(client *redis.Client, ttl time.Duration, log *zap.Logger) *SlotLocker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &SlotLocker{client: client, ttl: ttl, log: log}
}

func lockKey(availabilityID uuid.UUID) string {
	return fmt.Sprintf("lock:availability:%s", availabilityID.String())
}

// WithSlotLock runs fn while holding the slot key. When Redis cannot be
// reached fn runs unlocked and Postgres alone picks the winner.
func (l *SlotLocker) WithSlotLock(
	ctx context.Context,
	availabilityID uuid.UUID,
	fn func(ctx context.Context) error,
) error {

	key := lockKey(availabilityID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.log.Warn("slot lock unavailable, booking without it",
			zap.String("availability_id", availabilityID.String()),
			zap.Error(err),
		)
		return fn(ctx)
	}
	if !ok {
		return availability.ErrSlotBusy
	}

	defer func() {
		if err := l.release(key, token); err != nil {
			l.log.Warn("slot lock release failed",
				zap.String("availability_id", availabilityID.String()),
				zap.Error(err),
			)
		}
	}()

	lockedCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockedCtx)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

// release runs on its own context so a cancelled request still frees the key.
func (l *SlotLocker) release(key, token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release slot lock: %w", err)
	}
	return nil
}
