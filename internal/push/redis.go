package push

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const topicPrefix = "rehablink:push:"

// RedisChannel fans messages out over redis pub/sub so that a subscriber on
// any server instance sees publishes from every other instance.
type RedisChannel struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedisChannel(rdb *redis.Client, log *zap.Logger) *RedisChannel {
	return &RedisChannel{rdb: rdb, log: log}
}

func topic(userID uuid.UUID) string {
	return topicPrefix + userID.String()
}

func (c *RedisChannel) Publish(ctx context.Context, userID uuid.UUID, msg Message) error {
	payload, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	return c.rdb.Publish(ctx, topic(userID), payload).Err()
}

func (c *RedisChannel) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan Message, func(), error) {
	sub := c.rdb.Subscribe(ctx, topic(userID))
	// Force the subscription onto the wire before we report success.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan Message, 16)
	go func() {
		defer close(out)
		for raw := range sub.Channel() {
			var msg Message
			if err := sonic.Unmarshal([]byte(raw.Payload), &msg); err != nil {
				c.log.Warn("drop malformed push payload",
					zap.String("topic", raw.Channel), zap.Error(err))
				continue
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		if err := sub.Close(); err != nil {
			c.log.Warn("close push subscription", zap.Error(err))
		}
	}
	return out, cancel, nil
}
