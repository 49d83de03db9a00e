package push

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// LocalChannel is an in-process Channel for single-instance deployments and
// tests. Subscribers with a full buffer miss messages rather than blocking
// the publisher.
type LocalChannel struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[*localSub]struct{}
}

type localSub struct {
	ch chan Message
}

func NewLocalChannel() *LocalChannel {
	return &LocalChannel{subs: make(map[uuid.UUID]map[*localSub]struct{})}
}

func (c *LocalChannel) Publish(_ context.Context, userID uuid.UUID, msg Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for s := range c.subs[userID] {
		select {
		case s.ch <- msg:
		default:
		}
	}
	return nil
}

func (c *LocalChannel) Subscribe(_ context.Context, userID uuid.UUID) (<-chan Message, func(), error) {
	s := &localSub{ch: make(chan Message, 16)}

	c.mu.Lock()
	if c.subs[userID] == nil {
		c.subs[userID] = make(map[*localSub]struct{})
	}
	c.subs[userID][s] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs[userID], s)
			if len(c.subs[userID]) == 0 {
				delete(c.subs, userID)
			}
			c.mu.Unlock()
			close(s.ch)
		})
	}
	return s.ch, cancel, nil
}
