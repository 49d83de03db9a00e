package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
)

// PresenceStore tracks live transport connections. Records are transient:
// nothing here survives a restart, the persisted user flags do.
type PresenceStore interface {
	// Add registers a connection for a user. A user may hold several
	// connections (multiple tabs or devices).
	Add(ctx context.Context, connID string, userID uuid.UUID, role model.Role) error
	// Remove drops the connection and reports its owner plus whether the user
	// still has other connections.
	Remove(ctx context.Context, connID string) (userID uuid.UUID, role model.Role, remaining bool, err error)
	IsConnected(ctx context.Context, userID uuid.UUID) (bool, error)
}

var ErrConnUnknown = fmt.Errorf("unknown connection")

type presenceEntry struct {
	userID uuid.UUID
	role   model.Role
}

// memPresenceStore is the single-process implementation.
type memPresenceStore struct {
	mu    sync.RWMutex
	conns map[string]presenceEntry
	users map[uuid.UUID]map[string]struct{}
}

func NewMemPresenceStore() PresenceStore {
	return &memPresenceStore{
		conns: make(map[string]presenceEntry),
		users: make(map[uuid.UUID]map[string]struct{}),
	}
}

func (s *memPresenceStore) Add(_ context.Context, connID string, userID uuid.UUID, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[connID] = presenceEntry{userID: userID, role: role}
	if s.users[userID] == nil {
		s.users[userID] = make(map[string]struct{})
	}
	s.users[userID][connID] = struct{}{}
	return nil
}

func (s *memPresenceStore) Remove(_ context.Context, connID string) (uuid.UUID, model.Role, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.conns[connID]
	if !ok {
		return uuid.Nil, "", false, ErrConnUnknown
	}
	delete(s.conns, connID)
	delete(s.users[entry.userID], connID)
	remaining := len(s.users[entry.userID]) > 0
	if !remaining {
		delete(s.users, entry.userID)
	}
	return entry.userID, entry.role, remaining, nil
}

func (s *memPresenceStore) IsConnected(_ context.Context, userID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users[userID]) > 0, nil
}

const (
	presenceConnPrefix = "rehablink:presence:conn:"
	presenceUserPrefix = "rehablink:presence:user:"
)

// redisPresenceStore shares the connection table across server instances.
type redisPresenceStore struct {
	rdb *redis.Client
}

func NewRedisPresenceStore(rdb *redis.Client) PresenceStore {
	return &redisPresenceStore{rdb: rdb}
}

func (s *redisPresenceStore) Add(ctx context.Context, connID string, userID uuid.UUID, role model.Role) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, presenceConnPrefix+connID, userID.String()+"|"+string(role), 0)
	pipe.SAdd(ctx, presenceUserPrefix+userID.String(), connID)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisPresenceStore) Remove(ctx context.Context, connID string) (uuid.UUID, model.Role, bool, error) {
	raw, err := s.rdb.GetDel(ctx, presenceConnPrefix+connID).Result()
	if err == redis.Nil {
		return uuid.Nil, "", false, ErrConnUnknown
	}
	if err != nil {
		return uuid.Nil, "", false, err
	}
	idStr, roleStr, _ := strings.Cut(raw, "|")
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", false, fmt.Errorf("corrupt presence entry %q: %w", raw, err)
	}

	if err := s.rdb.SRem(ctx, presenceUserPrefix+idStr, connID).Err(); err != nil {
		return userID, model.Role(roleStr), false, err
	}
	n, err := s.rdb.SCard(ctx, presenceUserPrefix+idStr).Result()
	if err != nil {
		return userID, model.Role(roleStr), false, err
	}
	return userID, model.Role(roleStr), n > 0, nil
}

func (s *redisPresenceStore) IsConnected(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := s.rdb.SCard(ctx, presenceUserPrefix+userID.String()).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
