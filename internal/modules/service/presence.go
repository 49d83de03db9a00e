package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/repo"
	"github.com/rehablink-io/Rehablink/internal/push"
)

type PresenceService interface {
	// Connect registers a transport connection, persists the online flag and
	// tells active counterparts about the status change.
	Connect(ctx context.Context, connID string, userID uuid.UUID, role model.Role) error
	// Disconnect is the mirror operation; the user only goes offline when
	// their last connection is gone.
	Disconnect(ctx context.Context, connID string) error
	// SetStatus flips the online flag without touching the transport
	// connection (explicit opt-out while staying connected).
	SetStatus(ctx context.Context, userID uuid.UUID, role model.Role, online bool) error
	IsOnline(ctx context.Context, userID uuid.UUID) (bool, error)
}

type presenceService struct {
	store PresenceStore
	users repo.UserRepo
	rels  RelationshipService
	ch    push.Channel
	log   *zap.Logger
}

func NewPresenceService(store PresenceStore, users repo.UserRepo, rels RelationshipService, ch push.Channel, log *zap.Logger) PresenceService {
	return &presenceService{store: store, users: users, rels: rels, ch: ch, log: log}
}

func (s *presenceService) Connect(ctx context.Context, connID string, userID uuid.UUID, role model.Role) error {
	if connID == "" || userID == uuid.Nil || !role.Valid() {
		return ErrValidation
	}
	if err := s.store.Add(ctx, connID, userID, role); err != nil {
		return err
	}
	now := time.Now()
	if err := s.users.SetPresence(ctx, userID, true, now); err != nil {
		return err
	}
	s.broadcastStatus(ctx, userID, role, true, now)
	return nil
}

func (s *presenceService) Disconnect(ctx context.Context, connID string) error {
	userID, role, remaining, err := s.store.Remove(ctx, connID)
	if errors.Is(err, ErrConnUnknown) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if remaining {
		// Another tab or device keeps the user online.
		return nil
	}
	now := time.Now()
	if err := s.users.SetPresence(ctx, userID, false, now); err != nil {
		return err
	}
	s.broadcastStatus(ctx, userID, role, false, now)
	return nil
}

func (s *presenceService) SetStatus(ctx context.Context, userID uuid.UUID, role model.Role, online bool) error {
	now := time.Now()
	if err := s.users.SetPresence(ctx, userID, online, now); err != nil {
		return err
	}
	s.broadcastStatus(ctx, userID, role, online, now)
	return nil
}

func (s *presenceService) IsOnline(ctx context.Context, userID uuid.UUID) (bool, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return u.IsOnline, nil
}

// broadcastStatus pushes a status_change event to every active counterpart.
// Best-effort: counterparts without a live channel just miss the event, the
// persisted flags reconcile them on reconnect.
func (s *presenceService) broadcastStatus(ctx context.Context, userID uuid.UUID, role model.Role, online bool, lastSeen time.Time) {
	if s.ch == nil {
		return
	}
	targets, err := s.rels.ActiveCounterparts(ctx, userID, role)
	if err != nil {
		s.log.Warn("resolve presence counterparts failed",
			zap.String("user_id", userID.String()), zap.Error(err))
		return
	}
	if len(targets) == 0 {
		return
	}

	msg := push.Message{
		Type: push.EventStatusChange,
		Data: map[string]interface{}{
			"user_id":   userID.String(),
			"role":      string(role),
			"is_online": online,
			"last_seen": lastSeen.UTC().Format(time.RFC3339),
		},
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, target := range targets {
		g.Go(func() error {
			if err := s.ch.Publish(gctx, target, msg); err != nil {
				s.log.Warn("status push failed",
					zap.String("target", target.String()), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
