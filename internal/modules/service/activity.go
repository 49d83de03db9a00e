package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rehablink-io/Rehablink/internal/config"
	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/repo"
)

// EventPublisher is the slice of the rabbitmq publisher the services need.
type EventPublisher interface {
	PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error
}

type RecordActivityInput struct {
	UserID        uuid.UUID
	RelatedUserID *uuid.UUID
	SessionID     *uuid.UUID
	ExerciseID    *uuid.UUID
	Type          model.ActivityType
	Title         string
	Description   string
	Metadata      map[string]interface{}
	Visibility    model.Visibility
}

type ActivityService interface {
	Record(ctx context.Context, in RecordActivityInput) (*model.Activity, error)
	// Feed merges the viewer's own activities with those of their active
	// counterparts, scoped by visibility.
	Feed(ctx context.Context, userID uuid.UUID, role model.Role, limit, offset int) ([]model.Activity, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.Activity, error)
	Stats(ctx context.Context, userID uuid.UUID, period string) (*repo.ActivityStats, error)
	// MarkRead and Archive flag one of the caller's own entries; entries
	// belonging to someone else read as absent.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	Archive(ctx context.Context, id, userID uuid.UUID) error
}

type ActivityRecordedEvent struct {
	ActivityID uuid.UUID          `json:"activity_id"`
	UserID     uuid.UUID          `json:"user_id"`
	Type       model.ActivityType `json:"type"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type activityService struct {
	r    repo.ActivityRepo
	rels repo.RelationshipRepo
	pub  EventPublisher
	cfg  *config.Config
	log  *zap.Logger
}

func NewActivityService(r repo.ActivityRepo, rels repo.RelationshipRepo, pub EventPublisher, cfg *config.Config, log *zap.Logger) ActivityService {
	return &activityService{r: r, rels: rels, pub: pub, cfg: cfg, log: log}
}

func (s *activityService) Record(ctx context.Context, in RecordActivityInput) (*model.Activity, error) {
	if in.UserID == uuid.Nil || in.Type == "" || in.Title == "" {
		return nil, fmt.Errorf("%w: user_id, type and title are required", ErrValidation)
	}
	if in.Visibility == "" {
		in.Visibility = model.VisibilityPublic
	}

	a := &model.Activity{
		UserID:        in.UserID,
		RelatedUserID: in.RelatedUserID,
		SessionID:     in.SessionID,
		ExerciseID:    in.ExerciseID,
		Type:          in.Type,
		Title:         in.Title,
		Description:   in.Description,
		Metadata:      datatypes.JSONMap(in.Metadata),
		Visibility:    in.Visibility,
	}
	if err := s.r.Create(ctx, a); err != nil {
		return nil, err
	}

	// Downstream projections consume the ledger through the broker; a publish
	// failure must not undo the write.
	if s.pub != nil {
		evt := ActivityRecordedEvent{
			ActivityID: a.ID,
			UserID:     a.UserID,
			Type:       a.Type,
			OccurredAt: a.CreatedAt,
		}
		if err := s.pub.PublishJSON(ctx, s.cfg.RabbitMQ.ExchangeName.Activity, s.cfg.RabbitMQ.RoutingKey.ActivityRecorded, evt); err != nil {
			s.log.Warn("publish activity event failed",
				zap.String("activity_id", a.ID.String()), zap.Error(err))
		}
	}
	return a, nil
}

func (s *activityService) Feed(ctx context.Context, userID uuid.UUID, role model.Role, limit, offset int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	counterparts, err := s.rels.ListActiveCounterparts(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	return s.r.Feed(ctx, userID, role, counterparts, limit, offset)
}

func (s *activityService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.r.Recent(ctx, userID, limit)
}

func (s *activityService) Stats(ctx context.Context, userID uuid.UUID, period string) (*repo.ActivityStats, error) {
	var since time.Time
	switch period {
	case "", "all":
		since = time.Time{}
	case "day":
		since = time.Now().AddDate(0, 0, -1)
	case "week":
		since = time.Now().AddDate(0, 0, -7)
	case "month":
		since = time.Now().AddDate(0, -1, 0)
	default:
		return nil, fmt.Errorf("%w: unknown period %q", ErrValidation, period)
	}
	stats, err := s.r.Stats(ctx, userID, since)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return stats, err
}

func (s *activityService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.r.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: activity %s", ErrNotFound, id)
	}
	return nil
}

func (s *activityService) Archive(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.r.Archive(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: activity %s", ErrNotFound, id)
	}
	return nil
}
