package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rehablink-io/Rehablink/internal/config"
	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/repo"
	"github.com/rehablink-io/Rehablink/internal/push"
)

type CreateNotificationInput struct {
	RecipientID    uuid.UUID
	SenderID       *uuid.UUID
	SessionID      *uuid.UUID
	RelationshipID *uuid.UUID
	ExerciseID     *uuid.UUID
	Type           model.NotificationType
	Title          string
	Message        string
	Priority       model.Priority
	Category       string
	ActionURL      string
	ActionText     string
	Metadata       map[string]interface{}
	ExpiresAt      *time.Time
}

type NotificationService interface {
	// Send persists the notification, then pushes it to the recipient and
	// publishes a delivery event. Push and publish failures do not fail Send.
	Send(ctx context.Context, in CreateNotificationInput) (*model.Notification, error)
	// SendMany fans one notification out to several recipients.
	SendMany(ctx context.Context, recipients []uuid.UUID, in CreateNotificationInput) ([]model.Notification, error)
	// SendToCounterparts fans one notification out to every active
	// counterpart of userID. No counterparts is a no-op, not an error.
	SendToCounterparts(ctx context.Context, userID uuid.UUID, role model.Role, in CreateNotificationInput) ([]model.Notification, error)
	// SendProgressAlert notifies a clinician about a finished session, with
	// priority picked from the score band.
	SendProgressAlert(ctx context.Context, clinicianID, patientID uuid.UUID, patientName string, sessionID uuid.UUID, score float64) (*model.Notification, error)
	List(ctx context.Context, recipientID uuid.UUID, opts repo.NotificationListOpts) ([]model.Notification, error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkManyRead(ctx context.Context, ids []uuid.UUID, recipientID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Archive(ctx context.Context, id, recipientID uuid.UUID) error
	Delete(ctx context.Context, id, recipientID uuid.UUID) error
	Stats(ctx context.Context, recipientID uuid.UUID) (*repo.NotificationStats, error)
}

type NotificationCreatedEvent struct {
	NotificationID uuid.UUID              `json:"notification_id"`
	RecipientID    uuid.UUID              `json:"recipient_id"`
	Type           model.NotificationType `json:"type"`
	Priority       model.Priority         `json:"priority"`
	CreatedAt      time.Time              `json:"created_at"`
}

type notificationService struct {
	r    repo.NotificationRepo
	rels repo.RelationshipRepo
	ch   push.Channel
	pub  EventPublisher
	cfg  *config.Config
	log  *zap.Logger
}

func NewNotificationService(r repo.NotificationRepo, rels repo.RelationshipRepo, ch push.Channel, pub EventPublisher, cfg *config.Config, log *zap.Logger) NotificationService {
	return &notificationService{r: r, rels: rels, ch: ch, pub: pub, cfg: cfg, log: log}
}

func (s *notificationService) build(in CreateNotificationInput) (*model.Notification, error) {
	if in.RecipientID == uuid.Nil || in.Type == "" || in.Title == "" {
		return nil, fmt.Errorf("%w: recipient_id, type and title are required", ErrValidation)
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	return &model.Notification{
		RecipientID:    in.RecipientID,
		SenderID:       in.SenderID,
		SessionID:      in.SessionID,
		RelationshipID: in.RelationshipID,
		ExerciseID:     in.ExerciseID,
		Type:           in.Type,
		Title:          in.Title,
		Message:        in.Message,
		Priority:       in.Priority,
		Category:       in.Category,
		ActionURL:      in.ActionURL,
		ActionText:     in.ActionText,
		Metadata:       datatypes.JSONMap(in.Metadata),
		ExpiresAt:      in.ExpiresAt,
	}, nil
}

func (s *notificationService) Send(ctx context.Context, in CreateNotificationInput) (*model.Notification, error) {
	n, err := s.build(in)
	if err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, n); err != nil {
		return nil, err
	}
	s.deliver(ctx, n)
	return n, nil
}

func (s *notificationService) SendMany(ctx context.Context, recipients []uuid.UUID, in CreateNotificationInput) ([]model.Notification, error) {
	if len(recipients) == 0 {
		return nil, nil
	}
	ns := make([]model.Notification, 0, len(recipients))
	for _, rid := range recipients {
		in.RecipientID = rid
		n, err := s.build(in)
		if err != nil {
			return nil, err
		}
		ns = append(ns, *n)
	}
	if err := s.r.CreateBatch(ctx, ns); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range ns {
		n := &ns[i]
		g.Go(func() error {
			s.deliver(gctx, n)
			return nil
		})
	}
	_ = g.Wait()
	return ns, nil
}

func (s *notificationService) SendToCounterparts(ctx context.Context, userID uuid.UUID, role model.Role, in CreateNotificationInput) ([]model.Notification, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	targets, err := s.rels.ListActiveCounterparts(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	in.SenderID = &userID
	return s.SendMany(ctx, targets, in)
}

// Progress alert priority bands.
const (
	progressHighBelow   = 60.0
	progressMediumBelow = 80.0
)

func (s *notificationService) SendProgressAlert(ctx context.Context, clinicianID, patientID uuid.UUID, patientName string, sessionID uuid.UUID, score float64) (*model.Notification, error) {
	priority := model.PriorityLow
	switch {
	case score < progressHighBelow:
		priority = model.PriorityHigh
	case score < progressMediumBelow:
		priority = model.PriorityMedium
	}
	return s.Send(ctx, CreateNotificationInput{
		RecipientID: clinicianID,
		SenderID:    &patientID,
		SessionID:   &sessionID,
		Type:        model.NotificationProgressAlert,
		Title:       "Session Report",
		Message:     fmt.Sprintf("%s finished a session with an average score of %.0f%%", patientName, score),
		Priority:    priority,
		Category:    "progress",
		Metadata: map[string]interface{}{
			"patient_id":    patientID.String(),
			"session_id":    sessionID.String(),
			"average_score": score,
		},
	})
}

// deliver pushes the persisted notification to the recipient and emits the
// broker event. Both legs are best-effort.
func (s *notificationService) deliver(ctx context.Context, n *model.Notification) {
	if s.ch != nil {
		msg := push.Message{
			Type: push.EventNotification,
			Data: map[string]interface{}{
				"id":       n.ID.String(),
				"type":     string(n.Type),
				"title":    n.Title,
				"message":  n.Message,
				"priority": string(n.Priority),
			},
		}
		if err := s.ch.Publish(ctx, n.RecipientID, msg); err != nil {
			s.log.Warn("push notification failed",
				zap.String("notification_id", n.ID.String()), zap.Error(err))
		} else if err := s.r.MarkDelivered(ctx, n.ID); err != nil {
			s.log.Warn("mark notification delivered failed",
				zap.String("notification_id", n.ID.String()), zap.Error(err))
		}
	}
	if s.pub != nil {
		evt := NotificationCreatedEvent{
			NotificationID: n.ID,
			RecipientID:    n.RecipientID,
			Type:           n.Type,
			Priority:       n.Priority,
			CreatedAt:      n.CreatedAt,
		}
		if err := s.pub.PublishJSON(ctx, s.cfg.RabbitMQ.ExchangeName.Notification, s.cfg.RabbitMQ.RoutingKey.NotificationCreated, evt); err != nil {
			s.log.Warn("publish notification event failed",
				zap.String("notification_id", n.ID.String()), zap.Error(err))
		}
	}
}

func (s *notificationService) List(ctx context.Context, recipientID uuid.UUID, opts repo.NotificationListOpts) ([]model.Notification, error) {
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	return s.r.List(ctx, recipientID, opts)
}

func (s *notificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.r.UnreadCount(ctx, recipientID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	ok, err := s.r.MarkRead(ctx, id, recipientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *notificationService) MarkManyRead(ctx context.Context, ids []uuid.UUID, recipientID uuid.UUID) (int64, error) {
	return s.r.MarkManyRead(ctx, ids, recipientID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.r.MarkAllRead(ctx, recipientID)
}

func (s *notificationService) Archive(ctx context.Context, id, recipientID uuid.UUID) error {
	ok, err := s.r.Archive(ctx, id, recipientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *notificationService) Delete(ctx context.Context, id, recipientID uuid.UUID) error {
	ok, err := s.r.Delete(ctx, id, recipientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *notificationService) Stats(ctx context.Context, recipientID uuid.UUID) (*repo.NotificationStats, error) {
	stats, err := s.r.Stats(ctx, recipientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return stats, err
}
