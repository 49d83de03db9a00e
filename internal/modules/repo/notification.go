package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
)

type NotificationListOpts struct {
	UnreadOnly bool
	Types      []model.NotificationType
	Limit      int
	Offset     int
}

type NotificationStats struct {
	Total      int64            `json:"total"`
	Unread     int64            `json:"unread"`
	ByType     map[string]int64 `json:"by_type"`
	ByPriority map[string]int64 `json:"by_priority"`
}

type NotificationRepo interface {
	Create(ctx context.Context, n *model.Notification) error
	CreateBatch(ctx context.Context, ns []model.Notification) error
	Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	// List returns non-archived, non-expired notifications for a recipient,
	// newest first.
	List(ctx context.Context, recipientID uuid.UUID, opts NotificationListOpts) ([]model.Notification, error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
	// MarkRead and friends are guarded by recipient so one user cannot touch
	// another's rows; the bool reports whether anything matched.
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) (bool, error)
	MarkManyRead(ctx context.Context, ids []uuid.UUID, recipientID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Archive(ctx context.Context, id, recipientID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id, recipientID uuid.UUID) (bool, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, recipientID uuid.UUID) (*NotificationStats, error)
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) CreateBatch(ctx context.Context, ns []model.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ns).Error
}

func (r *notificationRepo) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) visible(ctx context.Context, recipientID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND is_archived = ?", recipientID, false).
		Where("expires_at IS NULL OR expires_at > ?", time.Now())
}

func (r *notificationRepo) List(ctx context.Context, recipientID uuid.UUID, opts NotificationListOpts) ([]model.Notification, error) {
	q := r.visible(ctx, recipientID)
	if opts.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if len(opts.Types) > 0 {
		q = q.Where("type IN ?", opts.Types)
	}
	var ns []model.Notification
	if err := q.Order("created_at DESC").Limit(opts.Limit).Offset(opts.Offset).Find(&ns).Error; err != nil {
		return nil, err
	}
	return ns, nil
}

func (r *notificationRepo) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.visible(ctx, recipientID).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND recipient_id = ? AND is_read = ?", id, recipientID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *notificationRepo) MarkManyRead(ctx context.Context, ids []uuid.UUID, recipientID uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id IN ? AND recipient_id = ? AND is_read = ?", ids, recipientID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	return tx.RowsAffected, tx.Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ? AND is_archived = ?", recipientID, false, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	return tx.RowsAffected, tx.Error
}

func (r *notificationRepo) Archive(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_archived", true)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *notificationRepo) Delete(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&model.Notification{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *notificationRepo) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND delivered_at IS NULL", id).
		Update("delivered_at", time.Now()).Error
}

func (r *notificationRepo) Stats(ctx context.Context, recipientID uuid.UUID) (*NotificationStats, error) {
	stats := &NotificationStats{
		ByType:     map[string]int64{},
		ByPriority: map[string]int64{},
	}
	if err := r.visible(ctx, recipientID).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.visible(ctx, recipientID).Where("is_read = ?", false).Count(&stats.Unread).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string
		Count int64
	}
	var byType []bucket
	err := r.visible(ctx, recipientID).
		Select("type AS key, COUNT(*) AS count").
		Group("type").
		Scan(&byType).Error
	if err != nil {
		return nil, err
	}
	for _, b := range byType {
		stats.ByType[b.Key] = b.Count
	}

	var byPriority []bucket
	err = r.visible(ctx, recipientID).
		Select("priority AS key, COUNT(*) AS count").
		Group("priority").
		Scan(&byPriority).Error
	if err != nil {
		return nil, err
	}
	for _, b := range byPriority {
		stats.ByPriority[b.Key] = b.Count
	}
	return stats, nil
}
