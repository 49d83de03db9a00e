package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
)

type ActivityStats struct {
	Total  int64            `json:"total"`
	ByType map[string]int64 `json:"by_type"`
}

type ActivityRepo interface {
	Create(ctx context.Context, a *model.Activity) error
	// Feed returns the viewer's own activities plus those of the given
	// counterpart users, filtered by what the viewer's role may see.
	Feed(ctx context.Context, viewerID uuid.UUID, viewerRole model.Role, counterpartIDs []uuid.UUID, limit, offset int) ([]model.Activity, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.Activity, error)
	Stats(ctx context.Context, userID uuid.UUID, since time.Time) (*ActivityStats, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error)
	Archive(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type activityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) ActivityRepo {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, a *model.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// roleVisibilities maps a viewer role to the visibility scopes it may read on
// other users' activities. Own activities are always visible.
func roleVisibilities(role model.Role) []model.Visibility {
	if role == model.RoleClinician {
		return []model.Visibility{model.VisibilityPublic, model.VisibilityClinicianOnly}
	}
	return []model.Visibility{model.VisibilityPublic, model.VisibilityPatientOnly}
}

func (r *activityRepo) Feed(ctx context.Context, viewerID uuid.UUID, viewerRole model.Role, counterpartIDs []uuid.UUID, limit, offset int) ([]model.Activity, error) {
	q := r.db.WithContext(ctx).Model(&model.Activity{}).
		Where("is_archived = ?", false)
	if len(counterpartIDs) > 0 {
		q = q.Where(
			r.db.Where("user_id = ?", viewerID).
				Or("user_id IN ? AND visibility IN ?", counterpartIDs, roleVisibilities(viewerRole)),
		)
	} else {
		q = q.Where("user_id = ?", viewerID)
	}
	var activities []model.Activity
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepo) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepo) Stats(ctx context.Context, userID uuid.UUID, since time.Time) (*ActivityStats, error) {
	stats := &ActivityStats{ByType: map[string]int64{}}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Activity{}).
			Where("user_id = ? AND created_at >= ?", userID, since)
	}
	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	type bucket struct {
		Key   string
		Count int64
	}
	var byType []bucket
	err := base().
		Select("type AS key, COUNT(*) AS count").
		Group("type").
		Scan(&byType).Error
	if err != nil {
		return nil, err
	}
	for _, b := range byType {
		stats.ByType[b.Key] = b.Count
	}
	return stats, nil
}

func (r *activityRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.Activity{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *activityRepo) Archive(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.Activity{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_archived", true)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}
