package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
)

var (
	ErrSessionNotActive = errors.New("session is not active")
)

type SessionRepo interface {
	Create(ctx context.Context, s *model.Session) error
	Get(ctx context.Context, id uuid.UUID) (*model.Session, error)
	// GetDetail loads the session together with its rep records.
	GetDetail(ctx context.Context, id uuid.UUID) (*model.Session, error)
	// Transition applies updates only when the session is currently in one of
	// the given statuses; the bool result reports whether the guard matched.
	Transition(ctx context.Context, id uuid.UUID, from []model.SessionStatus, updates map[string]interface{}) (bool, error)
	AppendFrame(ctx context.Context, f *model.PoseFrame) error
	LastFrame(ctx context.Context, sessionID uuid.UUID) (*model.PoseFrame, error)
	// AppendRep inserts the rep and folds its score into the session
	// aggregates under a row lock, returning the updated session.
	AppendRep(ctx context.Context, rep *model.RepRecord) (*model.Session, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, status model.SessionStatus, limit, offset int) ([]model.Session, error)
	ListByClinicianPatients(ctx context.Context, patientIDs []uuid.UUID, limit, offset int) ([]model.Session, error)
	ActiveByPatient(ctx context.Context, patientID uuid.UUID) (*model.Session, error)
	ListFrames(ctx context.Context, sessionID uuid.UUID, limit, offset int) ([]model.PoseFrame, error)
	ListReps(ctx context.Context, sessionID uuid.UUID) ([]model.RepRecord, error)
	// StaleLive returns active or paused sessions whose last frame (or start,
	// when no frame ever arrived) predates the cutoff.
	StaleLive(ctx context.Context, cutoff time.Time) ([]model.Session, error)
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) Get(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	var s model.Session
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) GetDetail(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).
		Preload("Reps", func(db *gorm.DB) *gorm.DB {
			return db.Order("rep_number ASC")
		}).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Transition(ctx context.Context, id uuid.UUID, from []model.SessionStatus, updates map[string]interface{}) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *sessionRepo) AppendFrame(ctx context.Context, f *model.PoseFrame) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(f).Error; err != nil {
			return err
		}
		return tx.Model(&model.Session{}).
			Where("id = ?", f.SessionID).
			Update("last_frame_at", time.Now()).Error
	})
}

func (r *sessionRepo) LastFrame(ctx context.Context, sessionID uuid.UUID) (*model.PoseFrame, error) {
	var f model.PoseFrame
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("seq DESC").
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *sessionRepo) AppendRep(ctx context.Context, rep *model.RepRecord) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, "id = ?", rep.SessionID).Error; err != nil {
			return err
		}
		if s.Status != model.SessionActive {
			return ErrSessionNotActive
		}
		prev := float64(s.TotalReps)
		s.TotalReps++
		rep.RepNumber = s.TotalReps
		if err := tx.Create(rep).Error; err != nil {
			return err
		}
		s.AverageScore = (s.AverageScore*prev + rep.Score) / float64(s.TotalReps)
		if s.TotalReps == 1 || rep.Score > s.MaxScore {
			s.MaxScore = rep.Score
		}
		if s.TotalReps == 1 || rep.Score < s.MinScore {
			s.MinScore = rep.Score
		}
		return tx.Model(&model.Session{}).Where("id = ?", s.ID).
			Updates(map[string]interface{}{
				"total_reps":    s.TotalReps,
				"average_score": s.AverageScore,
				"max_score":     s.MaxScore,
				"min_score":     s.MinScore,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, status model.SessionStatus, limit, offset int) ([]model.Session, error) {
	q := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("patient_id = ?", patientID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var sessions []model.Session
	if err := q.Order("start_time DESC").Limit(limit).Offset(offset).Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) ListByClinicianPatients(ctx context.Context, patientIDs []uuid.UUID, limit, offset int) ([]model.Session, error) {
	if len(patientIDs) == 0 {
		return nil, nil
	}
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("patient_id IN ?", patientIDs).
		Order("start_time DESC").
		Limit(limit).Offset(offset).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) ActiveByPatient(ctx context.Context, patientID uuid.UUID) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND status IN ?", patientID,
			[]model.SessionStatus{model.SessionActive, model.SessionPaused}).
		Order("start_time DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) ListFrames(ctx context.Context, sessionID uuid.UUID, limit, offset int) ([]model.PoseFrame, error) {
	var frames []model.PoseFrame
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("seq ASC").
		Limit(limit).Offset(offset).
		Find(&frames).Error
	if err != nil {
		return nil, err
	}
	return frames, nil
}

func (r *sessionRepo) ListReps(ctx context.Context, sessionID uuid.UUID) ([]model.RepRecord, error) {
	var reps []model.RepRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("rep_number ASC").
		Find(&reps).Error
	if err != nil {
		return nil, err
	}
	return reps, nil
}

func (r *sessionRepo) StaleLive(ctx context.Context, cutoff time.Time) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("status IN ?", []model.SessionStatus{model.SessionActive, model.SessionPaused}).
		Where("COALESCE(last_frame_at, start_time) < ?", cutoff).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
