package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
)

var (
	ErrPairExists = errors.New("relationship between this patient and clinician already exists")
	ErrLiveExists = errors.New("patient already has a live relationship")
)

var liveStatuses = []model.RelationshipStatus{model.RelationshipPending, model.RelationshipActive}

type RelationshipRepo interface {
	Create(ctx context.Context, rel *model.Relationship) error
	// CreateRequestExclusive creates rel in pending under a lock on the
	// patient's live rows. Any pending request to a different clinician is
	// superseded (terminated) in the same transaction; an active or suspended
	// row, or any row for the same pair, fails the call. A terminated row for
	// the same pair is revived back to pending instead of inserting.
	CreateRequestExclusive(ctx context.Context, rel *model.Relationship) error
	// CreateAssignmentExclusive creates rel directly in active; fails when the
	// pair already exists in any status or the patient has a live row.
	CreateAssignmentExclusive(ctx context.Context, rel *model.Relationship) error
	// DeletePending removes the patient's pending request outright.
	DeletePending(ctx context.Context, patientID uuid.UUID) (*model.Relationship, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Relationship, error)
	// GetPair returns the unique row for a patient/clinician pair regardless
	// of status.
	GetPair(ctx context.Context, patientID, clinicianID uuid.UUID) (*model.Relationship, error)
	ListByUser(ctx context.Context, userID uuid.UUID, role model.Role, statuses []model.RelationshipStatus) ([]model.Relationship, error)
	ListActiveCounterparts(ctx context.Context, userID uuid.UUID, role model.Role) ([]uuid.UUID, error)
	ListPendingForClinician(ctx context.Context, clinicianID uuid.UUID) ([]model.Relationship, error)
	// Transition applies updates only when the row is currently in one of the
	// given statuses. The bool result reports whether a row was changed, so a
	// losing racer observes false instead of clobbering the winner's write.
	Transition(ctx context.Context, id uuid.UUID, from []model.RelationshipStatus, updates map[string]interface{}) (bool, error)
	UpdatePatientSettings(ctx context.Context, id uuid.UUID, s model.PatientSettings) (bool, error)
	UpdateClinicianSettings(ctx context.Context, id uuid.UUID, s model.ClinicianSettings) (bool, error)
	// RecordSessionOutcome folds a finished session's score into the pair's
	// rolling aggregates under a row lock.
	RecordSessionOutcome(ctx context.Context, id uuid.UUID, score float64) error
	TouchInteraction(ctx context.Context, id uuid.UUID) error
}

type relationshipRepo struct {
	db *gorm.DB
}

func NewRelationshipRepo(db *gorm.DB) RelationshipRepo {
	return &relationshipRepo{db: db}
}

func (r *relationshipRepo) Create(ctx context.Context, rel *model.Relationship) error {
	return r.db.WithContext(ctx).Create(rel).Error
}

func (r *relationshipRepo) CreateRequestExclusive(ctx context.Context, rel *model.Relationship) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var live []model.Relationship
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("patient_id = ? AND status IN ?", rel.PatientID, liveStatuses).
			Find(&live).Error
		if err != nil {
			return err
		}
		for _, row := range live {
			if row.ClinicianID == rel.ClinicianID {
				return ErrPairExists
			}
			if row.Status == model.RelationshipActive {
				return ErrLiveExists
			}
		}
		// Supersede the outstanding request to any other clinician.
		err = tx.Model(&model.Relationship{}).
			Where("patient_id = ? AND status = ? AND clinician_id <> ?",
				rel.PatientID, model.RelationshipPending, rel.ClinicianID).
			Updates(map[string]interface{}{
				"status":   model.RelationshipTerminated,
				"ended_at": time.Now(),
				"reason":   "superseded by a new connection request",
			}).Error
		if err != nil {
			return err
		}

		// A terminated row for the pair is revived instead of inserting a
		// duplicate, keeping the unique (patient, clinician) index intact.
		var prior model.Relationship
		err = tx.Where("patient_id = ? AND clinician_id = ?", rel.PatientID, rel.ClinicianID).
			First(&prior).Error
		switch {
		case err == nil:
			res := tx.Model(&model.Relationship{}).
				Where("id = ? AND status = ?", prior.ID, model.RelationshipTerminated).
				Updates(map[string]interface{}{
					"status":      model.RelationshipPending,
					"assigned_by": rel.AssignedBy,
					"reason":      rel.Reason,
					"started_at":  nil,
					"ended_at":    nil,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != 1 {
				return ErrPairExists
			}
			rel.ID = prior.ID
			rel.Status = model.RelationshipPending
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			rel.Status = model.RelationshipPending
			if err := tx.Create(rel).Error; err != nil {
				// The partial unique index catches the racer whose locking
				// read saw no live rows to lock.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrLiveExists
				}
				return err
			}
			return nil
		default:
			return err
		}
	})
}

func (r *relationshipRepo) CreateAssignmentExclusive(ctx context.Context, rel *model.Relationship) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var live []model.Relationship
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("patient_id = ? AND status IN ?", rel.PatientID, liveStatuses).
			Find(&live).Error
		if err != nil {
			return err
		}
		if len(live) > 0 {
			return ErrLiveExists
		}

		var count int64
		err = tx.Model(&model.Relationship{}).
			Where("patient_id = ? AND clinician_id = ?", rel.PatientID, rel.ClinicianID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrPairExists
		}

		now := time.Now()
		rel.Status = model.RelationshipActive
		rel.StartedAt = &now
		if err := tx.Create(rel).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrLiveExists
			}
			return err
		}
		return nil
	})
}

func (r *relationshipRepo) DeletePending(ctx context.Context, patientID uuid.UUID) (*model.Relationship, error) {
	var rel model.Relationship
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("patient_id = ? AND status = ?", patientID, model.RelationshipPending).
			First(&rel).Error
		if err != nil {
			return err
		}
		return tx.Delete(&rel).Error
	})
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *relationshipRepo) Get(ctx context.Context, id uuid.UUID) (*model.Relationship, error) {
	var rel model.Relationship
	if err := r.db.WithContext(ctx).First(&rel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *relationshipRepo) GetPair(ctx context.Context, patientID, clinicianID uuid.UUID) (*model.Relationship, error) {
	var rel model.Relationship
	err := r.db.WithContext(ctx).
		First(&rel, "patient_id = ? AND clinician_id = ?", patientID, clinicianID).Error
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *relationshipRepo) ListByUser(ctx context.Context, userID uuid.UUID, role model.Role, statuses []model.RelationshipStatus) ([]model.Relationship, error) {
	q := r.db.WithContext(ctx).Model(&model.Relationship{}).
		Preload("Patient").Preload("Clinician")
	if role == model.RoleClinician {
		q = q.Where("clinician_id = ?", userID)
	} else {
		q = q.Where("patient_id = ?", userID)
	}
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var rels []model.Relationship
	if err := q.Order("created_at DESC").Find(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *relationshipRepo) ListActiveCounterparts(ctx context.Context, userID uuid.UUID, role model.Role) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	q := r.db.WithContext(ctx).Model(&model.Relationship{}).
		Where("status = ?", model.RelationshipActive)
	if role == model.RoleClinician {
		q = q.Where("clinician_id = ?", userID).Pluck("patient_id", &ids)
	} else {
		q = q.Where("patient_id = ?", userID).Pluck("clinician_id", &ids)
	}
	if err := q.Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *relationshipRepo) ListPendingForClinician(ctx context.Context, clinicianID uuid.UUID) ([]model.Relationship, error) {
	var rels []model.Relationship
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("clinician_id = ? AND status = ?", clinicianID, model.RelationshipPending).
		Order("created_at ASC").
		Find(&rels).Error
	if err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *relationshipRepo) Transition(ctx context.Context, id uuid.UUID, from []model.RelationshipStatus, updates map[string]interface{}) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.Relationship{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *relationshipRepo) UpdatePatientSettings(ctx context.Context, id uuid.UUID, s model.PatientSettings) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.Relationship{}).
		Where("id = ?", id).
		Update("patient_settings", datatypes.NewJSONType(s))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *relationshipRepo) UpdateClinicianSettings(ctx context.Context, id uuid.UUID, s model.ClinicianSettings) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.Relationship{}).
		Where("id = ?", id).
		Update("clinician_settings", datatypes.NewJSONType(s))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *relationshipRepo) RecordSessionOutcome(ctx context.Context, id uuid.UUID, score float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rel model.Relationship
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rel, "id = ?", id).Error; err != nil {
			return err
		}
		prev := float64(rel.TotalSessions)
		total := rel.TotalSessions + 1
		avg := (rel.AverageScore*prev + score) / float64(total)
		return tx.Model(&model.Relationship{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"total_sessions":      total,
				"average_score":       avg,
				"last_interaction_at": time.Now(),
			}).Error
	})
}

func (r *relationshipRepo) TouchInteraction(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Relationship{}).
		Where("id = ?", id).
		Update("last_interaction_at", time.Now()).Error
}
