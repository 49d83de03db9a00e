package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LiveSessionExerciseName marks the per-patient sentinel exercise backing
// ad-hoc (unscheduled) sessions.
const LiveSessionExerciseName = "Live Session"

// Exercise is read-only reference data from the content catalog; the
// coordinator only resolves it and lazily creates the sentinel row.
type Exercise struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string     `gorm:"not null;index" json:"name"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Difficulty  string     `json:"difficulty,omitempty"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid;index" json:"created_by,omitempty"`

	TargetMuscles datatypes.JSONSlice[string] `gorm:"type:jsonb" swaggertype:"array,string" json:"target_muscles"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Exercise) TableName() string { return "exercises" }
