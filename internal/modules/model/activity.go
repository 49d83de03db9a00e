package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActivityType string

const (
	ActivityExerciseStarted   ActivityType = "exercise_started"
	ActivityExerciseCompleted ActivityType = "exercise_completed"
	ActivityExerciseCancelled ActivityType = "exercise_cancelled"
	ActivitySessionUploaded   ActivityType = "session_uploaded"
	ActivityConnectionRequest ActivityType = "connection_requested"
	ActivityConnectionChanged ActivityType = "connection_changed"
	ActivityRecommendation    ActivityType = "clinician_recommendation"
	ActivityGoalAchieved      ActivityType = "goal_achieved"
)

type Visibility string

const (
	VisibilityPublic        Visibility = "public"
	VisibilityPrivate       Visibility = "private"
	VisibilityClinicianOnly Visibility = "clinician_only"
	VisibilityPatientOnly   Visibility = "patient_only"
)

// Activity is an append-only projection of a state transition for feed
// display. Rows are write-once; only the read/archive flags may change.
type Activity struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	RelatedUserID *uuid.UUID `gorm:"type:uuid;index" json:"related_user_id,omitempty"`
	SessionID     *uuid.UUID `gorm:"type:uuid;index" json:"session_id,omitempty"`
	ExerciseID    *uuid.UUID `gorm:"type:uuid" json:"exercise_id,omitempty"`

	Type        ActivityType `gorm:"type:varchar(32);not null;index" json:"type"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description,omitempty"`

	Metadata   datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"metadata"`
	Visibility Visibility        `gorm:"type:varchar(16);not null;default:'public'" json:"visibility"`

	IsRead     bool `gorm:"not null;default:false" json:"is_read"`
	IsArchived bool `gorm:"not null;default:false" json:"is_archived"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Activity) TableName() string { return "activities" }
