package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RelationshipStatus string

const (
	RelationshipPending    RelationshipStatus = "pending"
	RelationshipActive     RelationshipStatus = "active"
	RelationshipSuspended  RelationshipStatus = "suspended"
	RelationshipTerminated RelationshipStatus = "terminated"
)

// Live reports whether the relationship counts against the one-per-patient
// limit.
func (s RelationshipStatus) Live() bool {
	return s == RelationshipPending || s == RelationshipActive
}

type PatientSettings struct {
	GoalReps             int      `json:"goal_reps,omitempty"`
	GoalSessions         int      `json:"goal_sessions,omitempty"`
	WeeklyTarget         int      `json:"weekly_target,omitempty"`
	DifficultyPreference string   `json:"difficulty_preference,omitempty"`
	Restrictions         []string `json:"restrictions,omitempty"`
	Notes                string   `json:"notes,omitempty"`
}

type CheckInSchedule struct {
	Frequency   string     `json:"frequency,omitempty"` // daily, weekly, monthly
	LastCheckIn *time.Time `json:"last_check_in,omitempty"`
	NextCheckIn *time.Time `json:"next_check_in,omitempty"`
}

type ClinicianSettings struct {
	NotificationsEnabled bool            `json:"notifications_enabled"`
	WeeklyReports        bool            `json:"weekly_reports"`
	ProgressAlerts       bool            `json:"progress_alerts"`
	FormFeedback         bool            `json:"form_feedback"`
	CheckIn              CheckInSchedule `json:"check_in"`
}

// Relationship is a care pairing between one patient and one clinician.
// At most one row with a live status may exist per patient at any time;
// the (patient, clinician) pair is unique across all statuses.
type Relationship struct {
	ID          uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID   uuid.UUID          `gorm:"type:uuid;not null;index:idx_rel_patient_status;uniqueIndex:idx_rel_pair" json:"patient_id"`
	ClinicianID uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_rel_pair" json:"clinician_id"`
	Status      RelationshipStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_rel_patient_status" json:"status"`

	AssignedBy uuid.UUID `gorm:"type:uuid;not null" json:"assigned_by"`
	Reason     string    `json:"reason,omitempty"`

	StartedAt         *time.Time `json:"started_at,omitempty"`
	EndedAt           *time.Time `json:"ended_at,omitempty"`
	LastInteractionAt *time.Time `gorm:"index" json:"last_interaction_at,omitempty"`

	TotalSessions int     `gorm:"not null;default:0" json:"total_sessions"`
	AverageScore  float64 `gorm:"not null;default:0" json:"average_score"`

	PatientSettings   datatypes.JSONType[PatientSettings]   `gorm:"type:jsonb" swaggertype:"object" json:"patient_settings"`
	ClinicianSettings datatypes.JSONType[ClinicianSettings] `gorm:"type:jsonb" swaggertype:"object" json:"clinician_settings"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Patient   *User `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Clinician *User `gorm:"foreignKey:ClinicianID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Relationship) TableName() string { return "relationships" }
