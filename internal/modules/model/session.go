package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPaused    SessionStatus = "paused"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Terminal reports whether the session may no longer transition.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionCancelled
}

// Landmark is one skeletal point as delivered by the client's pose tracker.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z,omitempty"`
	Visibility float64 `json:"visibility,omitempty"`
}

type DeviceInfo struct {
	Platform         string `json:"platform,omitempty"`
	Browser          string `json:"browser,omitempty"`
	CameraResolution string `json:"camera_resolution,omitempty"`
}

// PoseFrame is one analyzed landmark sample. Seq reflects arrival order at
// the coordinator, not client wall-clock time.
type PoseFrame struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index:idx_frame_session_seq,priority:1" json:"session_id"`
	Seq       int       `gorm:"not null;index:idx_frame_session_seq,priority:2" json:"seq"`
	Timestamp int64     `gorm:"not null" json:"timestamp"` // client epoch millis

	Landmarks     datatypes.JSONType[[]Landmark]         `gorm:"type:jsonb" swaggertype:"array,object" json:"landmarks"`
	DerivedAngles datatypes.JSONType[map[string]float64] `gorm:"type:jsonb" swaggertype:"object" json:"derived_angles"`
	IsCorrectForm bool                                   `gorm:"not null;default:false" json:"is_correct_form"`
	Confidence    float64                                `gorm:"not null;default:0" json:"confidence"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (PoseFrame) TableName() string { return "pose_frames" }

// RepRecord is one completed repetition. RepNumber is strictly increasing
// within a session.
type RepRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	RepNumber int       `gorm:"not null" json:"rep_number"`
	StartTime int64     `gorm:"not null" json:"start_time"`
	EndTime   int64     `gorm:"not null" json:"end_time"`
	Score     float64   `gorm:"not null;default:0" json:"score"`

	Feedback datatypes.JSONSlice[string] `gorm:"type:jsonb" swaggertype:"array,string" json:"feedback"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (RepRecord) TableName() string { return "rep_records" }

// Session is one timed exercise attempt, optionally supervised by a
// clinician. Status transitions are monotonic: a terminal session never
// re-enters active.
type Session struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	ClinicianID *uuid.UUID `gorm:"type:uuid;index" json:"clinician_id,omitempty"`
	ExerciseID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"exercise_id"`

	Status    SessionStatus `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`
	StartTime time.Time     `gorm:"not null" json:"start_time"`
	EndTime   *time.Time    `json:"end_time,omitempty"`

	DurationSeconds int     `gorm:"not null;default:0" json:"duration_seconds"`
	TotalReps       int     `gorm:"not null;default:0" json:"total_reps"`
	AverageScore    float64 `gorm:"not null;default:0" json:"average_score"`
	MaxScore        float64 `gorm:"not null;default:0" json:"max_score"`
	MinScore        float64 `gorm:"not null;default:0" json:"min_score"`

	OverallFeedback  datatypes.JSONSlice[string] `gorm:"type:jsonb" swaggertype:"array,string" json:"overall_feedback"`
	ImprovementAreas datatypes.JSONSlice[string] `gorm:"type:jsonb" swaggertype:"array,string" json:"improvement_areas"`
	Strengths        datatypes.JSONSlice[string] `gorm:"type:jsonb" swaggertype:"array,string" json:"strengths"`

	VideoURL     string `json:"video_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`

	DeviceInfo datatypes.JSONType[DeviceInfo] `gorm:"type:jsonb" swaggertype:"object" json:"device_info"`

	// LastFrameAt feeds the abandoned-session reaper.
	LastFrameAt *time.Time `gorm:"index" json:"last_frame_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Patient  *User       `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Exercise *Exercise   `gorm:"foreignKey:ExerciseID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Frames   []PoseFrame `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Reps     []RepRecord `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Session) TableName() string { return "sessions" }
