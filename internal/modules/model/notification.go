package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationInfo             NotificationType = "info"
	NotificationWarning          NotificationType = "warning"
	NotificationSuccess          NotificationType = "success"
	NotificationRecommendation   NotificationType = "recommendation"
	NotificationReminder         NotificationType = "reminder"
	NotificationProgressAlert    NotificationType = "progress_alert"
	NotificationGoalReminder     NotificationType = "goal_reminder"
	NotificationFormFeedback     NotificationType = "form_feedback"
	NotificationAchievement      NotificationType = "achievement"
	NotificationClinicianMessage NotificationType = "clinician_message"
	NotificationSystemUpdate     NotificationType = "system_update"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Notification is a directed message about a state change. Metadata carries
// per-type payload keys; documented keys per type:
//
//	progress_alert:     score, reps, duration
//	recommendation:     clinician_id
//	clinician_message:  clinician_id
//	achievement:        goal_type, achievement
type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index:idx_notif_recipient" json:"recipient_id"`
	SenderID    *uuid.UUID `gorm:"type:uuid" json:"sender_id,omitempty"`

	SessionID      *uuid.UUID `gorm:"type:uuid;index" json:"session_id,omitempty"`
	RelationshipID *uuid.UUID `gorm:"type:uuid;index" json:"relationship_id,omitempty"`
	ExerciseID     *uuid.UUID `gorm:"type:uuid" json:"exercise_id,omitempty"`

	Type    NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `gorm:"not null" json:"message"`

	Priority   Priority          `gorm:"type:varchar(8);not null;default:'medium'" json:"priority"`
	Category   string            `json:"category,omitempty"`
	ActionURL  string            `json:"action_url,omitempty"`
	ActionText string            `json:"action_text,omitempty"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"metadata"`

	IsRead     bool       `gorm:"not null;default:false;index:idx_notif_recipient" json:"is_read"`
	IsArchived bool       `gorm:"not null;default:false" json:"is_archived"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`

	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Recipient *User `gorm:"foreignKey:RecipientID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
