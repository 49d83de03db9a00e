package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePatient   Role = "patient"
	RoleClinician Role = "clinician"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleClinician
}

// User is the identity projection this service keeps. Rows are provisioned by
// the external identity system; this core only flips the presence fields.
type User struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name     string     `gorm:"not null" json:"name"`
	Email    string     `gorm:"uniqueIndex;not null" json:"email"`
	Role     Role       `gorm:"type:varchar(16);not null;index" json:"role"`
	IsOnline bool       `gorm:"not null;default:false" json:"is_online"`
	LastSeen *time.Time `json:"last_seen,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string { return "users" }
