package model

import (
	"time"

	"gorm.io/gorm"
)

// FisherProfile links a registered vessel (MMSI) to its owner's contact
// details. Managed by the admin/identity collaborators, read-only here.
type FisherProfile struct {
	ID            string `gorm:"primaryKey"`
	ExternalUser  string `gorm:"size:255;index"` // identity provider subject
	Name          string `gorm:"size:255;not null"`
	MMSI          string `gorm:"size:32;uniqueIndex;not null"`
	Phone         string `gorm:"size:32"`
	AlertsEnabled bool   `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName overrides the table name
func (FisherProfile) TableName() string {
	return "fisher_profiles"
}
