package model

// AlertType classifies an alert log entry.
type AlertType string

const (
	AlertTypeRestrictedZoneEntry AlertType = "restricted_zone_entry"
	AlertTypeCommunicationTest   AlertType = "communication_test"
	AlertTypeSOS                 AlertType = "sos"
)

// AlertLog is an append-only record of a dispatched alert. Never updated or
// deleted once written.
type AlertLog struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	FisherProfileID string    `json:"fisher_profile_id" gorm:"size:255;index;not null"`
	Lat             float64   `json:"lat" gorm:"not null"`
	Lon             float64   `json:"lon" gorm:"not null"`
	Timestamp       int64     `json:"timestamp" gorm:"not null"`
	AlertType       AlertType `json:"alert_type" gorm:"size:32;not null"`
	Details         string    `json:"details,omitempty" gorm:"type:text"`
}

// TableName overrides the table name
func (AlertLog) TableName() string {
	return "alert_logs"
}
