package model

import "time"

// PositionReport is a single AIS observation as delivered by the ingestion
// feed. Timestamp is unix milliseconds, matching the upstream time_utc field.
type PositionReport struct {
	MMSI      string  `json:"mmsi"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timestamp int64   `json:"timestamp"`
}

// VesselPosition is the latest known position of a vessel. One row per MMSI,
// newer timestamp wins.
type VesselPosition struct {
	MMSI      string  `json:"mmsi" gorm:"primaryKey;size:32"`
	Lat       float64 `json:"lat" gorm:"not null"`
	Lon       float64 `json:"lon" gorm:"not null"`
	Timestamp int64   `json:"timestamp" gorm:"not null"`

	UpdatedAt time.Time `json:"-" gorm:"column:updated_at"`
}

// TableName overrides the table name
func (VesselPosition) TableName() string {
	return "vessel_positions"
}

// ObservedAt returns the report time as time.Time.
func (v *VesselPosition) ObservedAt() time.Time {
	return time.UnixMilli(v.Timestamp)
}
