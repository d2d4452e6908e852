package model

import (
	"time"

	"github.com/paulmach/orb"
	"gorm.io/gorm"
)

// ZonePG model for PostgreSQL storage
type ZonePG struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	// GeoJSON coordinates array as a JSON string.
	// "[[[lon,lat],...]]" for a polygon (first ring outer, rest holes),
	// one level deeper for a multipolygon.
	Geometry  string `gorm:"type:text;not null"`
	CreatedBy string `gorm:"size:255"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName overrides the table name
func (ZonePG) TableName() string {
	return "restricted_zones"
}

// Zone in-memory model
type Zone struct {
	ID          string
	Name        string
	Description string
	Geometry    string
	CreatedBy   string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Cached data for quick access
	MultiPolygon orb.MultiPolygon // Pre-parsed geometry for containment checks
	BoundingBox  *orb.Bound       // Bounds of the geometry for quick checks
}

// ZoneFromPG creates a Zone from ZonePG. Geometry stays unparsed until the
// zone service calls ParseGeometry while loading the catalog.
func ZoneFromPG(pg *ZonePG) *Zone {
	return &Zone{
		ID:          pg.ID,
		Name:        pg.Name,
		Description: pg.Description,
		Geometry:    pg.Geometry,
		CreatedBy:   pg.CreatedBy,
		CreatedAt:   pg.CreatedAt,
		UpdatedAt:   pg.UpdatedAt,
	}
}

// ToPG converts the in-memory zone back to its PostgreSQL model.
func (z *Zone) ToPG() *ZonePG {
	return &ZonePG{
		ID:          z.ID,
		Name:        z.Name,
		Description: z.Description,
		Geometry:    z.Geometry,
		CreatedBy:   z.CreatedBy,
		CreatedAt:   z.CreatedAt,
		UpdatedAt:   z.UpdatedAt,
	}
}
