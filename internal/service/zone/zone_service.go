package zone

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"seawatch/internal/geo"
	"seawatch/internal/model"
	pg "seawatch/internal/postgres"
	"seawatch/internal/service/storage"
	"seawatch/internal/util"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// ZoneSpatial represents a zone with its spatial information for R-tree indexing
type ZoneSpatial struct {
	ID   string
	Zone *model.Zone
}

// Bounds implements the rtreego.Spatial interface
func (z *ZoneSpatial) Bounds() rtreego.Rect {
	minX, minY := z.Zone.BoundingBox.Min[0], z.Zone.BoundingBox.Min[1]
	maxX, maxY := z.Zone.BoundingBox.Max[0], z.Zone.BoundingBox.Max[1]

	// Zero-area bounds are not representable, pad them slightly
	width, height := maxX-minX, maxY-minY
	if width <= 0 {
		width = 1e-9
	}
	if height <= 0 {
		height = 1e-9
	}

	rect, _ := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{width, height},
	)

	return rect
}

// ZoneService manages the restricted zone catalog and its spatial index
type ZoneService struct {
	storage      storage.Storage[string, *model.Zone]
	spatialIndex *rtreego.Rtree
	indexMutex   sync.RWMutex
	initialized  bool
	initMutex    sync.RWMutex
}

var (
	zoneServiceInstance *ZoneService
	zoneServiceOnce     sync.Once
)

// GetZoneService returns the singleton instance of the ZoneService
func GetZoneService() *ZoneService {
	zoneServiceOnce.Do(func() {
		zoneServiceInstance = newZoneService()
	})
	return zoneServiceInstance
}

func newZoneService() *ZoneService {
	return &ZoneService{
		storage:      storage.NewMemoryStorage[string, *model.Zone](),
		spatialIndex: rtreego.NewTree(2, 25, 50),
	}
}

// InitService initializes the service by loading zones from PostgreSQL
func (s *ZoneService) InitService(ctx context.Context) error {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		log.Println("ZoneService already initialized, skipping")
		return nil
	}

	startTime := time.Now()
	zones, err := s.loadAllZonesFromPG()
	if err != nil {
		return fmt.Errorf("failed to load zones from PostgreSQL: %w", err)
	}

	s.replaceAll(zones)
	log.Printf("ZoneService initialized: %d zones indexed in %v", s.storage.Count(), time.Since(startTime))

	s.initialized = true
	return nil
}

// loadAllZonesFromPG loads all zones from PostgreSQL
func (s *ZoneService) loadAllZonesFromPG() ([]*model.Zone, error) {
	db := pg.GetDB()
	var pgZones []*model.ZonePG

	result := db.Find(&pgZones)
	if result.Error != nil {
		return nil, result.Error
	}

	zones := make([]*model.Zone, len(pgZones))
	for i, pgZone := range pgZones {
		zones[i] = model.ZoneFromPG(pgZone)
	}

	return zones, nil
}

// ReplaceAll swaps the whole catalog. A zone with malformed geometry is
// logged and skipped, it never aborts loading the others.
func (s *ZoneService) ReplaceAll(zones []*model.Zone) {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	s.replaceAll(zones)
	s.initialized = true
}

func (s *ZoneService) replaceAll(zones []*model.Zone) {
	for _, old := range s.storage.GetAll() {
		s.storage.Delete(old.ID)
	}
	for _, zone := range zones {
		if err := prepareZone(zone); err != nil {
			log.Printf("data-quality: skipping zone %s (%s): %v", zone.ID, zone.Name, err)
			continue
		}
		s.storage.Set(zone.ID, zone)
	}
	s.rebuildSpatialIndex()
}

// prepareZone parses the stored geometry once and caches it on the zone.
func prepareZone(zone *model.Zone) error {
	if zone.MultiPolygon != nil && zone.BoundingBox != nil {
		return nil
	}
	multi, err := model.ParseGeometry(zone.Geometry)
	if err != nil {
		return err
	}
	bound := multi.Bound()
	zone.MultiPolygon = multi
	zone.BoundingBox = &bound
	return nil
}

// rebuildSpatialIndex rebuilds the spatial index for efficient searching
func (s *ZoneService) rebuildSpatialIndex() {
	s.indexMutex.Lock()
	defer s.indexMutex.Unlock()

	s.spatialIndex = rtreego.NewTree(2, 25, 50)

	s.storage.ForEach(func(id string, zone *model.Zone) bool {
		s.spatialIndex.Insert(&ZoneSpatial{ID: zone.ID, Zone: zone})
		return true
	})
}

// ZonesAtPoint returns all zones containing the given point
func (s *ZoneService) ZonesAtPoint(lat, lng float64) []*model.Zone {
	s.initMutex.RLock()
	initialized := s.initialized
	s.initMutex.RUnlock()
	if !initialized {
		return nil
	}

	s.indexMutex.RLock()
	defer s.indexMutex.RUnlock()

	point := orb.Point{lng, lat}

	// Initial filtering by bounding box using the R-tree
	searchRect, err := rtreego.NewRect(
		rtreego.Point{lng, lat},
		[]float64{0.0001, 0.0001},
	)
	if err != nil {
		log.Printf("invalid search rect: %v", err)
		return nil
	}

	spatialResults := s.spatialIndex.SearchIntersect(searchRect)
	if len(spatialResults) == 0 {
		return nil
	}

	// Precise point-in-polygon check on the candidates
	var result []*model.Zone
	for _, item := range spatialResults {
		zoneSpatial := item.(*ZoneSpatial)
		if geo.PointInMultiPolygon(point, zoneSpatial.Zone.MultiPolygon) {
			result = append(result, zoneSpatial.Zone)
		}
	}

	return result
}

// FirstZoneContaining returns the single zone a point is attributed to when
// it sits inside several. Candidates are ordered by creation time, then ID,
// so the answer is stable across restarts and index rebuilds.
func (s *ZoneService) FirstZoneContaining(lat, lng float64) *model.Zone {
	zones := s.ZonesAtPoint(lat, lng)
	if len(zones) == 0 {
		return nil
	}
	sortZones(zones)
	return zones[0]
}

// HasZones reports whether an initialized, non-empty catalog is available.
func (s *ZoneService) HasZones() bool {
	s.initMutex.RLock()
	defer s.initMutex.RUnlock()
	return s.initialized && s.storage.Count() > 0
}

// AllZones returns the catalog in evaluation order.
func (s *ZoneService) AllZones() []*model.Zone {
	zones := s.storage.GetAllValues()
	sortZones(zones)
	return zones
}

func sortZones(zones []*model.Zone) {
	sort.Slice(zones, func(i, j int) bool {
		if !zones[i].CreatedAt.Equal(zones[j].CreatedAt) {
			return zones[i].CreatedAt.Before(zones[j].CreatedAt)
		}
		return zones[i].ID < zones[j].ID
	})
}

// CreateZone validates the geometry, persists the zone and indexes it.
func (s *ZoneService) CreateZone(ctx context.Context, name, geometry, description, createdBy string) (*model.Zone, error) {
	zone := &model.Zone{
		ID:          util.ShortUUID(),
		Name:        name,
		Description: description,
		Geometry:    geometry,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := prepareZone(zone); err != nil {
		return nil, fmt.Errorf("invalid zone geometry: %w", err)
	}

	db := pg.GetDB()
	if result := db.WithContext(ctx).Create(zone.ToPG()); result.Error != nil {
		return nil, result.Error
	}

	s.storage.Set(zone.ID, zone)
	s.rebuildSpatialIndex()
	return zone, nil
}

// UpdateZone patches the provided fields of an existing zone. Nil fields
// are left untouched.
func (s *ZoneService) UpdateZone(ctx context.Context, id string, name, geometry, description *string) (*model.Zone, error) {
	existing, ok := s.storage.Get(id)
	if !ok {
		return nil, fmt.Errorf("zone %s not found", id)
	}

	updated := *existing
	if name != nil {
		updated.Name = *name
	}
	if description != nil {
		updated.Description = *description
	}
	if geometry != nil {
		updated.Geometry = *geometry
		updated.MultiPolygon = nil
		updated.BoundingBox = nil
	}
	updated.UpdatedAt = time.Now()

	if err := prepareZone(&updated); err != nil {
		return nil, fmt.Errorf("invalid zone geometry: %w", err)
	}

	db := pg.GetDB()
	if result := db.WithContext(ctx).Save(updated.ToPG()); result.Error != nil {
		return nil, result.Error
	}

	s.storage.Set(updated.ID, &updated)
	s.rebuildSpatialIndex()
	return &updated, nil
}

// DeleteZone removes a zone from PostgreSQL and the index.
func (s *ZoneService) DeleteZone(ctx context.Context, id string) error {
	if _, ok := s.storage.Get(id); !ok {
		return fmt.Errorf("zone %s not found", id)
	}

	db := pg.GetDB()
	if result := db.WithContext(ctx).Delete(&model.ZonePG{ID: id}); result.Error != nil {
		return result.Error
	}

	s.storage.Delete(id)
	s.rebuildSpatialIndex()
	return nil
}
