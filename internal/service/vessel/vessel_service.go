package vessel

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"seawatch/internal/config"
	"seawatch/internal/geo"
	"seawatch/internal/model"
	pg "seawatch/internal/postgres"
	redis_client "seawatch/internal/redis"
	"seawatch/internal/service/storage"

	"gorm.io/gorm"
)

const PositionRedisKey = "vessel_position"

// VesselService keeps the latest known position per vessel. Writes go
// through the sharded storage's per-key Update, which is what serializes
// concurrent reports for the same MMSI.
type VesselService struct {
	storage     storage.Storage[string, *model.VesselPosition]
	initialized bool
	initMutex   sync.RWMutex
}

var (
	vesselServiceInstance *VesselService
	vesselServiceOnce     sync.Once
)

// GetVesselService returns the singleton instance of the VesselService.
func GetVesselService() *VesselService {
	vesselServiceOnce.Do(func() {
		vesselServiceInstance = NewVesselService()
	})
	return vesselServiceInstance
}

// NewVesselService creates a detached instance (tests use this directly).
func NewVesselService() *VesselService {
	return &VesselService{
		storage: storage.NewShardedMemoryStorage[string, *model.VesselPosition](8, nil),
	}
}

// InitService initializes the service by loading data from PostgreSQL and Redis
func (s *VesselService) InitService(ctx context.Context) error {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		return nil
	}

	log.Println("Initializing VesselService...")
	startTime := time.Now()

	pgPositions, err := s.loadAllPositionsFromPG()
	if err != nil {
		return fmt.Errorf("failed to load positions from PostgreSQL: %w", err)
	}

	redisPositions, err := s.loadAllPositionsFromRedis(ctx)
	if err != nil {
		return fmt.Errorf("failed to load positions from Redis: %w", err)
	}

	merged := s.mergePositionsIntoMemory(pgPositions, redisPositions)
	log.Printf("VesselService initialized: %d positions in memory (%d newer from Redis), took %v",
		s.storage.Count(), merged, time.Since(startTime))

	s.initialized = true
	return nil
}

// loadAllPositionsFromPG loads all vessel positions from PostgreSQL
func (s *VesselService) loadAllPositionsFromPG() ([]*model.VesselPosition, error) {
	db := pg.GetDB()
	var positions []*model.VesselPosition

	result := db.Find(&positions)
	if result.Error != nil {
		return nil, result.Error
	}

	return positions, nil
}

// loadAllPositionsFromRedis loads all vessel positions from Redis
func (s *VesselService) loadAllPositionsFromRedis(ctx context.Context) (map[string]*model.VesselPosition, error) {
	client := redis_client.GetClient()
	var cursor uint64
	var keys []string
	pattern := fmt.Sprintf("%s:*", PositionRedisKey)

	for {
		batch, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return make(map[string]*model.VesselPosition), nil
	}

	jsonData, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	positions := make(map[string]*model.VesselPosition)
	for _, data := range jsonData {
		if data == nil {
			continue
		}

		jsonStr, ok := data.(string)
		if !ok || jsonStr == "" {
			continue
		}

		position := &model.VesselPosition{}
		if err := json.Unmarshal([]byte(jsonStr), position); err != nil {
			continue
		}
		positions[position.MMSI] = position
	}

	return positions, nil
}

// mergePositionsIntoMemory merges PostgreSQL and Redis snapshots, newer
// timestamp wins.
func (s *VesselService) mergePositionsIntoMemory(pgPositions []*model.VesselPosition, redisPositions map[string]*model.VesselPosition) int {
	for _, position := range pgPositions {
		s.storage.Set(position.MMSI, position)
	}

	mergedCount := 0
	for mmsi, redisPosition := range redisPositions {
		existing, exists := s.storage.Get(mmsi)
		if !exists || redisPosition.Timestamp > existing.Timestamp {
			s.storage.Set(mmsi, redisPosition)
			mergedCount++
		}
	}

	return mergedCount
}

// UpsertPosition applies a position report with the newer-timestamp-wins
// rule. Reports at or before the stored timestamp are discarded. Reports
// whether the write was applied; the timestamp guard runs under the shard
// lock, so a duplicate delivered twice concurrently is applied once.
func (s *VesselService) UpsertPosition(report model.PositionReport) bool {
	return s.storage.Update(report.MMSI, func(current *model.VesselPosition, exists bool) (*model.VesselPosition, bool) {
		if exists && report.Timestamp <= current.Timestamp {
			return current, false
		}
		return &model.VesselPosition{
			MMSI:      report.MMSI,
			Lat:       report.Lat,
			Lon:       report.Lon,
			Timestamp: report.Timestamp,
		}, true
	})
}

// GetPosition returns the latest known position for a vessel.
func (s *VesselService) GetPosition(mmsi string) (*model.VesselPosition, bool) {
	return s.storage.Get(mmsi)
}

// RecentPositions returns positions observed within the window, for the
// live map.
func (s *VesselService) RecentPositions(window time.Duration) []*model.VesselPosition {
	cutoff := time.Now().Add(-window).UnixMilli()

	var result []*model.VesselPosition
	s.storage.ForEach(func(mmsi string, position *model.VesselPosition) bool {
		if position.Timestamp >= cutoff {
			result = append(result, position)
		}
		return true
	})
	return result
}

// VesselsNear returns vessels whose latest position is within radiusMeters
// of the given coordinate.
func (s *VesselService) VesselsNear(lat, lon, radiusMeters float64) []*model.VesselPosition {
	var result []*model.VesselPosition
	s.storage.ForEach(func(mmsi string, position *model.VesselPosition) bool {
		if geo.HaversineDistance(lat, lon, position.Lat, position.Lon) <= radiusMeters {
			result = append(result, position)
		}
		return true
	})
	return result
}

// StartPersistenceWorkers starts workers for persisting positions to Redis
// and PostgreSQL.
func (s *VesselService) StartPersistenceWorkers() {
	redisTimer := time.NewTicker(config.RedisBackupInterval)
	go func() {
		for range redisTimer.C {
			if err := s.SaveDirtyPositionsToRedis(); err != nil {
				log.Printf("Error saving positions to Redis: %v", err)
			}
		}
	}()

	pgTimer := time.NewTicker(config.PostgresBackupInterval)
	go func() {
		for range pgTimer.C {
			if err := s.SaveAllPositionsToPG(); err != nil {
				log.Printf("Error saving positions to PostgreSQL: %v", err)
			}
		}
	}()
}

// SaveDirtyPositionsToRedis saves modified positions to Redis. Dirty flags
// are cleared only after the pipeline is confirmed, so a failed save leaves
// the positions flagged and they are retried on the next cycle.
func (s *VesselService) SaveDirtyPositionsToRedis() error {
	dirtyPositions := s.storage.GetDirty()
	if len(dirtyPositions) == 0 {
		return nil
	}

	client := redis_client.GetClient()
	ctx := context.Background()
	pipe := client.Pipeline()

	savedKeys := make([]string, 0, len(dirtyPositions))
	for mmsi, position := range dirtyPositions {
		positionKey := fmt.Sprintf("%s:%s", PositionRedisKey, mmsi)
		positionJSON, err := json.Marshal(position)
		if err != nil {
			return err
		}
		pipe.Set(ctx, positionKey, positionJSON, 0)
		savedKeys = append(savedKeys, mmsi)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	s.storage.ClearDirty(savedKeys)
	log.Printf("Saved %d positions to Redis", len(dirtyPositions))
	return nil
}

// SaveAllPositionsToPG saves all positions to PostgreSQL in batches
func (s *VesselService) SaveAllPositionsToPG() error {
	allPositions := s.storage.GetAllValues()
	if len(allPositions) == 0 {
		return nil
	}

	db := pg.GetDB()
	batchSize := 1000

	for i := 0; i < len(allPositions); i += batchSize {
		end := i + batchSize
		if end > len(allPositions) {
			end = len(allPositions)
		}

		batch := allPositions[i:end]

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, position := range batch {
				if result := tx.Save(position); result.Error != nil {
					return result.Error
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}
