package config

import "time"

// Worker intervals and windows
const (
	// IngestWorkerInterval defines how often a new AIS collection window opens
	IngestWorkerInterval = 5 * time.Minute

	// IngestCollectionWindow defines how long a single AIS collection window stays open
	IngestCollectionWindow = 2 * time.Minute

	// RedisBackupInterval defines how often dirty positions are saved to Redis
	RedisBackupInterval = 10 * time.Second

	// PostgresBackupInterval defines how often positions are saved to PostgreSQL
	PostgresBackupInterval = 60 * time.Second

	// PositionRecencyWindow defines how old a position may be and still count as live
	PositionRecencyWindow = 30 * time.Minute

	// DeliveryTimeout bounds a single SMS delivery attempt
	DeliveryTimeout = 10 * time.Second
)
