package storage

// Storage defines interface for any object storage
type Storage[K comparable, V any] interface {
	Set(key K, value V)
	Get(key K) (V, bool)
	// Update applies fn to the current value under the storage lock for that
	// key. fn receives the stored value (or the zero value) and whether it
	// exists, and returns the new value and whether to apply it. Update
	// reports whether the write was applied. Concurrent Updates for the same
	// key are serialized.
	Update(key K, fn func(value V, exists bool) (V, bool)) bool
	Delete(key K) bool
	GetAll() map[K]V
	GetAllValues() []V
	// GetDirty returns the objects modified since their flags were last
	// cleared. Flags stay set until ClearDirty, so a failed save is retried
	// on the next cycle.
	GetDirty() map[K]V
	// ClearDirty drops the dirty flags for the given keys, called after the
	// persistence of those objects is confirmed.
	ClearDirty(keys []K)
	ForEach(fn func(key K, value V) bool)
	Count() int
}
