package weather

import "context"

// PrimarySource abstracts the remote weather provider.
type PrimarySource interface {
	Name() string
	// Usable reports whether the source has valid credentials. An unusable
	// source is never routed to.
	Usable() bool
	// Fetch returns a normalized snapshot for the city, or a SourceError /
	// SchemaError the orchestrator recovers from by falling back.
	Fetch(ctx context.Context, city string, lang Language) (Snapshot, error)
}

// Fallback abstracts the synthetic source that answers when the primary
// cannot. A Generate failure is fatal: nothing sits beneath it.
type Fallback interface {
	Name() string
	Generate(city string, lang Language) (Snapshot, error)
}

// Store is the snapshot cache contract the orchestrator writes through.
type Store interface {
	Get(key string) (Snapshot, bool)
	Set(key string, value Snapshot)
	Clear()
	Stats() CacheStats
}

// CacheStats is the read-only cache view exposed on introspection endpoints.
type CacheStats struct {
	CurrentSize int `json:"current_size"`
	MaxSize     int `json:"max_size"`
	TTL         int `json:"ttl"` // seconds
}
