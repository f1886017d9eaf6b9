package weather

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/yuchenw/weather-mcp/internal/encoding"
)

// DefaultFetchTimeout bounds each primary-path fetch. In-flight fetches run
// to this deadline even if the caller goes away, so the write-through still
// benefits subsequent requests.
const DefaultFetchTimeout = 10 * time.Second

// Service is the orchestrator: cache lookup, source selection, fallback,
// write-through. It owns the cache and both adapters for its lifetime and is
// the only entry point external callers use.
type Service struct {
	store        Store
	primary      PrimarySource
	fallback     Fallback
	fetchTimeout time.Duration
	mockOnly     bool
}

// NewService wires the orchestrator. When primary is nil or reports itself
// unusable (no credential configured), the service runs in permanent mock
// mode: every miss is answered synthetically for the process lifetime.
func NewService(store Store, primary PrimarySource, fallback Fallback, fetchTimeout time.Duration) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}

	mockOnly := primary == nil || !primary.Usable()
	if mockOnly {
		log.Printf("WARN: no usable bearer token; weather service running in mock mode")
	}

	return &Service{
		store:        store,
		primary:      primary,
		fallback:     fallback,
		fetchTimeout: fetchTimeout,
		mockOnly:     mockOnly,
	}
}

// GetWeather resolves a (city, language) query into a canonical snapshot.
// Primary-path failures are expected control flow and trigger a silent
// substitution of synthetic data; only a synthetic failure reaches the
// caller.
func (s *Service) GetWeather(ctx context.Context, city string, lang Language) (Snapshot, error) {
	repaired := encoding.Repair(city)
	if repaired != city {
		log.Printf("INFO: repaired city name %q -> %q", city, repaired)
	}

	key := CacheKey(repaired, lang)
	if snap, ok := s.store.Get(key); ok {
		log.Printf("DEBUG: cache hit for %s", key)
		return snap, nil
	}

	if !s.mockOnly {
		// Detached from the caller's context on purpose: an abandoned
		// request must not abort the fetch, whose result is still a
		// useful write-through for the next caller.
		fetchCtx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
		defer cancel()

		snap, err := s.primary.Fetch(fetchCtx, repaired, lang)
		if err == nil {
			s.store.Set(key, snap)
			return snap, nil
		}
		log.Printf("INFO: primary source %s failed for %q, falling back: %v", s.primary.Name(), repaired, err)
	}

	snap, err := s.fallback.Generate(repaired, lang)
	if err != nil {
		var fatal *FatalError
		if !errors.As(err, &fatal) {
			err = &FatalError{Msg: "synthetic source failed", Err: err}
		}
		return Snapshot{}, err
	}

	s.store.Set(key, snap)
	return snap, nil
}

// Mode reports the active data-source mode.
func (s *Service) Mode() string {
	if s.mockOnly {
		return "mock"
	}
	return "api"
}

// ServiceStatus is the /health introspection payload.
type ServiceStatus struct {
	Status      string            `json:"status"`
	CacheStats  CacheStats        `json:"cache_stats"`
	DataSources map[string]string `json:"data_sources"`
	CurrentMode string            `json:"current_mode"`
}

// Status reports the service's health view: cache occupancy and which
// source tier is answering.
func (s *Service) Status() ServiceStatus {
	sources := map[string]string{"mock": s.fallback.Name()}
	if s.primary != nil {
		sources["primary"] = s.primary.Name()
	}

	return ServiceStatus{
		Status:      "running",
		CacheStats:  s.store.Stats(),
		DataSources: sources,
		CurrentMode: s.Mode(),
	}
}

// CacheStats exposes the underlying store statistics.
func (s *Service) CacheStats() CacheStats {
	return s.store.Stats()
}
