// Package janitor periodically reaps expired cache entries. Expiry is
// otherwise lazy, so without the sweep an entry that is never read again
// would sit in memory until capacity pressure evicts it.
package janitor

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/yuchenw/weather-mcp/internal/cache"
)

// Janitor runs the cache sweep on a fixed interval.
type Janitor struct {
	scheduler *gocron.Scheduler
	cache     *cache.Cache
	interval  time.Duration
}

// New creates a Janitor sweeping c every interval.
func New(c *cache.Cache, interval time.Duration) *Janitor {
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		cache:     c,
		interval:  interval,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (j *Janitor) Start() error {
	seconds := int(j.interval.Seconds())
	if seconds <= 0 {
		seconds = 60
	}

	_, err := j.scheduler.Every(seconds).Seconds().Do(func() {
		if removed := j.cache.SweepExpired(); removed > 0 {
			log.Printf("INFO: janitor removed %d expired cache entries", removed)
		}
	})
	if err != nil {
		return err
	}

	j.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future sweeps.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
