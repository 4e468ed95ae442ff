package session

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Purger removes expired sessions in bulk.
type Purger interface {
	PurgeExpired() int
}

// Janitor periodically sweeps expired sessions out of stores that do not
// expire entries on their own (the in-memory store; Redis handles TTL
// itself).
type Janitor struct {
	cron  *cron.Cron
	store Purger
}

// NewJanitor creates a janitor for the given store.
func NewJanitor(store Purger) *Janitor {
	return &Janitor{cron: cron.New(), store: store}
}

// Start schedules the sweep and begins running it in the background.
func (j *Janitor) Start() error {
	_, err := j.cron.AddFunc("@every 5m", j.sweep)
	if err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop halts the background sweep.
func (j *Janitor) Stop() {
	j.cron.Stop()
}

func (j *Janitor) sweep() {
	if purged := j.store.PurgeExpired(); purged > 0 {
		log.Info().Int("count", purged).Msg("Purged expired sessions")
	}
}
