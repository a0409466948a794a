package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stokmate/stokmate-analytics-be/internal/shared/utils"
)

// Scheduler runs the periodic dashboard recompute as an explicit scheduled
// task instead of an ambient timer tied to some component's lifetime, so
// refresh jobs can be torn down cleanly on shutdown.
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]cron.EntryID // job name -> entry id
	jobsMux sync.RWMutex
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		jobs: make(map[string]cron.EntryID),
	}
}

// Start begins executing registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	utils.LogInfo("refresh scheduler started", nil)
}

// Stop cancels all scheduled jobs and waits for running ones to return.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	utils.LogInfo("refresh scheduler stopped", nil)
}

// AddInterval registers (or replaces) a named job running every interval.
func (s *Scheduler) AddInterval(name string, interval time.Duration, job func()) error {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
	}

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), job)
	if err != nil {
		return fmt.Errorf("failed to add refresh job %q: %w", name, err)
	}

	s.jobs[name] = entryID
	utils.LogInfo("scheduled refresh job", map[string]interface{}{
		"job":      name,
		"interval": interval.String(),
	})
	return nil
}

// Remove cancels a named job if it is registered.
func (s *Scheduler) Remove(name string) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
	}
}

// Jobs returns the names of all registered jobs.
func (s *Scheduler) Jobs() []string {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}
