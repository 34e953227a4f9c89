package content

import (
	"context"
	"sync"
	"time"

	"github.com/hrgrifes/atelier-backend/internal/records"
	"github.com/hrgrifes/atelier-backend/pkg/config"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
	"github.com/hrgrifes/atelier-backend/pkg/metrics"
)

// SaveStatus is the observable lifecycle of the latest persistence attempt.
type SaveStatus string

const (
	StatusIdle    SaveStatus = "idle"
	StatusSaving  SaveStatus = "saving"
	StatusSaved   SaveStatus = "saved"
	StatusError   SaveStatus = "error"
	StatusOffline SaveStatus = "offline"
)

const writeTimeout = 10 * time.Second

type recordWriter interface {
	Upsert(ctx context.Context, key, doc string) error
}

// Scheduler drives debounced persistence of the content document.
//
// Every change re-arms the debounce timer with the latest snapshot, so a burst
// of edits coalesces into a single write carrying the final state. A fired
// cycle holds a short minimum-visible delay before writing so the operator can
// see the saving pulse, acknowledges success for a display window, and then
// returns to idle. A failed write leaves the status stuck on error until some
// later cycle succeeds; the in-memory document stays authoritative throughout.
//
// The in-memory store is therefore always ahead of (or equal to) the persisted
// copy: a crash inside the debounce window loses that window's edits. That is
// the accepted trade the visible status communicates.
type Scheduler struct {
	cfg     config.SaveConfig
	repo    recordWriter
	logg    *logger.Logger
	metrics *metrics.SaveMetrics

	mu           sync.Mutex
	status       SaveStatus
	timer        *time.Timer
	pending      *Content
	hasPersisted bool
	cycle        uint64
	written      uint64
	closed       bool

	// writeMu serializes repo writes so a slow write from an older cycle can
	// never land after a newer cycle's write.
	writeMu sync.Mutex

	defaults Content
	wg       sync.WaitGroup
}

// NewScheduler builds the persistence scheduler. hasPersisted seeds the
// first-save rule: when false and the document still equals the built-in
// default, nothing is written until a real edit happens.
func NewScheduler(cfg config.SaveConfig, repo recordWriter, logg *logger.Logger, m *metrics.SaveMetrics, hasPersisted bool) *Scheduler {
	status := StatusIdle
	if cfg.Disabled {
		status = StatusOffline
	}
	return &Scheduler{
		cfg:          cfg,
		repo:         repo,
		logg:         logg,
		metrics:      m,
		status:       status,
		hasPersisted: hasPersisted,
		defaults:     DefaultContent(),
	}
}

// Bind subscribes the scheduler to store changes.
func (s *Scheduler) Bind(store *Store) {
	store.Subscribe(s.ContentChanged)
}

// Status returns the current save status.
func (s *Scheduler) Status() SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// ContentChanged records the latest snapshot and (re)arms the debounce timer.
func (s *Scheduler) ContentChanged(snapshot Content) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.cfg.Disabled {
		return
	}

	// First-save rule: never persist a pristine default document.
	if !s.hasPersisted && s.pending == nil && snapshot.Equal(s.defaults) {
		return
	}

	s.pending = &snapshot
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.cfg.Debounce, s.fire)
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.closed || s.pending == nil {
		s.mu.Unlock()
		return
	}
	snapshot := *s.pending
	s.pending = nil
	s.timer = nil
	s.cycle++
	cycleID := s.cycle
	s.status = StatusSaving
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()

	// Deliberate pause so fast writes still render a visible saving pulse.
	if s.cfg.MinVisible > 0 {
		time.Sleep(s.cfg.MinVisible)
	}

	s.write(snapshot, cycleID)
}

func (s *Scheduler) write(snapshot Content, cycleID uint64) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// A newer cycle already persisted; this snapshot is stale, so writing it
	// would move the durable copy behind the in-memory document.
	s.mu.Lock()
	stale := cycleID <= s.written
	s.mu.Unlock()
	if stale {
		return
	}

	doc, err := snapshot.Canonical()
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		start := time.Now()
		err = s.repo.Upsert(ctx, records.KeySiteContent, string(doc))
		s.metrics.ObserveDuration(records.KeySiteContent, time.Since(start))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.metrics.IncFailure(records.KeySiteContent)
		if s.logg != nil {
			s.logg.Error(context.Background(), "persisting content", err)
		}
		// Sticky until a later cycle succeeds; no automatic retry.
		if cycleID == s.cycle {
			s.status = StatusError
		}
		return
	}

	s.metrics.IncSuccess(records.KeySiteContent)
	s.hasPersisted = true
	s.written = cycleID
	if cycleID == s.cycle && s.status == StatusSaving {
		s.status = StatusSaved
		time.AfterFunc(s.cfg.SavedDisplay, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if cycleID == s.cycle && s.status == StatusSaved {
				s.status = StatusIdle
			}
		})
	}
}

// Flush writes any pending snapshot immediately, skipping the debounce and
// visibility delays. Used at shutdown so the accepted data-loss window does
// not extend across an orderly restart.
func (s *Scheduler) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	snapshot := s.pending
	s.pending = nil
	if snapshot == nil {
		s.mu.Unlock()
		return nil
	}
	s.cycle++
	cycleID := s.cycle
	s.mu.Unlock()

	doc, err := snapshot.Canonical()
	if err != nil {
		return err
	}

	// Queue behind any in-flight cycle; the flushed snapshot is the newest,
	// so it must land last.
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.repo.Upsert(ctx, records.KeySiteContent, string(doc)); err != nil {
		return err
	}

	s.mu.Lock()
	s.hasPersisted = true
	if cycleID > s.written {
		s.written = cycleID
	}
	s.mu.Unlock()
	return nil
}

// RecordCleared re-arms the first-save rule after the persisted record has
// been deleted out from under the scheduler. The armed timer is dropped and
// any in-flight cycle voided, so restoring the defaults does not immediately
// recreate the record.
func (s *Scheduler) RecordCleared() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasPersisted = false
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.written = s.cycle
	switch s.status {
	case StatusSaving, StatusSaved, StatusError:
		s.status = StatusIdle
	}
}

// Close stops the timer and waits for an in-flight write to finish.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}
