package session

import (
	"sync"
	"time"

	"github.com/macawbot/macaw/internal/voice"
)

// idleMonitorConfig holds the wiring for one idle monitor
type idleMonitorConfig struct {
	sessionID string
	guildID   string
	queue     voice.Queue
	limit     int
	interval  time.Duration
	leave     func(guildID, sessionID string)
}

// idleMonitor watches a session's queue at a fixed cadence and forces a
// leave once the queue has been empty for limit consecutive ticks.
// Emptiness is polled rather than event-driven: it is a continuous
// predicate, and polling avoids missed-wake races between a queue drain
// and a manual pause.
type idleMonitor struct {
	sessionID string
	guildID   string
	queue     voice.Queue
	limit     int
	interval  time.Duration
	leave     func(guildID, sessionID string)

	count    int
	stop     chan struct{}
	stopOnce sync.Once
}

// newIdleMonitor creates a monitor; call run to start ticking
func newIdleMonitor(cfg *idleMonitorConfig) *idleMonitor {
	return &idleMonitor{
		sessionID: cfg.sessionID,
		guildID:   cfg.guildID,
		queue:     cfg.queue,
		limit:     cfg.limit,
		interval:  cfg.interval,
		leave:     cfg.leave,
		stop:      make(chan struct{}),
	}
}

// run ticks until the monitor is detached or the idle limit fires
func (m *idleMonitor) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			if m.tick() {
				return
			}
		}
	}
}

// tick observes queue emptiness once. It returns true when the monitor has
// fired and must not tick again. The counter only moves on this goroutine,
// so it needs no lock.
func (m *idleMonitor) tick() bool {
	if !m.queue.IsEmpty() {
		m.count = 0
		return false
	}

	m.count++
	if m.count < m.limit {
		return false
	}

	// Detach before leaving so a slow teardown cannot race a second fire
	m.detach()
	m.leave(m.guildID, m.sessionID)
	return true
}

// detach stops the monitor; safe to call more than once
func (m *idleMonitor) detach() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}
