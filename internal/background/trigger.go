// Package background adapts platform background-execution facilities to the
// sync engine: registering deferred sync tasks where the host supports them
// and falling back to in-process polling where it does not.
package background

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Trigger schedules sync work to run outside the normal foreground flow.
// All methods report capability or acceptance as a boolean and never panic:
// на неподдерживаемой платформе вызов — просто no-op.
type Trigger interface {
	// IsSupported reports whether one-shot background sync is available
	IsSupported() bool

	// IsPeriodicSupported reports whether periodic background sync is available
	IsPeriodicSupported() bool

	// RegisterSync schedules one background drain under the given tag.
	// The drain fires once, the next time connectivity is available.
	RegisterSync(tag string) bool

	// RegisterPeriodicSync schedules a recurring drain under the given tag,
	// firing no more often than minInterval while online
	RegisterPeriodicSync(tag string, minInterval time.Duration) bool

	// Unregister removes a previously registered tag
	Unregister(tag string) bool
}

// NoopTrigger is the Trigger for hosts without any background facility
type NoopTrigger struct{}

func (NoopTrigger) IsSupported() bool         { return false }
func (NoopTrigger) IsPeriodicSupported() bool { return false }

func (NoopTrigger) RegisterSync(string) bool { return false }

func (NoopTrigger) RegisterPeriodicSync(string, time.Duration) bool { return false }

func (NoopTrigger) Unregister(string) bool { return false }

var _ Trigger = NoopTrigger{}

// periodicTag — периодическая задача с её минимальным интервалом
type periodicTag struct {
	lastFired   time.Time
	minInterval time.Duration
}

// PollingTrigger is the fallback Trigger: a goroutine probes connectivity on
// a fixed interval and fires registered drains when the probe succeeds.
type PollingTrigger struct {
	drain  func(ctx context.Context)
	probe  func(ctx context.Context) bool
	logger *slog.Logger

	interval time.Duration

	mu       sync.Mutex
	oneShot  map[string]struct{}
	periodic map[string]*periodicTag
	stop     chan struct{}
}

// NewPollingTrigger creates a polling fallback trigger. drain is invoked for
// every fired tag; probe reports current connectivity.
func NewPollingTrigger(drain func(ctx context.Context), probe func(ctx context.Context) bool, interval time.Duration, logger *slog.Logger) *PollingTrigger {
	return &PollingTrigger{
		drain:    drain,
		probe:    probe,
		logger:   logger,
		interval: interval,
		oneShot:  make(map[string]struct{}),
		periodic: make(map[string]*periodicTag),
	}
}

func (p *PollingTrigger) IsSupported() bool         { return true }
func (p *PollingTrigger) IsPeriodicSupported() bool { return true }

// RegisterSync schedules one drain for the next successful probe
func (p *PollingTrigger) RegisterSync(tag string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.oneShot[tag] = struct{}{}
	return true
}

// RegisterPeriodicSync schedules a recurring drain at >= minInterval
func (p *PollingTrigger) RegisterPeriodicSync(tag string, minInterval time.Duration) bool {
	if minInterval <= 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.periodic[tag] = &periodicTag{minInterval: minInterval}
	return true
}

// Unregister removes a tag from both the one-shot and periodic sets
func (p *PollingTrigger) Unregister(tag string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, hadOneShot := p.oneShot[tag]
	_, hadPeriodic := p.periodic[tag]
	delete(p.oneShot, tag)
	delete(p.periodic, tag)
	return hadOneShot || hadPeriodic
}

// Start launches the polling goroutine. Безопасно вызывать один раз.
func (p *PollingTrigger) Start(ctx context.Context) {
	p.mu.Lock()
	if p.stop != nil {
		p.mu.Unlock()
		return
	}
	stopChan := make(chan struct{})
	p.stop = stopChan
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stopChan:
				return
			case <-ticker.C:
				p.tick(ctx)
			}
		}
	}()
}

// Stop halts the polling goroutine; registered tags are kept
func (p *PollingTrigger) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop == nil {
		return
	}
	close(p.stop)
	p.stop = nil
}

// tick runs one probe cycle and fires due tags
func (p *PollingTrigger) tick(ctx context.Context) {
	if !p.probe(ctx) {
		return
	}

	now := time.Now()
	fire := 0

	p.mu.Lock()
	// One-shot теги срабатывают один раз и удаляются
	for tag := range p.oneShot {
		delete(p.oneShot, tag)
		fire++
		p.logger.Debug("Background one-shot sync fired", "tag", tag)
	}
	for tag, pt := range p.periodic {
		if now.Sub(pt.lastFired) < pt.minInterval {
			continue
		}
		pt.lastFired = now
		fire++
		p.logger.Debug("Background periodic sync fired", "tag", tag)
	}
	p.mu.Unlock()

	// Один drain покрывает все сработавшие теги: очередь общая
	if fire > 0 {
		p.drain(ctx)
	}
}

var _ Trigger = (*PollingTrigger)(nil)
