package background

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Watcher polls connectivity and feeds transitions into the sync engine.
// Онлайн/оффлайн сигналы доставляются только на смене состояния пробы.
type Watcher struct {
	probe     func(ctx context.Context) bool
	onOnline  func(ctx context.Context)
	onOffline func()
	logger    *slog.Logger

	interval time.Duration

	mu     sync.Mutex
	online bool
	primed bool // первая проба ещё не выполнялась
	stop   chan struct{}
}

// NewWatcher creates a connectivity watcher. probe reports reachability;
// onOnline/onOffline are invoked on transitions (typically the engine's
// SetOnline and SetOffline).
func NewWatcher(probe func(ctx context.Context) bool, onOnline func(ctx context.Context), onOffline func(), interval time.Duration, logger *slog.Logger) *Watcher {
	return &Watcher{
		probe:     probe,
		onOnline:  onOnline,
		onOffline: onOffline,
		logger:    logger,
		interval:  interval,
	}
}

// Start probes immediately, then keeps probing on the configured interval
// until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.stop != nil {
		w.mu.Unlock()
		return
	}
	stopChan := make(chan struct{})
	w.stop = stopChan
	w.mu.Unlock()

	go func() {
		// Немедленная первая проба: без неё движок ждёт целый интервал
		w.check(ctx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stopChan:
				return
			case <-ticker.C:
				w.check(ctx)
			}
		}
	}()
}

// Stop halts the watcher goroutine
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stop == nil {
		return
	}
	close(w.stop)
	w.stop = nil
}

// Online reports the last probed state
func (w *Watcher) Online() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.online
}

// check runs one probe and delivers the transition, if any
func (w *Watcher) check(ctx context.Context) {
	reachable := w.probe(ctx)

	w.mu.Lock()
	changed := !w.primed || reachable != w.online
	w.primed = true
	w.online = reachable
	w.mu.Unlock()

	if !changed {
		return
	}

	if reachable {
		w.logger.Debug("Connectivity probe succeeded")
		w.onOnline(ctx)
	} else {
		w.logger.Debug("Connectivity probe failed")
		w.onOffline()
	}
}
