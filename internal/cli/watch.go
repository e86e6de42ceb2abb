package cli

import (
	"context"
	"strings"

	"github.com/iudanet/fieldsync/internal/background"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/syncer"
)

// runWatch keeps the engine running until the context is cancelled: a
// connectivity watcher feeds online/offline transitions, a polling trigger
// re-fires periodic drains and conflicts are resolved interactively.
func (c *Cli) runWatch(ctx context.Context) error {
	c.io.Println("Watching for changes; press Ctrl+C to stop")

	dispose := c.engine.Subscribe(func(event syncer.Event) {
		switch event.Type {
		case syncer.EventOnline:
			c.io.Println("● online")
		case syncer.EventOffline:
			c.io.Println("○ offline")
		case syncer.EventItemSynced:
			c.io.Printf("✓ synced %s/%s\n", event.EntityType, event.EntityID)
		case syncer.EventEntityFailed:
			c.io.Printf("✗ %s/%s failed permanently: %s\n", event.EntityType, event.EntityID, event.Error)
		case syncer.EventConflictDetected:
			// Промпт в отдельной горутине: обработчик события не должен
			// задерживать проход, он и так ждёт разрешения с таймаутом
			go c.promptResolution(event.Conflict)
		}
	})
	defer dispose()

	probe := func(ctx context.Context) bool {
		return c.remote.Ping(ctx) == nil
	}

	watcher := background.NewWatcher(probe,
		c.engine.SetOnline,
		c.engine.SetOffline,
		c.cfg.ConnectivityPollInterval.Std(),
		c.logger)
	watcher.Start(ctx)
	defer watcher.Stop()

	trigger := background.NewPollingTrigger(
		func(ctx context.Context) {
			if _, err := c.engine.SyncAll(ctx); err != nil {
				c.logger.Warn("Background drain failed", "error", err)
			}
		},
		probe,
		c.cfg.ConnectivityPollInterval.Std(),
		c.logger)
	trigger.RegisterPeriodicSync("fieldsync.periodic", c.cfg.SyncInterval.Std())
	trigger.Start(ctx)
	defer trigger.Stop()

	<-ctx.Done()
	c.io.Println()
	c.io.Println("Stopped")
	return nil
}

// promptResolution walks the operator through a pending conflict field by
// field and submits the selections to the engine.
func (c *Cli) promptResolution(rec *models.ConflictRecord) {
	c.io.Println()
	c.io.Printf("⚠️  Conflict on %s: %s\n", rec.Key(), rec.Reason)

	data := models.Snapshot{}
	for key, value := range rec.LocalData {
		data[key] = value
	}

	for _, fc := range rec.Conflicts {
		c.io.Printf("  %s: local=%v server=%v\n", fc.Field, fc.LocalValue, fc.ServerValue)
		answer, err := c.io.ReadInput("  keep [l]ocal or [s]erver? ")
		if err != nil {
			c.io.Printf("Aborted: %v\n", err)
			return
		}
		if strings.HasPrefix(strings.ToLower(answer), "s") {
			data[fc.Field] = fc.ServerValue
		} else {
			data[fc.Field] = fc.LocalValue
		}
	}

	if err := c.engine.ResolveConflict(rec.Key(), data); err != nil {
		c.io.Printf("Failed to submit resolution: %v\n", err)
		return
	}
	c.io.Println("✓ Resolution submitted")
}
