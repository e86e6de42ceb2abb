package cli

import (
	"context"
	"sort"

	"github.com/iudanet/fieldsync/internal/models"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== FieldSync Status ===")
	c.io.Println()

	if err := c.remote.Ping(ctx); err != nil {
		c.io.Printf("Server:  unreachable (%v)\n", err)
	} else {
		c.io.Printf("Server:  reachable at %s\n", c.cfg.ServerURL)
	}

	total, err := c.queue.Count(ctx)
	if err != nil {
		return err
	}
	byType, err := c.queue.PendingByType(ctx)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("Queue: %d operation(s) waiting\n", total)

	// Детерминированный порядок типов в выводе
	types := make([]string, 0, len(byType))
	for entityType := range byType {
		types = append(types, entityType)
	}
	sort.Strings(types)

	for _, entityType := range types {
		pending, err := c.entities.CountByStatus(ctx, entityType, models.StatusPending)
		if err != nil {
			return err
		}
		synced, err := c.entities.CountByStatus(ctx, entityType, models.StatusSynced)
		if err != nil {
			return err
		}
		failed, err := c.entities.CountByStatus(ctx, entityType, models.StatusFailed)
		if err != nil {
			return err
		}

		c.io.Printf("  %s: %d queued (entities: %d pending, %d synced, %d failed)\n",
			entityType, byType[entityType], pending, synced, failed)
	}

	if pending := c.engine.PendingConflicts(); len(pending) > 0 {
		c.io.Println()
		c.io.Printf("⚠️  %d conflict(s) awaiting manual resolution\n", len(pending))
		c.io.Println("Run 'fieldsync conflicts' to inspect them.")
	}

	return nil
}
