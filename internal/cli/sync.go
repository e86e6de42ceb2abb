package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/fieldsync/internal/syncer"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")

	if err := c.remote.Ping(ctx); err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}

	// Результат прохода приходит событием; SetOnline сам запускает drain
	var result *syncer.Result
	dispose := c.engine.Subscribe(func(event syncer.Event) {
		if event.Type == syncer.EventSyncCompleted && event.Result != nil {
			result = event.Result
		}
	})
	defer dispose()

	c.engine.SetOnline(ctx)

	if result == nil {
		return fmt.Errorf("drain did not run")
	}

	c.io.Println()
	c.io.Println("✓ Drain completed")
	c.io.Println()
	c.io.Printf("Synced:   %d\n", result.Synced)
	c.io.Printf("Failed:   %d\n", result.Failed)
	c.io.Printf("Deferred: %d\n", result.Deferred)
	c.io.Printf("Duration: %s\n", result.Duration)
	for _, e := range result.Errors {
		c.io.Printf("Error: %s\n", e)
	}

	return nil
}
