package cli

import (
	"context"
	"time"
)

func (c *Cli) runQueue(ctx context.Context) error {
	entries, err := c.entries.ListOrdered(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		c.io.Println("Queue is empty")
		return nil
	}

	c.io.Printf("%d queued operation(s), in send order:\n", len(entries))
	c.io.Println()

	for i, entry := range entries {
		c.io.Printf("%3d. [%s] %s %s/%s (priority %d, attempts %d, queued %s)\n",
			i+1,
			entry.ID,
			entry.Operation,
			entry.EntityType,
			entry.EntityID,
			entry.Priority,
			entry.Attempts,
			entry.CreatedAt.Format(time.RFC3339))
		if entry.LastError != "" {
			c.io.Printf("     last error: %s\n", entry.LastError)
		}
	}

	return nil
}
