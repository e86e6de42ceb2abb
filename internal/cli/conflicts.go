package cli

import "time"

func (c *Cli) runConflicts() error {
	pending := c.engine.PendingConflicts()

	if len(pending) == 0 {
		c.io.Println("No conflicts awaiting resolution")
		return nil
	}

	c.io.Printf("%d conflict(s) awaiting manual resolution:\n", len(pending))

	for _, rec := range pending {
		c.io.Println()
		c.io.Printf("Key:    %s\n", rec.Key())
		c.io.Printf("Reason: %s\n", rec.Reason)
		c.io.Printf("Local:  %s  Server: %s\n",
			rec.LocalTimestamp.Format(time.RFC3339),
			rec.ServerTimestamp.Format(time.RFC3339))
		for _, fc := range rec.Conflicts {
			c.io.Printf("  %s: local=%v server=%v\n", fc.Field, fc.LocalValue, fc.ServerValue)
		}
	}

	return nil
}
