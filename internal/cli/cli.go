// Package cli implements the fieldsync command surface: queue and status
// inspection, manual drains and the long-running watch mode.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/fieldsync/internal/api"
	"github.com/iudanet/fieldsync/internal/config"
	"github.com/iudanet/fieldsync/internal/iocli"
	"github.com/iudanet/fieldsync/internal/queue"
	"github.com/iudanet/fieldsync/internal/storage"
	"github.com/iudanet/fieldsync/internal/syncer"
)

type Cli struct {
	cfg      *config.Config
	engine   *syncer.Syncer
	queue    *queue.Manager
	entities storage.EntityStorage
	entries  storage.QueueStorage
	remote   api.ClientAPI
	io       iocli.IO
	logger   *slog.Logger
}

func New(cfg *config.Config, engine *syncer.Syncer, qm *queue.Manager, entities storage.EntityStorage, entries storage.QueueStorage, remote api.ClientAPI, io iocli.IO, logger *slog.Logger) *Cli {
	return &Cli{
		cfg:      cfg,
		engine:   engine,
		queue:    qm,
		entities: entities,
		entries:  entries,
		remote:   remote,
		io:       io,
		logger:   logger,
	}
}

// Run dispatches a single CLI command
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "status":
		return c.runStatus(ctx)
	case "sync":
		return c.runSync(ctx)
	case "queue":
		return c.runQueue(ctx)
	case "conflicts":
		return c.runConflicts()
	case "add":
		return c.runAdd(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "watch":
		return c.runWatch(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func PrintUsage() {
	fmt.Println("FieldSync Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  fieldsync [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version       Show version information")
	fmt.Println("  --config PATH   Path to YAML config file")
	fmt.Println("  --server URL    Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH       Path to local database (default: fieldsync.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  status                          Show connectivity, entity and queue counts")
	fmt.Println("  sync                            Run one full queue drain")
	fmt.Println("  queue                           List queued operations in send order")
	fmt.Println("  conflicts                       List conflicts awaiting manual resolution")
	fmt.Println("  add <type> <id> [field=value]   Save an entity locally and queue the mutation")
	fmt.Println("  delete <type> <id>              Delete an entity locally and queue the deletion")
	fmt.Println("  watch                           Watch connectivity and auto-sync until interrupted")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  fieldsync add observation obs-17 species=heron count=3")
	fmt.Println("  fieldsync queue")
	fmt.Println("  fieldsync sync")
	fmt.Println("  fieldsync --server https://example.com watch")
}
