package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/storage"
)

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: add <type> <id> [field=value ...]")
	}
	entityType, entityID := args[0], args[1]

	fields, err := parseFieldArgs(args[2:])
	if err != nil {
		return err
	}

	// Повторное добавление существующей записи — это update
	op := models.OpCreate
	if _, err := c.entities.GetEntity(ctx, entityType, entityID); err == nil {
		op = models.OpUpdate
	} else if !errors.Is(err, storage.ErrEntityNotFound) {
		return err
	}

	record := &models.EntityRecord{
		ID:     entityID,
		Type:   entityType,
		Fields: fields,
	}
	if err := c.entities.SaveEntity(ctx, record); err != nil {
		return fmt.Errorf("failed to save entity: %w", err)
	}

	// Снимок для сервера несёт и зарезервированные поля: по updatedAt
	// детектор конфликтов меряет давность версии
	payload := record.Clone().Fields
	if payload == nil {
		payload = models.Snapshot{}
	}
	payload[models.FieldID] = record.ID
	payload[models.FieldCreatedAt] = record.CreatedAt
	payload[models.FieldUpdatedAt] = record.UpdatedAt

	entry, err := c.queue.Add(ctx, entityType, entityID, op, payload, 0)
	if err != nil {
		return err
	}

	c.io.Printf("✓ %s %s/%s queued (entry %s)\n", op, entityType, entityID, entry.ID)
	return nil
}

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: delete <type> <id>")
	}
	entityType, entityID := args[0], args[1]

	err := c.entities.DeleteEntity(ctx, entityType, entityID)
	if err != nil && !errors.Is(err, storage.ErrEntityNotFound) {
		return fmt.Errorf("failed to delete entity: %w", err)
	}

	entry, err := c.queue.Add(ctx, entityType, entityID, models.OpDelete,
		models.Snapshot{models.FieldID: entityID}, 0)
	if err != nil {
		return err
	}

	c.io.Printf("✓ delete %s/%s queued (entry %s)\n", entityType, entityID, entry.ID)
	return nil
}

// parseFieldArgs разбирает аргументы вида key=value в снимок полей
func parseFieldArgs(args []string) (models.Snapshot, error) {
	fields := models.Snapshot{}
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid field argument %q, expected key=value", arg)
		}
		fields[key] = value
	}
	return fields, nil
}
