package view

import (
	"context"
	"log/slog"
)

// LoadList runs fetch once. On failure the error is logged and returned along
// with an empty, non-nil list so callers can render an empty table.
func LoadList[T any](ctx context.Context, logger *slog.Logger, name string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	items, err := fetch(ctx)
	if err != nil {
		logger.WarnContext(ctx, "failed to fetch "+name, "err", err)
		return []T{}, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
