package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/foriam/console/internal/console/view"
)

// loadList degrades a failed fetch to an empty list plus a warning on stderr.
func loadList[T any](cmd *cobra.Command, s *session, name string, fetch func(context.Context) ([]T, error)) []T {
	items, err := view.LoadList(cmd.Context(), s.Logger(cmd), name, fetch)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not load %s: %v\n", name, err)
	}
	return items
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}
