package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/foriam/console/internal/console/view"
)

func newDashboardCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show user, role, group and audit event counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			stats, err := view.LoadDashboard(cmd.Context(), client)
			if err != nil {
				return fmt.Errorf("load dashboard: %w", err)
			}

			return render(cmd.OutOrStdout(), s.output, stats, table{
				headers: []string{"METRIC", "COUNT"},
				rows: [][]string{
					{"Total Users", strconv.Itoa(stats.Users)},
					{"Roles", strconv.Itoa(stats.Roles)},
					{"Groups", strconv.Itoa(stats.Groups)},
					{"Audit Events", strconv.Itoa(stats.AuditEvents)},
				},
			})
		},
	}
}
