package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foriam/console/internal/console/view"
	"github.com/foriam/console/pkg/iamsdk"
)

func newAuditCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Browse audit logs",
	}
	cmd.AddCommand(newAuditListCmd(s))
	return cmd
}

func newAuditListCmd(s *session) *cobra.Command {
	var (
		query  iamsdk.AuditQuery
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of audit logs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			page := iamsdk.AuditPage{Page: query.Page, Limit: query.Limit}
			page.Logs = loadList(cmd, s, "audit logs", func(ctx context.Context) ([]iamsdk.AuditLog, error) {
				p, err := client.Audit.List(ctx, &query)
				if err != nil {
					return nil, err
				}
				page = *p
				return p.Logs, nil
			})
			page.Logs = view.FilterAudit(page.Logs, search)

			rows := make([][]string, 0, len(page.Logs))
			for _, l := range page.Logs {
				rows = append(rows, []string{
					formatTime(l.CreatedAt),
					l.Action,
					orDash(iamsdk.Deref(l.Resource)),
					l.Status,
					orDash(iamsdk.Deref(l.UserID)),
					orDash(iamsdk.Deref(l.IPAddress)),
				})
			}

			if err := render(cmd.OutOrStdout(), s.output, page, table{
				headers: []string{"TIME", "ACTION", "RESOURCE", "STATUS", "USER", "IP"},
				rows:    rows,
				empty:   view.EmptyMessage(view.Audit, search),
			}); err != nil {
				return err
			}

			if isTable(s.output) && page.Total > 0 {
				pager := view.NewPager(page.Page, page.Limit, page.Total)
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d events)\n", pager.Page, pager.TotalPages, pager.Total)
			}
			return err
		},
	}

	cmd.Flags().IntVar(&query.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&query.Limit, "limit", 50, "Page size (max 100)")
	cmd.Flags().StringVar(&query.Action, "action", "", "Only this action, e.g. auth.login")
	cmd.Flags().StringVar(&query.UserID, "user-id", "", "Only events of this user")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive filter over action, resource and status")
	return cmd
}
