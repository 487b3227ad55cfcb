package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/foriam/console/internal/console/view"
	"github.com/foriam/console/pkg/iamsdk"
)

func newRolesCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Manage roles",
	}

	cmd.AddCommand(newRolesListCmd(s))
	cmd.AddCommand(newRolesCreateCmd(s))
	cmd.AddCommand(newRolesUpdateCmd(s))
	cmd.AddCommand(newRolesDeleteCmd(s))
	return cmd
}

func newRolesListCmd(s *session) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			roles := view.FilterRoles(loadList(cmd, s, "roles", client.Roles.List), search)

			rows := make([][]string, 0, len(roles))
			for _, r := range roles {
				rows = append(rows, []string{r.ID, r.Name, orDash(r.Description), formatTime(r.CreatedAt)})
			}
			return render(cmd.OutOrStdout(), s.output, roles, table{
				headers: []string{"ID", "NAME", "DESCRIPTION", "CREATED"},
				rows:    rows,
				empty:   view.EmptyMessage(view.Roles, search),
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive name or description filter")
	return cmd
}

func newRolesCreateCmd(s *session) *cobra.Command {
	var req iamsdk.CreateRoleRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			role, err := client.Roles.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return message(cmd.OutOrStdout(), s.output, role, "Created role %s (%s).", role.Name, role.ID)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Role name")
	cmd.Flags().StringVar(&req.Description, "description", "", "Role description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newRolesUpdateCmd(s *session) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename a role or change its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := iamsdk.UpdateRoleRequest{Name: name}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if req.Name == "" && req.Description == nil {
				return errors.New("nothing to update: pass --name or --description")
			}

			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Roles.Update(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return message(cmd.OutOrStdout(), s.output, resp, "%s", resp.Message)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func newRolesDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			if err := client.Roles.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return message(cmd.OutOrStdout(), s.output, map[string]string{"id": args[0]}, "Deleted role %s.", args[0])
		},
	}
}
