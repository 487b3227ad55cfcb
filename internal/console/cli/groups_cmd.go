package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/foriam/console/internal/console/view"
	"github.com/foriam/console/pkg/iamsdk"
)

func newGroupsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage groups",
	}

	cmd.AddCommand(newGroupsListCmd(s))
	cmd.AddCommand(newGroupsCreateCmd(s))
	cmd.AddCommand(newGroupsUpdateCmd(s))
	cmd.AddCommand(newGroupsDeleteCmd(s))
	return cmd
}

func newGroupsListCmd(s *session) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			groups := view.FilterGroups(loadList(cmd, s, "groups", client.Groups.List), search)

			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				rows = append(rows, []string{g.ID, g.Name, orDash(iamsdk.Deref(g.Description)), formatTime(g.CreatedAt)})
			}
			return render(cmd.OutOrStdout(), s.output, groups, table{
				headers: []string{"ID", "NAME", "DESCRIPTION", "CREATED"},
				rows:    rows,
				empty:   view.EmptyMessage(view.Groups, search),
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive name or description filter")
	return cmd
}

func newGroupsCreateCmd(s *session) *cobra.Command {
	var req iamsdk.CreateGroupRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			group, err := client.Groups.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return message(cmd.OutOrStdout(), s.output, group, "Created group %s (%s).", group.Name, group.ID)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Group name")
	cmd.Flags().StringVar(&req.Description, "description", "", "Group description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newGroupsUpdateCmd(s *session) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename a group or change its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := iamsdk.UpdateGroupRequest{Name: name}
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

			resp, err := client.Groups.Update(cmd.Context(), args[0], req)
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

func newGroupsDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			if err := client.Groups.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return message(cmd.OutOrStdout(), s.output, map[string]string{"id": args[0]}, "Deleted group %s.", args[0])
		},
	}
}
