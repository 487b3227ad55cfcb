package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/foriam/console/internal/console/view"
	"github.com/foriam/console/pkg/iamsdk"
)

func newUsersCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(newUsersListCmd(s))
	cmd.AddCommand(newUsersCreateCmd(s))
	cmd.AddCommand(newUsersUpdateCmd(s))
	cmd.AddCommand(newUsersDeleteCmd(s))
	return cmd
}

func newUsersListCmd(s *session) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			users := view.FilterUsers(loadList(cmd, s, "users", client.Users.List), search)

			rows := make([][]string, 0, len(users))
			for _, u := range users {
				status, _ := view.UserBadge(u.IsActive)
				rows = append(rows, []string{u.ID, u.Email, status, formatTime(u.CreatedAt)})
			}
			return render(cmd.OutOrStdout(), s.output, users, table{
				headers: []string{"ID", "EMAIL", "STATUS", "CREATED"},
				rows:    rows,
				empty:   view.EmptyMessage(view.Users, search),
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive email filter")
	return cmd
}

func newUsersCreateCmd(s *session) *cobra.Command {
	var req iamsdk.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			user, err := client.Users.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return message(cmd.OutOrStdout(), s.output, user, "Created user %s (%s).", user.Email, user.ID)
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Initial password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersUpdateCmd(s *session) *cobra.Command {
	var (
		email  string
		active bool
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a user's email or active flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := iamsdk.UpdateUserRequest{Email: email}
			if cmd.Flags().Changed("active") {
				req.IsActive = &active
			}
			if req.Email == "" && req.IsActive == nil {
				return errors.New("nothing to update: pass --email or --active")
			}

			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Users.Update(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return message(cmd.OutOrStdout(), s.output, resp, "%s", resp.Message)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "New email address")
	cmd.Flags().BoolVar(&active, "active", true, "Activate (true) or deactivate (false)")
	return cmd
}

func newUsersDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			if err := client.Users.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return message(cmd.OutOrStdout(), s.output, map[string]string{"id": args[0]}, "Deleted user %s.", args[0])
		},
	}
}
