// Package cli is the command-line front end of the console. It shares the
// session store with the web console, so a login in one is visible in the other.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/foriam/console/internal/console/app"
	"github.com/foriam/console/internal/console/store"
	"github.com/foriam/console/internal/console/store/drivers/sqlite"
	"github.com/foriam/console/pkg/iamsdk"
	"github.com/foriam/console/pkg/slogx"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	s := newSession()
	rootCmd := newRootCmd(s)
	err := rootCmd.Execute()
	_ = s.Close()
	if err != nil {
		printError(rootCmd, err)
		return 1
	}
	return 0
}

func printError(cmd *cobra.Command, err error) {
	output, _ := cmd.PersistentFlags().GetString("output")
	if output == "json" {
		errObj := map[string]any{"error": err.Error()}
		var apiErr *iamsdk.APIError
		if errors.As(err, &apiErr) {
			errObj["http_status"] = apiErr.StatusCode
		}
		_ = printJSON(cmd.OutOrStdout(), errObj)
		return
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}

// session resolves the API client lazily so commands that never talk to the
// API (serve, help) do not open the store.
type session struct {
	cfg     app.Config
	output  string
	verbose bool

	logger  *slog.Logger
	storage *sqlite.Store
	client  *iamsdk.Client
}

func (s *session) Client(cmd *cobra.Command) (*iamsdk.Client, error) {
	if s.client != nil {
		return s.client, nil
	}

	st, err := app.OpenStorage(s.cfg.StorageFile)
	if err != nil {
		return nil, err
	}
	s.storage = st

	s.client = iamsdk.New(iamsdk.Config{
		BaseURL:   s.cfg.APIURL,
		Tokens:    store.NewSessionSlot(st),
		Navigator: loginHint{out: cmd.ErrOrStderr()},
		Logger:    s.Logger(cmd),
	})
	return s.client, nil
}

// Logger writes to stderr and stays quiet below error unless --verbose.
func (s *session) Logger(cmd *cobra.Command) *slog.Logger {
	if s.logger != nil {
		return s.logger
	}

	level := "error"
	if s.verbose {
		level = "debug"
	}
	s.logger = slogx.New(slogx.Config{
		Service: "iam-console-cli",
		Version: app.BuildVersion,
		Env:     s.cfg.Env,
		Level:   level,
		Format:  "text",
		Output:  cmd.ErrOrStderr(),
	})
	return s.logger
}

func (s *session) Close() error {
	if s.storage == nil {
		return nil
	}
	err := s.storage.Close()
	s.storage, s.client = nil, nil
	return err
}

func newSession() *session {
	return &session{cfg: app.LoadConfig()}
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "console",
		Short:         "IAM admin console",
		Long:          "Command-line and web console for administering users, roles, groups and audit logs of an IAM API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return validateOutputFormat(s.output)
		},
	}

	rootCmd.PersistentFlags().StringVar(&s.cfg.APIURL, "api-url", s.cfg.APIURL, "IAM API base URL (env IAM_API_URL)")
	rootCmd.PersistentFlags().StringVar(&s.cfg.StorageFile, "storage", s.cfg.StorageFile, "Session storage file (env CONSOLE_STORAGE_FILE)")
	rootCmd.PersistentFlags().StringVarP(&s.output, "output", "o", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "Log API traffic to stderr")

	rootCmd.AddCommand(newLoginCmd(s))
	rootCmd.AddCommand(newLogoutCmd(s))
	rootCmd.AddCommand(newWhoamiCmd(s))
	rootCmd.AddCommand(newDashboardCmd(s))
	rootCmd.AddCommand(newUsersCmd(s))
	rootCmd.AddCommand(newRolesCmd(s))
	rootCmd.AddCommand(newGroupsCmd(s))
	rootCmd.AddCommand(newAuditCmd(s))
	rootCmd.AddCommand(newServeCmd(s))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the console version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion)
			return err
		},
	}
}
