package cli

import (
	"github.com/spf13/cobra"

	"github.com/foriam/console/internal/console/app"
)

func newServeCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(s.cfg)
			if err != nil {
				return err
			}
			return application.Run()
		},
	}

	cmd.Flags().IntVar(&s.cfg.Port, "port", s.cfg.Port, "Listen port (env CONSOLE_PORT)")
	return cmd
}
