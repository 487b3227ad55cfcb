package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/foriam/console/pkg/iamsdk"
)

type loginResult struct {
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

func newLoginCmd(s *session) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Example: `  # Prompt for the password
  console login --email admin@example.com

  # Non-interactive
  console login --email admin@example.com --password "$IAM_PASSWORD"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())

			var err error
			if email == "" {
				if email, err = promptLine(cmd, in, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptPassword(cmd, in, "Password: "); err != nil {
					return err
				}
			}
			if email == "" || password == "" {
				return errors.New("email and password are required")
			}

			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Auth.Login(cmd.Context(), iamsdk.Credentials{Email: email, Password: password})
			if err != nil {
				if iamsdk.IsUnauthorized(err) {
					return errors.New("invalid email or password")
				}
				return fmt.Errorf("login: %w", err)
			}

			result := loginResult{Email: email, TokenType: resp.TokenType, ExpiresIn: resp.ExpiresIn}
			return message(cmd.OutOrStdout(), s.output, result,
				"Logged in as %s (session valid for %s).", email, time.Duration(resp.ExpiresIn)*time.Second)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Administrator email")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")

	return cmd
}

func promptLine(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo from a terminal, or a plain line otherwise.
func promptPassword(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)
		raw, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	return promptLine(cmd, in, label)
}

func newLogoutCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			// the local token is gone either way
			if err := client.Auth.Logout(cmd.Context()); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: logout call failed: %v\n", err)
			}
			return message(cmd.OutOrStdout(), s.output, map[string]string{"message": "Logged out"}, "Logged out.")
		},
	}
}

type whoamiResult struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	TenantID  string     `json:"tenant_id,omitempty"`
	Active    bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func newWhoamiCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.Client(cmd)
			if err != nil {
				return err
			}

			token, err := client.Tokens().Token(cmd.Context())
			if err != nil {
				return err
			}
			if token == "" {
				return errors.New("not logged in: run `console login`")
			}

			user, err := client.Auth.Profile(cmd.Context())
			if err != nil {
				return fmt.Errorf("profile: %w", err)
			}

			result := whoamiResult{ID: user.ID, Email: user.Email, TenantID: user.TenantID, Active: user.IsActive}
			if claims, err := iamsdk.ParseClaims(token); err == nil {
				if exp := claims.Expiry(); !exp.IsZero() {
					result.ExpiresAt = &exp
				}
			}

			expires := "-"
			if result.ExpiresAt != nil {
				expires = result.ExpiresAt.Local().Format(time.RFC3339)
			}
			return render(cmd.OutOrStdout(), s.output, result, table{
				headers: []string{"FIELD", "VALUE"},
				rows: [][]string{
					{"id", result.ID},
					{"email", result.Email},
					{"tenant", orDash(result.TenantID)},
					{"active", fmt.Sprint(result.Active)},
					{"expires", expires},
				},
			})
		},
	}
}
