package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foriam/console/internal/console/app"
	"github.com/foriam/console/internal/console/view"
	"github.com/foriam/console/pkg/iamsdk"
	"github.com/foriam/console/pkg/iamsdk/iamsdktest"
)

// cliEnv is one fake backend plus one session file shared by every run.
type cliEnv struct {
	srv     *iamsdktest.Server
	storage string
}

type result struct {
	stdout string
	stderr string
	err    error
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	return &cliEnv{
		srv:     iamsdktest.NewServer(t),
		storage: filepath.Join(t.TempDir(), "console.db"),
	}
}

func (e *cliEnv) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	s := &session{cfg: app.Config{APIURL: e.srv.URL, StorageFile: e.storage, Env: "dev"}}
	rootCmd := newRootCmd(s)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	require.NoError(t, s.Close())
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func (e *cliEnv) login(t *testing.T) {
	t.Helper()
	res := e.run(t, "", "login", "--email", iamsdktest.AdminEmail, "--password", iamsdktest.AdminPassword)
	require.NoError(t, res.err)
}

func TestCLI_Login(t *testing.T) {
	t.Run("flags", func(t *testing.T) {
		env := newCLIEnv(t)

		res := env.run(t, "", "login", "--email", iamsdktest.AdminEmail, "--password", iamsdktest.AdminPassword)
		require.NoError(t, res.err)
		assert.Equal(t, "Logged in as admin@foriam.local (session valid for 24h0m0s).\n", res.stdout)

		// the token outlives the process
		res = env.run(t, "", "whoami", "-o", "json")
		require.NoError(t, res.err)

		var who whoamiResult
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &who))
		assert.Equal(t, iamsdktest.AdminEmail, who.Email)
		assert.Equal(t, iamsdktest.TenantID, who.TenantID)
		assert.True(t, who.Active)
		require.NotNil(t, who.ExpiresAt)
	})

	t.Run("prompts", func(t *testing.T) {
		env := newCLIEnv(t)

		res := env.run(t, iamsdktest.AdminEmail+"\n"+iamsdktest.AdminPassword+"\n", "login")
		require.NoError(t, res.err)
		assert.Contains(t, res.stderr, "Email: ")
		assert.Contains(t, res.stderr, "Password: ")
		assert.Contains(t, res.stdout, "Logged in as admin@foriam.local")
	})

	t.Run("wrong password", func(t *testing.T) {
		env := newCLIEnv(t)

		res := env.run(t, "", "login", "--email", iamsdktest.AdminEmail, "--password", "nope")
		require.EqualError(t, res.err, "invalid email or password")

		res = env.run(t, "", "whoami")
		require.EqualError(t, res.err, "not logged in: run `console login`")
	})

	t.Run("empty input", func(t *testing.T) {
		env := newCLIEnv(t)

		res := env.run(t, "", "login")
		require.EqualError(t, res.err, "email and password are required")
		assert.Zero(t, env.srv.Count(http.MethodPost, "/auth/login"))
	})
}

func TestCLI_Logout(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)

	res := env.run(t, "", "logout")
	require.NoError(t, res.err)
	assert.Equal(t, "Logged out.\n", res.stdout)
	assert.Equal(t, 1, env.srv.Count(http.MethodPost, "/auth/logout"))

	res = env.run(t, "", "whoami")
	require.Error(t, res.err)

	// nothing left to end
	res = env.run(t, "", "logout")
	require.NoError(t, res.err)
	assert.Equal(t, 1, env.srv.Count(http.MethodPost, "/auth/logout"))
}

func TestCLI_Users(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)

	res := env.run(t, "", "users", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "EMAIL")
	assert.Contains(t, res.stdout, iamsdktest.AdminEmail)
	assert.Contains(t, res.stdout, "Active")

	res = env.run(t, "", "users", "list", "--search", "nobody")
	require.NoError(t, res.err)
	assert.Equal(t, "No users found matching your search.\n", res.stdout)

	res = env.run(t, "", "users", "create", "--email", "ops@foriam.local", "--password", "secret1", "-o", "json")
	require.NoError(t, res.err)

	var created iamsdk.User
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &created))
	assert.Equal(t, "ops@foriam.local", created.Email)

	res = env.run(t, "", "users", "update", created.ID, "--active=false")
	require.NoError(t, res.err)
	assert.Equal(t, "User updated successfully\n", res.stdout)
	assert.False(t, env.srv.Users()[1].IsActive)

	res = env.run(t, "", "users", "update", created.ID)
	require.EqualError(t, res.err, "nothing to update: pass --email or --active")

	res = env.run(t, "", "users", "delete", created.ID)
	require.NoError(t, res.err)
	assert.Len(t, env.srv.Users(), 1)

	res = env.run(t, "", "users", "delete", created.ID)
	require.Error(t, res.err)
	assert.Equal(t, http.StatusNotFound, iamsdk.StatusCode(res.err))
}

func TestCLI_ListWithoutSessionDegrades(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run(t, "", "users", "list")
	require.NoError(t, res.err)
	assert.Equal(t, "No users found. Create your first user to get started.\n", res.stdout)
	assert.Contains(t, res.stderr, "Run `console login`")
	assert.Contains(t, res.stderr, "warning: could not load users")
}

func TestCLI_RolesAndGroups(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)

	res := env.run(t, "", "roles", "create", "--name", "auditor", "--description", "Reads audit logs")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "Created role auditor ("))

	res = env.run(t, "", "roles", "list", "-o", "yaml")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "name: auditor")
	assert.Contains(t, res.stdout, "description: Reads audit logs")

	res = env.run(t, "", "roles", "list", "--search", "READ-ONLY")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "viewer")
	assert.NotContains(t, res.stdout, "auditor")

	res = env.run(t, "", "groups", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Engineering")

	res = env.run(t, "", "groups", "update", "some-id")
	require.EqualError(t, res.err, "nothing to update: pass --name or --description")

	res = env.run(t, "", "groups", "create")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `required flag(s) "name" not set`)
}

func TestCLI_Audit(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)
	env.srv.ResetRequests()

	res := env.run(t, "", "audit", "list", "--limit", "1", "-o", "json")
	require.NoError(t, res.err)
	assert.Equal(t, "limit=1&page=1", env.srv.LastRequest().Query)

	var page iamsdk.AuditPage
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &page))
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Limit)
	require.Len(t, page.Logs, 1)
	assert.Equal(t, "auth.login", page.Logs[0].Action)

	res = env.run(t, "", "audit", "list", "--limit", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "ACTION")
	assert.Contains(t, res.stdout, "page 1 of 2 (2 events)")

	res = env.run(t, "", "audit", "list", "--action", "user.delete")
	require.NoError(t, res.err)
	assert.Equal(t, "No audit logs available.\n", res.stdout)
}

func TestCLI_Dashboard(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)

	res := env.run(t, "", "dashboard", "-o", "json")
	require.NoError(t, res.err)

	var stats view.Stats
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &stats))
	assert.Equal(t, view.Stats{Users: 1, Roles: 2, Groups: 1, AuditEvents: 2}, stats)

	env.srv.Override(http.MethodGet, "/groups", http.StatusInternalServerError, `{"error":"boom"}`)
	res = env.run(t, "", "dashboard")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "groups")
}

func TestCLI_OutputFormatValidation(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run(t, "", "users", "list", "-o", "xml")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `unsupported output format "xml"`)
	assert.Empty(t, env.srv.Requests())
}

func TestPrintError(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		rootCmd := newRootCmd(&session{})
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		require.NoError(t, rootCmd.PersistentFlags().Set("output", "json"))

		printError(rootCmd, &iamsdk.APIError{StatusCode: 404, Method: "DELETE", Path: "/roles/x", Message: "Role not found"})

		var body map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &body))
		assert.Equal(t, float64(404), body["http_status"])
		assert.Equal(t, "DELETE /roles/x: HTTP 404: Role not found", body["error"])
	})

	t.Run("text", func(t *testing.T) {
		rootCmd := newRootCmd(&session{})
		var errOut bytes.Buffer
		rootCmd.SetErr(&errOut)

		printError(rootCmd, assert.AnError)
		assert.Equal(t, "Error: "+assert.AnError.Error()+"\n", errOut.String())
	})
}

func TestVersion(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run(t, "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, app.BuildVersion+"\n", res.stdout)
}
