package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/devserver"
	"github.com/jrsteele09/isp-console/internal/config"
	organizationrepofakes "github.com/jrsteele09/isp-console/organizations/repofakes"
	rolerepofake "github.com/jrsteele09/isp-console/roles/repofake"
	storagerepofake "github.com/jrsteele09/isp-console/storage/repofake"
	refreshrepofake "github.com/jrsteele09/isp-console/token/refresh/repofake"
	"github.com/jrsteele09/isp-console/tokenstore"
	fakeuserrepo "github.com/jrsteele09/isp-console/users/repofake"
)

const adminPassword = "Admin12345"

// syncBuffer is written by the backend's logger and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type console struct {
	baseURL string
	dbPath  string
}

func setupConsole(t *testing.T) *console {
	t.Helper()
	t.Setenv("ISP_CONSOLE_API_STARTUP_DELAY", "0s")
	t.Setenv("ISP_CONSOLE_LOG_LEVEL", "error")

	v := viper.New()
	v.Set("env", "TEST")
	v.Set("devserver.jwt_secret", "console-test-secret")
	v.Set("devserver.admin_password", adminPassword)
	srv, err := devserver.New(config.FromViper(v), devserver.Repos{
		Users:         fakeuserrepo.NewFakeUserRepo(),
		Roles:         rolerepofake.NewFakeRoleRepo(),
		Organizations: organizationrepofakes.NewFakeOrganizationRepo(),
		RefreshTokens: refreshrepofake.NewFakeRefreshTokenRepo(),
	})
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return &console{
		baseURL: ts.URL + devserver.APIPrefix,
		dbPath:  filepath.Join(t.TempDir(), "console.db"),
	}
}

func (c *console) run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr syncBuffer
	args = append(args, "--base-url", c.baseURL, "--storage", "sqlite", "--db", c.dbPath)
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func (c *console) login(t *testing.T) {
	t.Helper()
	code, out, errOut := c.run(t, "", "login", "-u", "admin", "--password", adminPassword)
	require.Equal(t, ExitCodeSuccess, code, errOut)
	require.Contains(t, out, "Signed in as")
}

func TestLogin_PersistsSessionAcrossRuns(t *testing.T) {
	c := setupConsole(t)
	c.login(t)

	code, out, errOut := c.run(t, "", "whoami", "-o", "json")
	require.Equal(t, ExitCodeSuccess, code, errOut)
	var me map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &me))
	require.Equal(t, "admin", me["login_id"])
	require.Equal(t, "admin", me["user_type"])
}

func TestLogin_ReadsPasswordFromStdin(t *testing.T) {
	c := setupConsole(t)

	code, out, errOut := c.run(t, adminPassword+"\n", "login", "-u", "admin", "--password-stdin")
	require.Equal(t, ExitCodeSuccess, code, errOut)
	require.Contains(t, out, "Signed in as")
}

func TestLogin_WrongPassword(t *testing.T) {
	c := setupConsole(t)

	code, _, errOut := c.run(t, "", "login", "-u", "admin", "--password", "not-the-password")
	require.Equal(t, ExitCodeError, code)
	require.Contains(t, errOut, "Invalid login ID or password")

	code, _, _ = c.run(t, "", "whoami")
	require.Equal(t, ExitCodeAuthRequired, code)
}

func TestLogin_ValidatesLocally(t *testing.T) {
	c := setupConsole(t)

	code, _, errOut := c.run(t, "", "login", "-u", "ad", "--password", "x")
	require.Equal(t, ExitCodeError, code)
	require.Contains(t, errOut, "Login ID must be at least 3 characters")
}

func TestProtectedCommand_RequiresSession(t *testing.T) {
	c := setupConsole(t)

	code, _, errOut := c.run(t, "", "users", "list")
	require.Equal(t, ExitCodeAuthRequired, code)
	require.Contains(t, errOut, "not signed in")
}

func TestUsers_CreateListAndDelete(t *testing.T) {
	c := setupConsole(t)
	c.login(t)

	code, out, errOut := c.run(t, "", "users", "create",
		"--login-id", "jdoe", "--name", "Jo Doe", "--email", "jo@example.net",
		"--password", "Str0ngPass!", "-o", "json")
	require.Equal(t, ExitCodeSuccess, code, errOut)
	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.Equal(t, "jdoe", created["login_id"])

	code, out, errOut = c.run(t, "", "users", "list", "-o", "json")
	require.Equal(t, ExitCodeSuccess, code, errOut)
	var list []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	logins := []any{}
	for _, u := range list {
		logins = append(logins, u["login_id"])
	}
	require.ElementsMatch(t, []any{"admin", "jdoe"}, logins)

	code, _, errOut = c.run(t, "", "users", "delete", jsonID(created["id"]))
	require.Equal(t, ExitCodeSuccess, code, errOut)

	code, _, errOut = c.run(t, "", "users", "get", jsonID(created["id"]))
	require.Equal(t, ExitCodeError, code)
	require.Contains(t, errOut, "Not found")
}

func TestUsers_UpdateChangesOnlyGivenFields(t *testing.T) {
	c := setupConsole(t)
	c.login(t)

	code, out, errOut := c.run(t, "", "users", "create",
		"--login-id", "jdoe", "--name", "Jo Doe", "--email", "jo@example.net",
		"--password", "Str0ngPass!", "-o", "json")
	require.Equal(t, ExitCodeSuccess, code, errOut)
	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	id := jsonID(created["id"])

	code, out, errOut = c.run(t, "", "users", "update", id, "--name", "Joanna Doe", "--active=false", "-o", "json")
	require.Equal(t, ExitCodeSuccess, code, errOut)
	var updated map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	require.Equal(t, "Joanna Doe", updated["name"])
	require.Equal(t, false, updated["is_active"])
	require.Equal(t, "jo@example.net", updated["email"])

	code, _, errOut = c.run(t, "", "users", "update", id)
	require.Equal(t, ExitCodeError, code)
	require.Contains(t, errOut, "nothing to update")

	code, _, errOut = c.run(t, "", "users", "update", id, "--email", "not-an-email")
	require.Equal(t, ExitCodeError, code)
	require.Contains(t, errOut, "Email is invalid")
}

func TestUsers_ListTable(t *testing.T) {
	c := setupConsole(t)
	c.login(t)

	code, out, errOut := c.run(t, "", "users", "list", "--search", "admin")
	require.Equal(t, ExitCodeSuccess, code, errOut)
	require.Contains(t, out, "LOGIN ID")
	require.Contains(t, out, "admin")
	require.Contains(t, out, "page 1, 1 of 1")
}

func TestRolesAndOrganizations(t *testing.T) {
	c := setupConsole(t)
	c.login(t)

	code, out, errOut := c.run(t, "", "roles", "list", "-o", "yaml")
	require.Equal(t, ExitCodeSuccess, code, errOut)
	require.Contains(t, out, "name: "+devserver.AdminRoleName)

	code, out, errOut = c.run(t, "", "orgs", "list", "-o", "json")
	require.Equal(t, ExitCodeSuccess, code, errOut)
	require.Contains(t, out, devserver.SystemOrganizationCode)
}

func TestReportsExport_RejectsUnknownFormat(t *testing.T) {
	c := setupConsole(t)
	c.login(t)

	code, _, errOut := c.run(t, "", "reports", "export", "revenue", "--format", "docx")
	require.Equal(t, ExitCodeError, code)
	require.Contains(t, errOut, `unknown format "docx"`)
}

func TestBilling_UnservedEndpointReportsNotFound(t *testing.T) {
	c := setupConsole(t)
	c.login(t)

	// the development backend has no billing routes
	code, _, errOut := c.run(t, "", "billing", "invoices")
	require.Equal(t, ExitCodeError, code)
	require.Contains(t, errOut, "Not found")
}

func TestLogout_EndsSession(t *testing.T) {
	c := setupConsole(t)
	c.login(t)

	code, out, errOut := c.run(t, "", "logout", "--all-devices")
	require.Equal(t, ExitCodeSuccess, code, errOut)
	require.Contains(t, out, "Signed out")

	code, _, errOut = c.run(t, "", "whoami")
	require.Equal(t, ExitCodeAuthRequired, code)
	require.Contains(t, errOut, "console login")
}

func TestRefresh_RotatesTokens(t *testing.T) {
	c := setupConsole(t)
	c.login(t)

	code, out, errOut := c.run(t, "", "refresh")
	require.Equal(t, ExitCodeSuccess, code, errOut)
	require.Contains(t, out, "Session refreshed")

	code, _, errOut = c.run(t, "", "whoami")
	require.Equal(t, ExitCodeSuccess, code, errOut)
}

func TestTheme_WorksSignedOut(t *testing.T) {
	c := setupConsole(t)
	t.Setenv("COLORFGBG", "")

	code, out, _ := c.run(t, "", "theme", "-o", "json")
	require.Equal(t, ExitCodeSuccess, code)
	require.JSONEq(t, `{"message":"dark"}`, out)

	code, out, _ = c.run(t, "", "theme", "toggle")
	require.Equal(t, ExitCodeSuccess, code)
	require.Contains(t, out, "Theme set to light")

	code, out, _ = c.run(t, "", "theme", "-o", "json")
	require.Equal(t, ExitCodeSuccess, code)
	require.JSONEq(t, `{"message":"light"}`, out)

	code, _, errOut := c.run(t, "", "theme", "set", "sepia")
	require.Equal(t, ExitCodeError, code)
	require.Contains(t, errOut, "must be light or dark")
}

func TestVersion_IsOffline(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"version", "-o", "json", "--storage", "nowhere"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, ExitCodeSuccess, code, stderr.String())
	require.JSONEq(t, `{"message":"console dev"}`, stdout.String())
}

func TestUnknownOutputFormat(t *testing.T) {
	c := setupConsole(t)

	code, _, errOut := c.run(t, "", "whoami", "-o", "xml")
	require.Equal(t, ExitCodeError, code)
	require.Contains(t, errOut, `unknown output format "xml"`)
}

func TestReportSlow(t *testing.T) {
	newApp := func(t *testing.T, debug bool) (*app, *bytes.Buffer) {
		t.Helper()
		slow := api.NewSlowLog()
		at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
		slow.Record(api.SlowRequest{Method: "GET", Path: "/users/", Status: 200, Duration: 2500 * time.Millisecond, Timestamp: at})
		slow.Record(api.SlowRequest{Method: "GET", Path: "/customers/", Status: 200, Duration: 4 * time.Second, Timestamp: at})
		client, err := api.New("http://localhost:8080/api/v1", tokenstore.New(storagerepofake.NewFakeStorageRepo()), api.WithSlowLog(slow))
		require.NoError(t, err)

		var errOut bytes.Buffer
		return &app{errOut: &errOut, client: client, flags: globalFlags{debug: debug}}, &errOut
	}

	t.Run("debug lists slowest first", func(t *testing.T) {
		a, errOut := newApp(t, true)
		a.reportSlow()
		out := errOut.String()
		require.Contains(t, out, "slow requests")
		require.Less(t, strings.Index(out, "/customers/"), strings.Index(out, "/users/"))
	})

	t.Run("silent without debug", func(t *testing.T) {
		a, errOut := newApp(t, false)
		a.reportSlow()
		require.Empty(t, errOut.String())
	})
}

func TestUserMessage_Interrupted(t *testing.T) {
	err := fmt.Errorf("[Controller.VerifyOnStartup] interrupted: %w", context.Canceled)
	require.Equal(t, ExitCodeError, exitCode(err))
	require.Contains(t, userMessage(err), "stored session is unchanged")
}

func TestGuard_RecoversPanic(t *testing.T) {
	var stderr bytes.Buffer
	code := guard(&stderr, func() int {
		panic("boom")
	})
	require.Equal(t, ExitCodeCrashed, code)
	require.Contains(t, stderr.String(), "re-run the command")
}

func jsonID(v any) string {
	b, _ := json.Marshal(v)
	return strings.Trim(string(b), `"`)
}
