package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrsteele09/storedesk/cli"
	"github.com/jrsteele09/storedesk/guard"
	"github.com/jrsteele09/storedesk/internal/config"
	"github.com/jrsteele09/storedesk/selection"
	"github.com/jrsteele09/storedesk/server"
	storerepofakes "github.com/jrsteele09/storedesk/stores/repofakes"
	"github.com/jrsteele09/storedesk/theme"
	fakeuserrepo "github.com/jrsteele09/storedesk/users/repofake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "Password123"

type testFixture struct {
	ctx context.Context
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	t.Setenv("ENV", "TEST")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SEED_PASSWORD", testPassword)
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.New()
	require.NoError(t, err)
	srv, err := server.New(cfg, server.Repos{
		Users:   fakeuserrepo.NewFakeUserRepo(),
		Stores:  storerepofakes.NewFakeStoreRepo(),
		Catalog: server.NewCatalog(),
	})
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	t.Setenv("STOREDESK_API_URL", ts.URL)
	t.Setenv("STOREDESK_STATE_BACKEND", config.StateBackendFile)
	t.Setenv("STOREDESK_STATE_DIR", t.TempDir())
	return &testFixture{ctx: context.Background()}
}

// run executes one command line in a fresh process-like CLI, so state only
// carries over through the state directory.
func (f *testFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	c := cli.New(cli.WithVersion("test"))
	c.Root().SetOut(&out)
	c.Root().SetErr(&errOut)
	c.Root().SetIn(strings.NewReader(""))
	err := c.Execute(f.ctx, args)
	return out.String(), err
}

func (f *testFixture) login(t *testing.T, email string) string {
	t.Helper()
	out, err := f.run(t, "login", "--email", email, "--password", testPassword)
	require.NoError(t, err)
	return out
}

func TestProtectedCommandsRequireLogin(t *testing.T) {
	f := setupTestFixture(t)

	for _, args := range [][]string{{"whoami"}, {"stores", "list"}, {"products"}, {"dashboard"}} {
		_, err := f.run(t, args...)
		require.ErrorIs(t, err, guard.ErrLoginRequired, "%v", args)
	}
}

func TestLoginWithSingleStoreSelectsIt(t *testing.T) {
	f := setupTestFixture(t)

	out := f.login(t, server.DemoStaffEmail)
	assert.Contains(t, out, "Logged in as Sam Lee (staff)")
	assert.Contains(t, out, "Working in Downtown")

	out, err := f.run(t, "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Flat White")
	assert.Contains(t, out, "$4.50")

	out, err = f.run(t, "tasks")
	require.NoError(t, err)
	assert.Contains(t, out, "Count the till float")
	assert.NotContains(t, out, "Approve next week's roster")
}

func TestStaffIsDeniedManagerCommands(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, server.DemoStaffEmail)

	for _, args := range [][]string{{"staff"}, {"dashboard"}} {
		_, err := f.run(t, args...)
		require.ErrorIs(t, err, guard.ErrUnauthorized, "%v", args)
	}
}

func TestLoginWithSeveralStoresAsksForSelection(t *testing.T) {
	f := setupTestFixture(t)

	out := f.login(t, server.DemoManagerEmail)
	assert.Contains(t, out, "stores switch")
	assert.NotContains(t, out, "Working in")

	_, err := f.run(t, "products")
	require.ErrorIs(t, err, cli.ErrNoStoreSelected)

	out, err = f.run(t, "stores", "list")
	require.NoError(t, err)
	assert.Contains(t, out, server.DemoDowntownName)
	assert.Contains(t, out, server.DemoHarbourName)
	assert.Contains(t, out, "inactive")
}

func TestStoresSwitch(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, server.DemoManagerEmail)

	out, err := f.run(t, "stores", "switch", "harbour")
	require.NoError(t, err)
	assert.Contains(t, out, "Working in Harbour")

	_, err = f.run(t, "stores", "switch", server.DemoOutletName)
	require.ErrorIs(t, err, selection.ErrSwitchFailed)

	out, err = f.run(t, "whoami", "--json")
	require.NoError(t, err)
	var info struct {
		Email     string `json:"email"`
		Role      string `json:"role"`
		Store     string `json:"store"`
		ExpiresIn string `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, server.DemoManagerEmail, info.Email)
	assert.Equal(t, "manager", info.Role)
	assert.Equal(t, server.DemoHarbourName, info.Store, "failed switch keeps the previous store")
	assert.True(t, strings.HasPrefix(info.ExpiresIn, "in "), info.ExpiresIn)

	_, err = f.run(t, "stores", "switch", "Nowhere")
	require.Error(t, err)
}

func TestDashboard(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, server.DemoManagerEmail)
	_, err := f.run(t, "stores", "switch", server.DemoDowntownName)
	require.NoError(t, err)

	out, err := f.run(t, "dashboard", "--json")
	require.NoError(t, err)
	var d struct {
		Store     string `json:"store"`
		Products  int    `json:"products"`
		Orders    int    `json:"orders"`
		Revenue   string `json:"revenue"`
		Staff     int    `json:"staff"`
		OpenTasks int    `json:"openTasks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, server.DemoDowntownName, d.Store)
	assert.Equal(t, 3, d.Products)
	assert.Equal(t, 4, d.Orders)
	assert.Equal(t, "$12.00", d.Revenue)
	assert.Equal(t, 4, d.Staff)
	assert.Equal(t, 2, d.OpenTasks)
}

func TestLogout(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, server.DemoStaffEmail)

	out, err := f.run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	_, err = f.run(t, "whoami")
	require.ErrorIs(t, err, guard.ErrLoginRequired)

	// Logging out twice is harmless.
	_, err = f.run(t, "logout")
	require.NoError(t, err)
}

func TestFailedLoginKeepsSessionEmpty(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.run(t, "login", "--email", server.DemoStaffEmail, "--password", "wrong-password")
	require.Error(t, err)

	_, err = f.run(t, "whoami")
	require.ErrorIs(t, err, guard.ErrLoginRequired)
}

func TestTheme(t *testing.T) {
	f := setupTestFixture(t)

	out, err := f.run(t, "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme: system")

	out, err = f.run(t, "theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme: dark")

	out, err = f.run(t, "theme", "toggle")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme: light")

	_, err = f.run(t, "theme", "neon")
	require.ErrorIs(t, err, theme.ErrUnknownMode)

	out, err = f.run(t, "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme: light")
}
