package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/railpath/internal/hcl"
	"github.com/specialistvlad/railpath/internal/testutil"
	"github.com/specialistvlad/railpath/internal/train"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.Error(t, err)

	_, err = NewConfig(Config{LayoutPath: "x", MaxTicks: -1})
	assert.Error(t, err)

	cfg, err := NewConfig(Config{LayoutPath: "x", MaxTicks: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxTicks)
}

func TestNewApp_RejectsUnknownSignType(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"layout.hcl": `
world "main" {
  track "t" { points = [[0, 64, 0], [5, 64, 0]] }
  sign "teleporter" { at = [2, 64, 0] }
}
`})
	_, err := NewApp(io.Discard, &Config{LayoutPath: dir}, hcl.NewLoader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry validation failed")
	assert.Contains(t, err.Error(), "teleporter")
}

func TestNewApp_RejectsUnknownRoute(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"layout.hcl": `
world "main" {
  track "t" { points = [[0, 64, 0], [5, 64, 0]] }
}
train "t1" {
  world     = "main"
  at        = [0, 64, 0]
  direction = "east"
  route     = "nowhere"
}
`})
	_, err := NewApp(io.Discard, &Config{LayoutPath: dir}, hcl.NewLoader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown route "nowhere"`)
}

func TestApp_RunLineLayout(t *testing.T) {
	a, logs := SetupAppTest(t, testutil.LineLayout, nil)

	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, logs.String(), "Discovery settled.")
	assert.False(t, a.Graph().Provider().IsProcessing())

	res, err := a.FindPath("main", "west", "east")
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, 20, res.Distance())
	assert.Equal(t, "west -> east (20 blocks)", a.DescribePath("west", res))

	trains := a.Fleet().Trains()
	require.Len(t, trains, 1)
	assert.Contains(t, trains[0].Arrivals(), "east")
	assert.Equal(t, "west", trains[0].Destination())
	assert.Equal(t, train.StateStalled, trains[0].State())
}

func TestApp_MaxTicksOverride(t *testing.T) {
	a, _ := SetupAppTest(t, testutil.LineLayout, func(c *Config) { c.MaxTicks = 2 })
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, uint64(2), a.loop.Ticks())
}

func TestApp_HealthEndpoints(t *testing.T) {
	a, _ := SetupAppTest(t, testutil.JunctionLayout, nil)
	h := a.Handler()

	code, body := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK\n", body)

	require.True(t, a.Graph().Provider().IsProcessing())
	code, body = get(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body, "discovering")

	require.NoError(t, a.Settle(context.Background()))
	code, _ = get(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, code)

	code, body = get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "railpath_discovery_finished_total")
}

func TestApp_FindPathErrors(t *testing.T) {
	a, _ := SetupAppTest(t, testutil.JunctionLayout, nil)
	require.NoError(t, a.Settle(context.Background()))

	_, err := a.FindPath("nether", "west", "east")
	assert.Error(t, err)
	_, err = a.FindPath("main", "nowhere", "east")
	assert.Error(t, err)

	res, err := a.FindPath("main", "west", "south")
	require.NoError(t, err)
	assert.Equal(t, 20, res.Distance())
}

func TestApp_Dump(t *testing.T) {
	a, _ := SetupAppTest(t, testutil.JunctionLayout, nil)
	require.NoError(t, a.Settle(context.Background()))

	var out testutil.SafeBuffer
	require.NoError(t, a.Dump(&out))
	assert.Contains(t, out.String(), "world main (4 nodes)")
	assert.Contains(t, out.String(), "switchable")
	assert.Contains(t, out.String(), "-> south 10")
}

func persistentLayout(dir string) string {
	return fmt.Sprintf(`
settings {
  store       = "file"
  store_path  = %q
  routes_path = %q
}
%s`, filepath.Join(dir, "graph.bin"), filepath.Join(dir, "routes.yaml"), testutil.LineLayout)
}

func TestApp_PersistsAcrossRestarts(t *testing.T) {
	dir := t.TempDir()
	layout := persistentLayout(dir)

	first, _ := SetupAppTest(t, layout, nil)
	require.NoError(t, first.Settle(context.Background()))
	require.NoError(t, first.Shutdown(context.Background()))
	require.NoError(t, first.Close())
	assert.FileExists(t, filepath.Join(dir, "graph.bin"))
	assert.FileExists(t, filepath.Join(dir, "routes.yaml"))

	second, logs := SetupAppTest(t, layout, nil)
	assert.Contains(t, logs.String(), "Routing graph restored.")
	assert.False(t, second.Graph().Provider().IsProcessing(), "restored nodes are not rediscovered")
	assert.Equal(t, []string{"east", "west"}, second.Routes().Get("shuttle"))

	res, err := second.FindPath("main", "east", "west")
	require.NoError(t, err)
	assert.Equal(t, 20, res.Distance())

	third, _ := SetupAppTest(t, layout, func(c *Config) { c.Reroute = true })
	assert.True(t, third.Graph().Provider().IsProcessing(), "reroute schedules every node again")
	require.NoError(t, third.Settle(context.Background()))
	res, err = third.FindPath("main", "east", "west")
	require.NoError(t, err)
	assert.Equal(t, 20, res.Distance())
}

func TestApp_CorruptGraphIsRediscovered(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "graph.bin"), []byte("not a graph"), 0o644))

	a, logs := SetupAppTest(t, persistentLayout(dir), nil)
	assert.Contains(t, logs.String(), "Saved routing graph is corrupt")
	assert.True(t, a.Graph().Provider().IsProcessing())
}

func TestApp_SaveOnChange(t *testing.T) {
	layout := `
settings {
  save_on_change = true
}
` + testutil.LineLayout
	a, _ := SetupAppTest(t, layout, nil)
	ctx := context.Background()

	a.persistTick(ctx, 1)
	assert.True(t, a.Graph().IsDirty(), "nothing is saved while discovery runs")

	require.NoError(t, a.Settle(ctx))
	a.persistTick(ctx, 2)
	assert.False(t, a.Graph().IsDirty())
}

func TestApp_ExportsStoreSpans(t *testing.T) {
	layout := testutil.LineLayout + `
settings {
  trace_exporter = "stdout"
}
`
	a, logs := SetupAppTest(t, layout, nil)
	require.NotNil(t, a.tracerProvider)

	require.NoError(t, a.Shutdown(context.Background()))
	require.NoError(t, a.Close())

	out := logs.String()
	assert.Contains(t, out, "pathstore.memory.load")
	assert.Contains(t, out, "pathstore.memory.save")
	assert.Contains(t, out, `"service.name"`)
}

func TestApp_TracingOffByDefault(t *testing.T) {
	a, logs := SetupAppTest(t, testutil.LineLayout, nil)
	require.NoError(t, a.Shutdown(context.Background()))

	assert.Nil(t, a.tracerProvider)
	assert.NotContains(t, logs.String(), "pathstore.memory.save")
}
