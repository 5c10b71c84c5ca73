package integration_tests

import (
	"context"
	"testing"

	"github.com/specialistvlad/railpath/internal/app"
	"github.com/specialistvlad/railpath/internal/hcl"
	"github.com/specialistvlad/railpath/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Test for: config merges
func TestCLI_MergesHCL_FromDirectoryPath(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"settings.hcl": `
			settings {
				tick_interval = "5ms"
				max_ticks     = 40
			}
		`,
		"worlds/track.hcl": `
			world "main" {
				track "line" {
					points = [[0, 64, 0], [12, 64, 0]]
				}
			}
		`,
		"worlds/signs.hcl": `
			world "main" {
				sign "destination" {
					at   = [12, 64, 0]
					args = ["terminus"]
				}
			}
		`,
		"trains.hcl": `
			train "t1" {
				world       = "main"
				at          = [0, 64, 0]
				direction   = "east"
				destination = "terminus"
			}
		`,
		"notes.txt": "not a layout",
	}
	dir := testutil.WriteFiles(t, files)

	logBuffer := &testutil.SafeBuffer{}
	testApp, err := app.NewApp(logBuffer, &app.Config{LayoutPath: dir, LogLevel: "debug"}, hcl.NewLoader())
	require.NoError(t, err)
	t.Cleanup(func() { _ = testApp.Close() })

	// --- Act ---
	err = testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err, "app.Run() returned an unexpected error")

	model := testApp.Model()
	require.Len(t, model.Worlds, 1, "world blocks from different files are merged")
	require.Len(t, model.Worlds[0].Tracks, 1)
	require.Len(t, model.Worlds[0].Signs, 1)

	trains := testApp.Fleet().Trains()
	require.Len(t, trains, 1)
	require.Equal(t, []string{"terminus"}, trains[0].Arrivals())
	require.Contains(t, logBuffer.String(), "Train arrived")
}
