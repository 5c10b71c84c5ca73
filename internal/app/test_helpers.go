package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/railpath/internal/hcl"
	"github.com/specialistvlad/railpath/internal/testutil"
	"github.com/stretchr/testify/require"
)

// SetupAppTest writes layout to a temporary directory and creates an app
// for it with debug logging captured in the returned buffer. mutate, when
// not nil, adjusts the config before the app is built.
func SetupAppTest(t *testing.T, layout string, mutate func(*Config), opts ...Option) (*App, *testutil.SafeBuffer) {
	t.Helper()

	dir := testutil.WriteFiles(t, map[string]string{"layout.hcl": layout})
	cfg := &Config{LayoutPath: dir, LogLevel: "debug", LogFormat: "text"}
	if mutate != nil {
		mutate(cfg)
	}

	logBuffer := &testutil.SafeBuffer{}
	testApp, err := NewApp(logBuffer, cfg, hcl.NewLoader(), opts...)
	t.Cleanup(func() {
		if os.Getenv("RAILPATH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = testApp.Close() })

	return testApp, logBuffer
}
