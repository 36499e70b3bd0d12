package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RevCBH/buildlight/internal/jenkins"
)

// jenkinsServer serves lastCompletedBuild payloads keyed by job path
// (e.g. "/job/a"). Unknown jobs get a 404.
func jenkinsServer(t *testing.T, builds map[string]jenkins.Build) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		job := strings.TrimSuffix(r.URL.Path, jenkins.StatusPath)
		build, ok := builds[job]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(build)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// isolate runs the test from an empty directory with no env overrides
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, v := range []string{
		"BUILDLIGHT_INTERVAL",
		"BUILDLIGHT_JOB_URL",
		"BUILDLIGHT_FETCH_TIMEOUT",
		"BUILDLIGHT_SLACK_WEBHOOK",
		"BUILDLIGHT_WEBHOOK_URL",
		"BUILDLIGHT_LOG_LEVEL",
	} {
		t.Setenv(v, "")
	}
}

// runApp executes the CLI with args and returns stdout
func runApp(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	app.SetOutput(out, new(bytes.Buffer))
	app.SetArgs(args)
	err := app.Execute()
	return out.String(), err
}
