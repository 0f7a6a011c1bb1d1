package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/depsolve/pkg/feed"
)

// execute runs the root command with an isolated config and cache location.
// It returns what the command wrote to stdout and to the status stream.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DEPSOLVE_CACHE_DIR", t.TempDir())

	var out, status bytes.Buffer
	prev := statusOut
	statusOut = &status
	t.Cleanup(func() { statusOut = prev })

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), status.String(), err
}

// feedServer serves web -> log listings in the HTTP feed layout.
func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	listings := map[string]feed.Listing{
		"web": {ID: "web", Versions: []feed.ListingVersion{
			{Version: "1.0.0", Dependencies: []feed.ListingDependency{{ID: "log", Range: "1.0"}}},
		}},
		"log": {ID: "log", Versions: []feed.ListingVersion{{Version: "1.0.0"}, {Version: "1.2.0"}}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), "/index.json")
		l, ok := listings[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(l)
	}))
	t.Cleanup(srv.Close)
	return srv
}
