//go:build integration

package integration_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// testEnv holds the sandbox for one test.
type testEnv struct {
	HomeDir  string // VERCHECK_HOME
	ToolsDir string // directory holding fake executables
	Catalog  string // catalog file path
}

// setupTestEnv creates isolated temp directories and points vercheck at them.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("integration tests use POSIX shell scripts")
	}

	env := &testEnv{
		HomeDir:  t.TempDir(),
		ToolsDir: t.TempDir(),
	}
	env.Catalog = filepath.Join(env.HomeDir, "catalog.yaml")
	t.Setenv("VERCHECK_HOME", env.HomeDir)
	t.Setenv("VERCHECK_CATALOG", env.Catalog)
	return env
}

// writeScript creates an executable shell script in dir.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("writing script %s: %v", name, err)
	}
	return path
}

// startSite serves body at /version.
func startSite(t *testing.T, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/version" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/version"
}

func ptr(s string) *string { return &s }
