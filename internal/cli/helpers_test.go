package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/viper"

	"github.com/vercheck-labs/vercheck/internal/cache"
	"github.com/vercheck-labs/vercheck/internal/catalog"
	"github.com/vercheck-labs/vercheck/internal/resolve"
	"github.com/vercheck-labs/vercheck/internal/software"
)

// echoRunner prints the command line it was given, so an entry's Args
// double as the installed version output.
type echoRunner struct {
	calls atomic.Int32
}

func (r *echoRunner) Run(_ context.Context, c resolve.Command) (resolve.Output, error) {
	r.calls.Add(1)
	return resolve.Output{Stdout: c.Line + "\n"}, nil
}

type harness struct {
	app    *app
	store  *catalog.FileStore
	runner *echoRunner
	dir    string
	srv    *httptest.Server
}

// newHarness isolates config, catalog and cache in a temp dir. The test
// server answers /latest with "latest: v2.3.4" and everything else with 500.
func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("VERCHECK_HOME", dir)
	t.Setenv("VERCHECK_CATALOG", "")
	viper.Reset()
	t.Cleanup(viper.Reset)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/latest" {
			w.Write([]byte("latest: v2.3.4"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	store := catalog.NewFileStore(filepath.Join(dir, "catalog.yaml"))
	runner := &echoRunner{}
	a := &app{
		version:    "test",
		commit:     "abc123",
		date:       "today",
		store:      func() catalog.Store { return store },
		cachePath:  func() string { return filepath.Join(dir, "checks.json") },
		runner:     runner,
		httpClient: srv.Client(),
	}
	return &harness{app: a, store: store, runner: runner, dir: dir, srv: srv}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(h.app)
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func (h *harness) seed(t *testing.T, list ...software.Software) {
	t.Helper()
	if err := h.store.Replace(list); err != nil {
		t.Fatalf("seeding catalog: %v", err)
	}
}

func (h *harness) list(t *testing.T) []software.Software {
	t.Helper()
	list, err := h.store.List()
	if err != nil {
		t.Fatalf("reading catalog: %v", err)
	}
	return list
}

func (h *harness) catalogBytes(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(h.store.Path())
	if err != nil {
		t.Fatalf("reading catalog file: %v", err)
	}
	return data
}

func (h *harness) checks(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Load(filepath.Join(h.dir, "checks.json"))
	if err != nil {
		t.Fatalf("loading cache: %v", err)
	}
	return c
}

func (h *harness) latestURL() string { return h.srv.URL + "/latest" }

func nodeEntry(h *harness) software.Software {
	return software.Software{
		Name:           "node",
		Executable:     software.Static{Command: "node"},
		Args:           "v1.0.0",
		InstalledRegex: "v(.*)",
		URL:            h.latestURL(),
		LatestRegex:    "latest: v(.*)",
	}
}
