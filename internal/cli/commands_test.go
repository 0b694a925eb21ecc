package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vercheck-labs/vercheck/internal/cache"
	"github.com/vercheck-labs/vercheck/internal/software"
)

func TestRemove(t *testing.T) {
	h := newHarness(t)
	goEntry := software.Software{Name: "go", Executable: software.Static{Command: "go"}}
	h.seed(t, nodeEntry(h), goEntry)
	c := h.checks(t)
	c.Put("node", cache.Check{Installed: "1"})
	_ = c.Save()

	out, _, err := h.run(t, "", "remove", "node")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if out != "Removed node.\n" {
		t.Errorf("output = %q", out)
	}
	if list := h.list(t); len(list) != 1 || list[0] != goEntry {
		t.Errorf("catalog = %+v", list)
	}
	if _, ok := h.checks(t).Get("node"); ok {
		t.Error("cache entry not removed")
	}
}

func TestRemoveUnknownChangesNothing(t *testing.T) {
	h := newHarness(t)
	h.seed(t, nodeEntry(h))

	_, _, err := h.run(t, "", "remove", "node", "rust")
	if err == nil || err.Error() != "Software 'rust' does not exist." {
		t.Fatalf("error = %v", err)
	}
	if len(h.list(t)) != 1 {
		t.Error("catalog modified")
	}
}

func TestListEmpty(t *testing.T) {
	h := newHarness(t)
	out, _, err := h.run(t, "", "list")
	if err != nil {
		t.Fatal(err)
	}
	if out != "No software tracked yet.\n" {
		t.Errorf("output = %q", out)
	}
}

func TestListJSONIncludesCachedVersions(t *testing.T) {
	h := newHarness(t)
	h.seed(t, nodeEntry(h), software.Software{
		Name: "tool", Executable: software.Dynamic{Directory: "/opt", Regex: "tool-.*"},
	})
	c := h.checks(t)
	c.Put("node", cache.Check{Installed: "1.0.0", Latest: "2.3.4"})
	_ = c.Save()

	out, _, err := h.run(t, "", "list", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var entries []listEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if e := entries[0]; e.Status != "update-available" || e.Installed != "1.0.0" || e.Type != "static" {
		t.Errorf("node entry = %+v", e)
	}
	if e := entries[1]; e.Type != "dynamic" || e.Executable != "/opt/tool-.*" || e.Status != "" {
		t.Errorf("tool entry = %+v", e)
	}
}

func TestListTable(t *testing.T) {
	h := newHarness(t)
	h.seed(t, nodeEntry(h))
	out, _, err := h.run(t, "", "list", "--no-color")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "NAME") || !strings.HasPrefix(lines[1], "node") {
		t.Errorf("table:\n%s", out)
	}
}

func TestCheck(t *testing.T) {
	h := newHarness(t)
	broken := nodeEntry(h)
	broken.Name = "broken"
	broken.URL = h.srv.URL + "/down"
	h.seed(t, nodeEntry(h), broken)

	out, _, err := h.run(t, "", "check", "--json")
	if err == nil || err.Error() != "1 of 2 checks failed" {
		t.Fatalf("error = %v", err)
	}

	var results []checkResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if results[0].Status != "update-available" || results[0].Latest != "2.3.4" {
		t.Errorf("node result = %+v", results[0])
	}
	if results[1].Status != statusFailed || !strings.HasPrefix(results[1].Error, "latest: request to ") {
		t.Errorf("broken result = %+v", results[1])
	}

	checks := h.checks(t)
	if got, _ := checks.Get("broken"); got.Error == "" || got.Installed != "1.0.0" {
		t.Errorf("cached failure = %+v", got)
	}
}

func TestCheckNamedAndUnknown(t *testing.T) {
	h := newHarness(t)
	h.seed(t, nodeEntry(h))

	out, _, err := h.run(t, "", "check", "node", "--no-color")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "update-available") {
		t.Errorf("output:\n%s", out)
	}

	_, _, err = h.run(t, "", "check", "rust")
	if err == nil || err.Error() != "Software 'rust' does not exist." {
		t.Errorf("error = %v", err)
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	out, _, err := h.run(t, "", "version", "--short")
	if err != nil || out != "test\n" {
		t.Errorf("version --short = %q, %v", out, err)
	}
	out, _, _ = h.run(t, "", "version")
	if out != "vercheck version test (commit: abc123, built: today)\n" {
		t.Errorf("version = %q", out)
	}
}

func TestConfigSetGet(t *testing.T) {
	h := newHarness(t)
	if _, _, err := h.run(t, "", "config", "set", "check_timeout", "5s"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, _, err := h.run(t, "", "config", "get", "check_timeout")
	if err != nil || out != "5s\n" {
		t.Errorf("config get = %q, %v", out, err)
	}
	if _, _, err := h.run(t, "", "config", "set", "colour", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	out, _, _ = h.run(t, "", "config", "list")
	if !strings.Contains(out, "check_timeout") || !strings.Contains(out, "5s") {
		t.Errorf("config list:\n%s", out)
	}
}
