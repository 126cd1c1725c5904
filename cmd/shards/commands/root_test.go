package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmylchreest/shardscout/internal/cli"
	"github.com/jmylchreest/shardscout/internal/version"
)

const resultsPage = `<html><body>
<div class="shard"><h3><a href="/github/kemalcr/kemal">kemalcr/kemal</a></h3>
  <ul class="stats"><li>3,612 stars</li></ul></div>
<div class="shard"><h3><a href="/github/a/b">a/b</a></h3></div>
</body></html>`

func setup(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultsPage)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("SHARDSCOUT_SHARDS_URL", srv.URL)
}

func run(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	code = cli.Execute(cmd)
	return out.String(), errOut.String(), code
}

func TestShards_SearchJSON(t *testing.T) {
	setup(t)

	stdout, stderr, code := run(t, "kemal")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}

	var got []map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, stdout)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0]["name"] != "kemalcr/kemal" || got[0]["stars"] != float64(3612) {
		t.Errorf("unexpected first record: %v", got[0])
	}
}

func TestShards_LimitAndMarkdown(t *testing.T) {
	setup(t)

	stdout, stderr, code := run(t, "--limit", "1", "--format", "markdown", "kemal")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, "kemalcr/kemal") {
		t.Errorf("expected first record in table:\n%s", stdout)
	}
	if strings.Contains(stdout, "a/b") {
		t.Errorf("limit not applied:\n%s", stdout)
	}
}

func TestShards_MissingQuery(t *testing.T) {
	setup(t)

	_, stderr, code := run(t)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr, "Error: ") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestShards_Version(t *testing.T) {
	setup(t)

	stdout, _, code := run(t, "--version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, version.String()) {
		t.Errorf("version output = %q", stdout)
	}
}
