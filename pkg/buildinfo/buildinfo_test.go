package buildinfo

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGet_ReturnsCorrectDefaults(t *testing.T) {
	info := Get("zoomchat")

	if info.Name != "zoomchat" {
		t.Errorf("expected Name='zoomchat', got %q", info.Name)
	}
	if info.Version != "dev" {
		t.Errorf("expected Version='dev', got %q", info.Version)
	}
	if info.Commit != "unknown" {
		t.Errorf("expected Commit='unknown', got %q", info.Commit)
	}
	if info.BuildTime != "unknown" {
		t.Errorf("expected BuildTime='unknown', got %q", info.BuildTime)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("expected GoVersion=%q, got %q", runtime.Version(), info.GoVersion)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("unexpected Platform %q", info.Platform)
	}
}

func TestGet_ReflectsLdflags(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version = "v0.3.0"
	Commit = "b806fe7"

	info := Get("zoomchat")
	if info.Version != "v0.3.0" || info.Commit != "b806fe7" {
		t.Errorf("Get did not pick up overridden vars: %+v", info)
	}
	if got := String(); got != "v0.3.0 (b806fe7, unknown)" {
		t.Errorf("String() = %q", got)
	}
}

func TestInfo_JSON(t *testing.T) {
	data, err := json.Marshal(Get("zoomchat"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"name", "version", "commit", "build_time", "go_version", "platform"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing JSON key %q", key)
		}
	}
}

func TestCollector(t *testing.T) {
	c := Collector()

	if got := testutil.ToFloat64(c); got != 1 {
		t.Errorf("build info gauge = %v, want 1", got)
	}

	expected := `
# HELP zoomchat_build_info Build information of the zoomchat binary
# TYPE zoomchat_build_info gauge
zoomchat_build_info{commit="` + Commit + `",go_version="` + runtime.Version() + `",version="` + Version + `"} 1
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected collector output: %v", err)
	}
}
