package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"dlc-rules/rule"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type discard struct{}

func (discard) Write(rule.Record) error { return nil }

func TestCollector_ObservesLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"cn":              {Data: []byte("# comment\nbaidu.com\ninclude:ads\nkeyword:qq\nregexp:^x$\nfoo_1:bar\n")},
		"ads":             {Data: []byte("full:ad.cn @ads\n")},
		"geolocation-!cn": {Data: []byte("google.com\n")},
	}

	c := NewCollector()
	if err := rule.NewLoader(fsys, rule.DefaultTable(), discard{}, rule.WithObserver(c)).Run(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if got := testutil.ToFloat64(c.files); got != 3 {
		t.Fatalf("files=%v, want 3", got)
	}
	// "# comment" 与三个文件末尾的空行
	if got := testutil.ToFloat64(c.skipped); got != 4 {
		t.Fatalf("skipped=%v, want 4", got)
	}
	checks := []struct {
		action, command string
		want            float64
	}{
		{"direct", "domain", 1},
		{"direct", "include", 1},
		{"direct", "other", 3},
		{"block", "full", 1},
		{"forward", "domain", 1},
	}
	// 未知命令不产生新的标签值
	if n := testutil.CollectAndCount(c.records); n != len(checks) {
		t.Fatalf("series=%d, want %d", n, len(checks))
	}
	for _, ch := range checks {
		if got := testutil.ToFloat64(c.records.WithLabelValues(ch.action, ch.command)); got != ch.want {
			t.Fatalf("records{%s,%s}=%v, want %v", ch.action, ch.command, got, ch.want)
		}
	}
}

func TestCollector_WriteTextfile(t *testing.T) {
	c := NewCollector()
	c.MarkSuccess(time.Unix(1700000000, 0))

	if err := c.WriteTextfile(""); err != nil {
		t.Fatalf("empty filename should be skipped, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "dlc_rules.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "dlc_rules_last_success_timestamp_seconds 1.7e+09") {
		t.Fatalf("textfile missing timestamp:\n%s", data)
	}

	n, err := testutil.GatherAndCount(c.Registry(), "dlc_rules_files_loaded_total")
	if err != nil || n != 1 {
		t.Fatalf("GatherAndCount=%d, err=%v", n, err)
	}
}
