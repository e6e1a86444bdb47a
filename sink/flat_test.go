package sink

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"dlc-rules/rule"
)

func TestFlat_WriteOrderAndDuplicates(t *testing.T) {
	var buf bytes.Buffer
	f := NewFlat(&buf)
	for _, rec := range []rule.Record{
		{Domain: "dup.com", Action: rule.ActionDirect},
		{Domain: "ads.example", Action: rule.ActionBlock},
		{Domain: "dup.com", Action: rule.ActionForward},
	} {
		if err := f.Write(rec); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	want := "direct\tdup.com\nblock\tads.example\nforward\tdup.com\n"
	if buf.String() != want {
		t.Fatalf("output=%q, want %q", buf.String(), want)
	}
}

func TestFlat_RoundTripFromLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"cn":              {Data: []byte("full:dup.com\ninclude:ads\nbaidu.com\n")},
		"ads":             {Data: []byte("ad.cn @ads\n")},
		"geolocation-!cn": {Data: []byte("domain:dup.com\ngoogle.com @cn\n")},
	}

	var buf bytes.Buffer
	flat := NewFlat(&buf)
	var emitted recorder
	loader := rule.NewLoader(fsys, rule.DefaultTable(), teeSink{flat, &emitted})
	if err := loader.Run(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := flat.Commit(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := ReadFlat(&buf)
	if err != nil {
		t.Fatalf("ReadFlat unexpected err: %v", err)
	}
	if !reflect.DeepEqual(got, emitted.records) {
		t.Fatalf("round trip=%v, want %v", got, emitted.records)
	}

	want := []rule.Record{
		{Domain: "dup.com", Action: rule.ActionDirect},
		{Domain: "ad.cn", Action: rule.ActionBlock},
		{Domain: "baidu.com", Action: rule.ActionDirect},
		{Domain: "dup.com", Action: rule.ActionForward},
		{Domain: "google.com", Action: rule.ActionDirect},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("records=%v, want %v", got, want)
	}
}

func TestReadFlat_SkipsCommentsAndBlank(t *testing.T) {
	got, err := ReadFlat(strings.NewReader("# header\n\n  \nblock\tads.com\r\n"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []rule.Record{{Domain: "ads.com", Action: rule.ActionBlock}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("records=%v, want %v", got, want)
	}
}

func TestReadFlat_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing field", "direct\n", "第 1 行格式无效"},
		{"extra field", "direct\ta.com\tb\n", "第 1 行格式无效"},
		{"unknown action", "ok\ta.com\n", "第 1 行动作无效"},
		{"bad action", "# c\nproxy\ta.com\n", "第 2 行动作无效"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFlat(strings.NewReader(tt.in))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err=%q, want contains %q", err.Error(), tt.want)
			}
		})
	}
}

type recorder struct {
	records []rule.Record
}

func (r *recorder) Write(rec rule.Record) error {
	r.records = append(r.records, rec)
	return nil
}

type teeSink []rule.Sink

func (t teeSink) Write(rec rule.Record) error {
	for _, s := range t {
		if err := s.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
