package utils

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

type tarEntry struct {
	name    string
	content string
	dir     bool
}

func buildArchive(t *testing.T, entries []tarEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0644, Size: int64(len(e.content)), Typeflag: tar.TypeReg}
		if e.dir {
			hdr = &tar.Header{Name: e.name, Mode: 0755, Typeflag: tar.TypeDir}
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header: %v", err)
		}
		if !e.dir {
			if _, err := tw.Write([]byte(e.content)); err != nil {
				t.Fatalf("write body: %v", err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return buf.Bytes()
}

func writeArchive(t *testing.T, entries []tarEntry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dlc.tar.gz")
	if err := os.WriteFile(path, buildArchive(t, entries), 0644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	return path
}

func TestExtractData(t *testing.T) {
	archive := writeArchive(t, []tarEntry{
		{name: "domain-list-community-master/", dir: true},
		{name: "domain-list-community-master/README.md", content: "readme"},
		{name: "domain-list-community-master/data/", dir: true},
		{name: "domain-list-community-master/data/cn", content: "include:baidu\n"},
		{name: "domain-list-community-master/data/baidu", content: "baidu.com\n"},
		{name: "domain-list-community-master/main.go", content: "package main"},
	})
	dest := t.TempDir()

	n, err := ExtractData(archive, dest)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 2 {
		t.Fatalf("extracted=%d, want 2", n)
	}

	got, err := os.ReadFile(filepath.Join(dest, "cn"))
	if err != nil || string(got) != "include:baidu\n" {
		t.Fatalf("cn=%q, err=%v", got, err)
	}
	for _, name := range []string{"README.md", "main.go", "data"} {
		if FileExists(filepath.Join(dest, name)) {
			t.Fatalf("%s should not be extracted", name)
		}
	}
}

func TestExtractData_NoDataFiles(t *testing.T) {
	archive := writeArchive(t, []tarEntry{
		{name: "repo/README.md", content: "readme"},
	})
	if _, err := ExtractData(archive, t.TempDir()); err == nil {
		t.Fatalf("expected error for archive without data/")
	}
}

func TestExtractData_NotGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(path, []byte("not an archive"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ExtractData(path, t.TempDir()); err == nil {
		t.Fatalf("expected error for non-gzip input")
	}
}
