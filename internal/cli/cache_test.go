package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirDefaultsToHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmp)

	// Populate the cache directory the way the file cache lays it out.
	dir := filepath.Join(tmp, appName, "ab")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "abcdef.bin"), []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	cmd := c.cacheClearCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "abcdef.bin")); !os.IsNotExist(err) {
		t.Error("expected cached entry to be removed")
	}
}

func TestCacheClearCommandEmpty(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear on empty cache: %v", err)
	}
}

func TestMeasureCache(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "1f")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, size := range map[string]int{"a.png": 100, "b.stl": 200} {
		if err := os.WriteFile(filepath.Join(sub, name), make([]byte, size), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	entries, total, err := measureCache(dir)
	if err != nil {
		t.Fatalf("measureCache: %v", err)
	}
	if entries != 2 || total != 300 {
		t.Errorf("measureCache = %d entries, %d bytes; want 2, 300", entries, total)
	}
}

func TestMeasureCacheMissingDir(t *testing.T) {
	entries, total, err := measureCache(filepath.Join(t.TempDir(), "never-created"))
	if err != nil {
		t.Fatalf("missing cache dir should not error, got %v", err)
	}
	if entries != 0 || total != 0 {
		t.Errorf("missing dir = %d entries, %d bytes; want zero", entries, total)
	}
}

func TestHumanBytes(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tc := range cases {
		if got := humanBytes(tc.n); got != tc.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
