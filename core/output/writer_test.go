package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_CreatesDirectory(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "nested", "out")

	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.OutputDir != dir {
		t.Errorf("expected output dir %q, got %q", dir, w.OutputDir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("expected directory to exist: %v", err)
	}
}

func TestWriteOnly(t *testing.T) {
	t.Parallel()
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path, err := w.WriteOnly("https://www.instagram.com/reel/C1a-B_2/?igsh=x", []byte(`{"ok":true}`), ".json")
	if err != nil {
		t.Fatalf("WriteOnly: %v", err)
	}
	if want := filepath.Join(w.OutputDir, "www_instagram_com_reel_C1a-B_2.json"); path != want {
		t.Errorf("expected %q, got %q", want, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("unexpected content %q", data)
	}
}

func TestWriteAll(t *testing.T) {
	t.Parallel()
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		url  string
		want string
	}{
		{"https://www.instagram.com/reel/AAA", filepath.Join("reel", "AAA.md")},
		{"https://www.instagram.com/p/BBB/", filepath.Join("p", "BBB.md")},
		{"https://www.instagram.com/", "index.md"},
		{"https://www.instagram.com/../../etc/passwd", filepath.Join("__", "__", "etc", "passwd.md")},
	}
	for _, tt := range tests {
		path, err := w.WriteAll(tt.url, []byte("# post"), ".md")
		if err != nil {
			t.Fatalf("WriteAll(%q): %v", tt.url, err)
		}
		if want := filepath.Join(w.OutputDir, tt.want); path != want {
			t.Errorf("WriteAll(%q) = %q, want %q", tt.url, path, want)
		}
		if !strings.HasPrefix(path, w.OutputDir) {
			t.Errorf("path %q escaped output dir", path)
		}
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"www.instagram.com": "www_instagram_com",
		"C1a-B_2":           "C1a-B_2",
		"..":                "__",
		"café":              "caf_",
	}
	for in, want := range tests {
		if got := sanitize(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}
