package homedir

import (
	"path/filepath"
	"testing"
)

func TestExpand(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", "/home/tester"},
		{"~/Desktop", "/home/tester/Desktop"},
		{"/tmp/../tmp/work", "/tmp/work"},
		{"relative/dir", "relative/dir"},
	}
	for _, tt := range tests {
		if got := Expand(tt.in); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAppPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	want := filepath.Join("/home/tester", ".byteagent", "history.db")
	if got := AppPath("history.db"); got != want {
		t.Fatalf("AppPath = %q, want %q", got, want)
	}
}
