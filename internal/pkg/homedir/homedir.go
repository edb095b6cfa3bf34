// Package homedir resolves user-relative paths under ~/.byteagent.
package homedir

import (
	"os"
	"path/filepath"
	"strings"
)

// AppDirName is the per-user state directory under $HOME.
const AppDirName = ".byteagent"

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// AppPath joins elems under ~/.byteagent.
func AppPath(elems ...string) string {
	return filepath.Join(append([]string{UserHomeDir(), AppDirName}, elems...)...)
}

// Expand resolves a leading "~/" and cleans the result. Relative paths without
// a tilde are left relative.
func Expand(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}
