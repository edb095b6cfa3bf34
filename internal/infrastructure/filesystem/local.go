// Package filesystem implements the workspace filesystem collaborator on the
// local disk. Every name is resolved against the workspace root and rejected
// when it would escape it.
package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// Local is a workspace rooted at a directory on disk.
type Local struct {
	root string
}

// NewLocal returns a workspace rooted at root. The directory is not created.
func NewLocal(root string) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	return &Local{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute workspace directory.
func (l *Local) Root() string {
	return l.root
}

// Resolve maps a workspace-relative name to an absolute path.
func (l *Local) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty path")
	}
	var full string
	if filepath.IsAbs(name) {
		full = filepath.Clean(name)
	} else {
		full = filepath.Join(l.root, filepath.FromSlash(name))
	}
	rel, err := filepath.Rel(l.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", domain.ErrOutsideWorkspace, name)
	}
	return full, nil
}

func (l *Local) Exists(name string) bool {
	path, err := l.Resolve(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (l *Local) IsDir(name string) bool {
	path, err := l.Resolve(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Move renames src to dst. When dst is an existing directory, src is moved
// into it.
func (l *Local) Move(src, dst string) error {
	from, to, err := l.pair(src, dst)
	if err != nil {
		return err
	}
	if err := os.Rename(from, to); err == nil {
		return nil
	} else if !isCrossDevice(err) {
		return err
	}

	info, err := os.Stat(from)
	if err != nil {
		return err
	}
	if info.IsDir() {
		if err := copyTree(from, to); err != nil {
			return err
		}
		return os.RemoveAll(from)
	}
	if err := copyFile(from, to, info.Mode()); err != nil {
		return err
	}
	return os.Remove(from)
}

// Copy duplicates a file, keeping its mode. When dst is an existing directory
// the copy is placed inside it.
func (l *Local) Copy(src, dst string) error {
	from, to, err := l.pair(src, dst)
	if err != nil {
		return err
	}
	info, err := os.Stat(from)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}
	if err := copyFile(from, to, info.Mode()); err != nil {
		return err
	}
	return os.Chtimes(to, info.ModTime(), info.ModTime())
}

func (l *Local) Remove(name string) error {
	path, err := l.Resolve(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (l *Local) RemoveTree(name string) error {
	path, err := l.Resolve(name)
	if err != nil {
		return err
	}
	if path == l.root {
		return fmt.Errorf("refusing to remove the workspace root")
	}
	return os.RemoveAll(path)
}

func (l *Local) Mkdir(name string) error {
	path, err := l.Resolve(name)
	if err != nil {
		return err
	}
	return os.MkdirAll(path, domain.DirectoryPermissions)
}

// ListTopLevel returns the entry names directly under dir, sorted.
func (l *Local) ListTopLevel(dir string) ([]string, error) {
	path := l.root
	if strings.TrimSpace(dir) != "" {
		var err error
		if path, err = l.Resolve(dir); err != nil {
			return nil, err
		}
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (l *Local) ReadText(name string) (string, error) {
	path, err := l.Resolve(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (l *Local) WriteText(name, text string) error {
	path, err := l.Resolve(name)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), domain.FilePermissions)
}

// AppendLine writes text followed by a newline at the end of the file.
func (l *Local) AppendLine(name, text string) error {
	path, err := l.Resolve(name)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, domain.FilePermissions)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(text + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (l *Local) ReplaceAll(name, old, new string) error {
	content, err := l.ReadText(name)
	if err != nil {
		return err
	}
	return l.WriteText(name, strings.ReplaceAll(content, old, new))
}

// pair resolves a source and destination, descending into dst when it is an
// existing directory.
func (l *Local) pair(src, dst string) (string, string, error) {
	from, err := l.Resolve(src)
	if err != nil {
		return "", "", err
	}
	to, err := l.Resolve(dst)
	if err != nil {
		return "", "", err
	}
	if info, err := os.Stat(to); err == nil && info.IsDir() {
		to = filepath.Join(to, filepath.Base(from))
	}
	return from, to, nil
}

func copyFile(from, to string, mode os.FileMode) error {
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyTree(from, to string) error {
	return filepath.WalkDir(from, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(from, path)
		if err != nil {
			return err
		}
		target := filepath.Join(to, rel)
		if d.IsDir() {
			return os.MkdirAll(target, domain.DirectoryPermissions)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	return errors.As(err, &linkErr) && strings.Contains(linkErr.Err.Error(), "cross-device")
}

var _ ports.FileSystem = (*Local)(nil)
