// Package archive implements the zip archive collaborator.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// PathResolver maps workspace-relative names to absolute paths.
type PathResolver interface {
	Resolve(name string) (string, error)
}

// ZipArchive reads and writes deflate zip files inside the workspace.
type ZipArchive struct {
	paths PathResolver
}

func NewZipArchive(paths PathResolver) *ZipArchive {
	return &ZipArchive{paths: paths}
}

// CreateZip writes every entry's source file under its stored name. The
// archive is assembled in memory and only written once all sources are read,
// so a failed read leaves no partial archive behind.
func (z *ZipArchive) CreateZip(dest string, entries []domain.ArchiveEntry) error {
	target, err := z.paths.Resolve(dest)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, entry := range entries {
		if err := z.addEntry(w, entry); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return os.WriteFile(target, buf.Bytes(), domain.FilePermissions)
}

func (z *ZipArchive) addEntry(w *zip.Writer, entry domain.ArchiveEntry) error {
	source, err := z.paths.Resolve(entry.Source)
	if err != nil {
		return err
	}
	f, err := os.Open(source)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", entry.Source)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = entry.StoredName
	header.Method = zip.Deflate

	dst, err := w.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, f)
	return err
}

// ListEntries returns the stored names in archive order.
func (z *ZipArchive) ListEntries(archive string) ([]string, error) {
	r, err := z.open(archive)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// ReadEntry returns the raw bytes of one stored entry.
func (z *ZipArchive) ReadEntry(archive, name string) ([]byte, error) {
	r, err := z.open(archive)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, &domain.NotFoundError{What: "archive entry", Name: name}
}

func (z *ZipArchive) open(archive string) (*zip.ReadCloser, error) {
	path, err := z.paths.Resolve(archive)
	if err != nil {
		return nil, err
	}
	return zip.OpenReader(path)
}

var _ ports.Archive = (*ZipArchive)(nil)
