package migrator

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// Entry represents a directory listing item
type Entry struct {
	Name  string
	IsDir bool
}

// FileSystem represents the storage boundary used by the migrator
type FileSystem interface {
	Exists(ctx context.Context, URL string) (bool, error)
	IsDirectory(ctx context.Context, URL string) (bool, error)
	CreateDirectory(ctx context.Context, URL string) error
	WriteFile(ctx context.Context, URL string, content []byte) error
	ReadFile(ctx context.Context, URL string) ([]byte, error)
	List(ctx context.Context, URL string) ([]Entry, error)
}

type afsFileSystem struct {
	fs afs.Service
}

func (s *afsFileSystem) Exists(ctx context.Context, URL string) (bool, error) {
	return s.fs.Exists(ctx, URL)
}

func (s *afsFileSystem) IsDirectory(ctx context.Context, URL string) (bool, error) {
	object, err := s.fs.Object(ctx, URL)
	if err != nil {
		return false, err
	}
	return object.IsDir(), nil
}

func (s *afsFileSystem) CreateDirectory(ctx context.Context, URL string) error {
	return s.fs.Create(ctx, URL, file.DefaultDirOsMode, true)
}

func (s *afsFileSystem) WriteFile(ctx context.Context, URL string, content []byte) error {
	return s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(content))
}

func (s *afsFileSystem) ReadFile(ctx context.Context, URL string) ([]byte, error) {
	return s.fs.DownloadWithURL(ctx, URL)
}

// List returns direct children of URL
func (s *afsFileSystem) List(ctx context.Context, URL string) ([]Entry, error) {
	objects, err := s.fs.List(ctx, URL)
	if err != nil {
		return nil, err
	}
	_, name := splitURL(URL)
	var result []Entry
	for i, object := range objects {
		if i == 0 && object.IsDir() && object.Name() == name {
			// listing starts with the directory itself
			continue
		}
		result = append(result, Entry{Name: object.Name(), IsDir: object.IsDir()})
	}
	return result, nil
}

// NewFileSystem creates an afs backed file system supporting local paths and any registered afs scheme
func NewFileSystem() FileSystem {
	return &afsFileSystem{fs: afs.New()}
}

// splitURL returns parent location and the last path element
func splitURL(URL string) (string, string) {
	if !strings.Contains(URL, "://") {
		return filepath.Dir(URL), filepath.Base(URL)
	}
	URL = strings.TrimRight(URL, "/")
	idx := strings.LastIndex(URL, "/")
	if idx == -1 {
		return "", URL
	}
	return URL[:idx], URL[idx+1:]
}

// joinURL joins location with a child name, plain paths stay plain
func joinURL(parent, name string) string {
	if strings.Contains(parent, "://") {
		return url.Join(parent, name)
	}
	return filepath.Join(parent, name)
}
