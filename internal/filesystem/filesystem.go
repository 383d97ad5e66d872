package filesystem

import (
	"errors"
	"os"
	"path/filepath"
)

type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, content []byte) error
	Exists(name string) (bool, error)
}

// DefaultFileSystem is the real file system. WriteFile creates missing
// parent directories.
type DefaultFileSystem struct{}

func (fs DefaultFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (fs DefaultFileSystem) WriteFile(name string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	return os.WriteFile(name, content, 0644)
}

func (fs DefaultFileSystem) Exists(name string) (bool, error) {
	_, err := os.Stat(name)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
