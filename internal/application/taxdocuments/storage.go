package taxdocuments

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Storage keeps uploaded file bodies. Paths it returns are what gets stored
// in tax_documents.file_path.
type Storage interface {
	Save(name string, src io.Reader) (path string, size int64, err error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// LocalStorage writes files under Dir on the local disk.
type LocalStorage struct {
	Dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{Dir: dir}, nil
}

func (s *LocalStorage) Save(name string, src io.Reader) (string, int64, error) {
	path := filepath.Join(s.Dir, filepath.Base(name))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, err
	}
	return path, n, nil
}

func (s *LocalStorage) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrFileMissing
	}
	return f, err
}

// Remove treats an already missing file as removed.
func (s *LocalStorage) Remove(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
