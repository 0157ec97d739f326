package filesystem

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/rios0rios0/rawfetch/internal/domain/entities"
	"github.com/rios0rios0/rawfetch/internal/domain/repositories"
)

const directoryPermissions = 0o755

// AferoStorageRepository implements repositories.StorageRepository on top of
// an afero filesystem.
type AferoStorageRepository struct {
	fs afero.Fs
}

// NewAferoStorageRepository creates a storage repository on the OS filesystem.
func NewAferoStorageRepository() repositories.StorageRepository {
	return NewAferoStorageRepositoryWithFs(afero.NewOsFs())
}

// NewAferoStorageRepositoryWithFs creates a storage repository on fs.
func NewAferoStorageRepositoryWithFs(fs afero.Fs) *AferoStorageRepository {
	return &AferoStorageRepository{fs: fs}
}

func (r *AferoStorageRepository) Create(path string) (io.WriteCloser, error) {
	if err := r.fs.MkdirAll(filepath.Dir(path), directoryPermissions); err != nil {
		return nil, &entities.FilesystemError{Op: "create directory for", Path: path, Err: err}
	}

	file, err := r.fs.Create(path)
	if err != nil {
		return nil, &entities.FilesystemError{Op: "create", Path: path, Err: err}
	}
	return file, nil
}

func (r *AferoStorageRepository) Chmod(path string, mode os.FileMode) error {
	if err := r.fs.Chmod(path, mode); err != nil {
		return &entities.FilesystemError{Op: "chmod", Path: path, Err: err}
	}
	return nil
}
