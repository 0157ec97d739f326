package repositories

import (
	"io"
	"os"
)

// StorageRepository abstracts the local filesystem that receives fetched
// files. Implementations return an *entities.FilesystemError on failure.
type StorageRepository interface {
	// Create opens path for writing, truncating an existing file and
	// creating missing parent directories.
	Create(path string) (io.WriteCloser, error)

	// Chmod applies mode to path.
	Chmod(path string, mode os.FileMode) error
}
