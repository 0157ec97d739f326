package repositories

import "io"

// ProgressRepository reports per-file download progress.
type ProgressRepository interface {
	// Track wraps dst so that writes advance a progress indicator named
	// name. total is -1 when unknown. The returned func marks completion.
	Track(name string, total int64, dst io.Writer) (io.Writer, func())

	// Close releases every indicator once the batch is over.
	Close() error
}
