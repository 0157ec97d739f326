//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"io"
	"sync"

	"github.com/rios0rios0/rawfetch/internal/domain/repositories"
)

// SpyProgressRepository implements repositories.ProgressRepository and
// records the names of tracked files. It is safe for concurrent use.
type SpyProgressRepository struct {
	mu      sync.Mutex
	tracked []string
	done    int
	closed  bool
}

var _ repositories.ProgressRepository = (*SpyProgressRepository)(nil)

func (s *SpyProgressRepository) Track(name string, _ int64, dst io.Writer) (io.Writer, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracked = append(s.tracked, name)
	return dst, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.done++
	}
}

func (s *SpyProgressRepository) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Tracked returns the tracked names in call order.
func (s *SpyProgressRepository) Tracked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tracked...)
}

// Done returns how many tracked files were marked complete.
func (s *SpyProgressRepository) Done() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Closed reports whether Close was called.
func (s *SpyProgressRepository) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
