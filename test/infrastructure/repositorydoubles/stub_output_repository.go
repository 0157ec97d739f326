//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/rawfetch/internal/domain/repositories"
)

// SpyOutputRepository implements repositories.OutputRepository and records
// every published output and failure.
type SpyOutputRepository struct {
	Outputs      map[string]string
	Failures     []string
	SetOutputErr error
}

var _ repositories.OutputRepository = (*SpyOutputRepository)(nil)

func (s *SpyOutputRepository) SetOutput(name, value string) error {
	if s.SetOutputErr != nil {
		return s.SetOutputErr
	}
	if s.Outputs == nil {
		s.Outputs = make(map[string]string)
	}
	s.Outputs[name] = value
	return nil
}

func (s *SpyOutputRepository) Fail(message string) {
	s.Failures = append(s.Failures, message)
}
