//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/rawfetch/internal/domain/commands"
	"github.com/rios0rios0/rawfetch/internal/domain/entities"
)

// StubFetchCommand is a stub implementation of commands.Fetch.
type StubFetchCommand struct {
	ExecuteCallCount int
	Result           entities.BatchResult
	LastSettings     *entities.Settings
}

var _ commands.Fetch = (*StubFetchCommand)(nil)

func (s *StubFetchCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) entities.BatchResult {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.Result
}
