package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/rawfetch/internal/infrastructure/repositories/filesystem"
	ghRepo "github.com/rios0rios0/rawfetch/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/rawfetch/internal/infrastructure/repositories/output"
	"github.com/rios0rios0/rawfetch/internal/infrastructure/repositories/progress"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	providers := []interface{}{
		ghRepo.NewGitHubContentRepository,
		filesystem.NewAferoStorageRepository,
		progress.NewPoolProgressRepository,
		output.NewOutputRepository,
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}

	return nil
}
