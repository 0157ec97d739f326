package internal

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/rawfetch/internal/domain/commands"
	"github.com/rios0rios0/rawfetch/internal/domain/entities"
	"github.com/rios0rios0/rawfetch/internal/infrastructure/controllers"
	"github.com/rios0rios0/rawfetch/internal/infrastructure/repositories"
)

// RegisterProviders wires the content, storage, progress and output
// repositories, the environment, the fetch command and its controller.
func RegisterProviders(container *dig.Container) error {
	registrations := []func(*dig.Container) error{
		repositories.RegisterProviders,
		entities.RegisterProviders,
		commands.RegisterProviders,
		controllers.RegisterProviders,
	}
	for _, register := range registrations {
		if err := register(container); err != nil {
			return err
		}
	}

	return container.Provide(NewAppInternal)
}
