package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(func() Environment {
		return SystemEnvironment{}
	})
}
