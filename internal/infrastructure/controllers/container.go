package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/rawfetch/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewFetchController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(fetchController *FetchController) *[]entities.Controller {
	return &[]entities.Controller{
		fetchController,
	}
}
