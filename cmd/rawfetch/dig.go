package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/rawfetch/internal"
)

// injectAppContext builds the container and resolves the app holding the
// fetch controller. It panics on wiring errors.
func injectAppContext() *internal.AppInternal {
	container := dig.New()
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}
