package main

import (
	"errors"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/rawfetch/internal"
	"github.com/rios0rios0/rawfetch/internal/infrastructure/controllers"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "rawfetch",
		Short: "Parallel file fetcher for GitHub repositories",
		Long: `Fetch individual files from GitHub repositories over HTTPS, in parallel,
and report their size, SHA-256 and download time as JSON.

Usage modes:
  rawfetch fetch owner/repo@v1.2.0:scripts/install.sh=>bin/install.sh=>755
  rawfetch fetch --repo owner/repo --ref main README.md LICENSE
  rawfetch fetch          Read every input from INPUT_* variables (GitHub Actions)`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Shared by every subcommand
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to settings file (default: auto-detect)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE: func(command *cobra.Command, arguments []string) error {
				return controller.Execute(command, arguments)
			},
		}

		controller.AddFlags(subCmd)
		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	appContext := injectAppContext()
	cobraRoot := buildRootCommand()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		if !errors.Is(err, controllers.ErrRunFailed) {
			logger.Errorf("Error executing 'rawfetch': %s", err)
		}
		os.Exit(1)
	}
}
