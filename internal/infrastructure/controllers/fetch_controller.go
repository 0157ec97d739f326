package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rios0rios0/rawfetch/internal/domain/commands"
	"github.com/rios0rios0/rawfetch/internal/domain/entities"
	"github.com/rios0rios0/rawfetch/internal/domain/repositories"
)

const (
	// inputEnvPrefix matches how GitHub Actions exposes step inputs
	// (INPUT_GITHUB-TOKEN, INPUT_OUTPUT-DIRECTORY, ...).
	inputEnvPrefix = "INPUT"

	keyToken           = "github-token"
	keyRepository      = "repo"
	keyRef             = "ref"
	keyPre             = "pre"
	keyFiles           = "files"
	keyOutputDirectory = "output-directory"
	keyProgress        = "progress"

	metadataOutput = "metadata"
)

// ErrRunFailed is returned once a failure has already been reported through
// the output repository.
var ErrRunFailed = errors.New("fetch run failed")

// FetchController handles the "fetch" subcommand.
type FetchController struct {
	command commands.Fetch
	output  repositories.OutputRepository
}

// NewFetchController creates a new FetchController.
func NewFetchController(command commands.Fetch, output repositories.OutputRepository) *FetchController {
	return &FetchController{command: command, output: output}
}

// GetBind returns the Cobra command metadata for the fetch controller.
func (it *FetchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "fetch [spec...]",
		Short: "Fetch files from GitHub repositories",
		Long: `Fetch one or more files from raw.githubusercontent.com in parallel,
writing each one to disk and recording its size and SHA-256.

Each spec has the form:

  [org/repo[@ref]:]path[=>destination[=>octal-permissions]]

The repository and ref fall back to --repo and --ref. The destination
defaults to the source path, may start with "~" and may reference
environment variables as ${NAME}. Specs are read from the arguments or,
when none are given, from the newline-separated "files" input.

Inputs are also read from INPUT_<NAME> environment variables, so the
command can run directly as a GitHub Actions step.`,
	}
}

// AddFlags adds the fetch-specific flags to the given Cobra command.
func (it *FetchController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String(keyToken, "", "Token sent as 'Authorization: token <value>' (default: $GITHUB_TOKEN)")
	cmd.Flags().String(keyRepository, "", "Default repository as org/repo (default: $GITHUB_REPOSITORY)")
	cmd.Flags().String(keyRef, "", "Default ref (default: "+entities.DefaultRef+")")
	cmd.Flags().Bool(keyPre, false, "Reserved; accepted for compatibility and ignored")
	cmd.Flags().String(keyFiles, "", "Newline-separated specs, used when no arguments are given")
	cmd.Flags().String(keyOutputDirectory, "", "Directory destinations are joined to (default: .)")
	cmd.Flags().Bool(keyProgress, false, "Show a progress bar per file")
}

// Execute fetches the configured files and publishes the metadata output.
func (it *FetchController) Execute(cmd *cobra.Command, args []string) error {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose || os.Getenv("RUNNER_DEBUG") == "1" {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := loadSettings(cmd, args)
	if err != nil {
		it.output.Fail(err.Error())
		return ErrRunFailed
	}

	batch := it.command.Execute(cmd.Context(), settings)
	if !batch.Succeeded() {
		logger.Debugf("Run failed: %v", batch.Err())
		it.output.Fail(entities.FailureMessage(batch.Err()))
		return ErrRunFailed
	}

	data, err := json.Marshal(batch)
	if err != nil {
		it.output.Fail(fmt.Sprintf("failed to encode metadata: %v", err))
		return ErrRunFailed
	}

	if outputErr := it.output.SetOutput(metadataOutput, string(data)); outputErr != nil {
		it.output.Fail(outputErr.Error())
		return ErrRunFailed
	}

	return nil
}

// loadSettings layers the settings file, INPUT_* environment variables,
// flags and arguments, in increasing order of precedence.
func loadSettings(cmd *cobra.Command, args []string) (*entities.Settings, error) {
	settings, err := loadSettingsFile(cmd)
	if err != nil {
		return nil, err
	}

	inputs := viper.New()
	inputs.SetEnvPrefix(inputEnvPrefix)
	inputs.AutomaticEnv()
	if bindErr := inputs.BindPFlags(cmd.Flags()); bindErr != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	if inputs.IsSet(keyToken) {
		settings.Token = inputs.GetString(keyToken)
	}
	if inputs.IsSet(keyRepository) {
		settings.Repository = inputs.GetString(keyRepository)
	}
	if inputs.IsSet(keyRef) {
		settings.Ref = inputs.GetString(keyRef)
	}
	if inputs.IsSet(keyOutputDirectory) {
		settings.OutputDirectory = inputs.GetString(keyOutputDirectory)
	}
	if inputs.IsSet(keyPre) {
		pre, parseErr := parseBooleanInput(keyPre, inputs.GetString(keyPre))
		if parseErr != nil {
			return nil, parseErr
		}
		settings.Pre = pre
	}
	if inputs.IsSet(keyProgress) {
		settings.Progress = inputs.GetBool(keyProgress)
	}

	switch {
	case len(args) > 0:
		settings.Files = args
	case inputs.IsSet(keyFiles):
		settings.Files = entities.SplitLines(inputs.GetString(keyFiles))
	}

	if settings.Token == "" {
		settings.Token = entities.ResolveTokenFromEnv()
	}

	if len(settings.Files) == 0 {
		logger.Warn("No files to fetch")
	}

	return settings, nil
}

func loadSettingsFile(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if errors.Is(err, entities.ErrConfigNotFound) {
			return entities.NewDefaultSettings(), nil
		}
		if err != nil {
			return nil, err
		}
		configPath = found
	}

	logger.Debugf("Using config file: %s", configPath)

	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}

// parseBooleanInput parses a boolean input, rejecting anything strconv does
// not recognise instead of silently treating it as false.
func parseBooleanInput(name, value string) (bool, error) {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("input %q is not a valid boolean: %q", name, value)
	}
	return parsed, nil
}
