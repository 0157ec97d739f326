package output

import (
	"os"

	"github.com/spf13/afero"

	"github.com/rios0rios0/rawfetch/internal/domain/entities"
	"github.com/rios0rios0/rawfetch/internal/domain/repositories"
)

// githubOutputVariable names the file GitHub Actions reads step outputs from.
const githubOutputVariable = "GITHUB_OUTPUT"

// NewOutputRepository picks the GitHub Actions sink when running inside a
// workflow step and the console sink otherwise.
func NewOutputRepository(env entities.Environment) repositories.OutputRepository {
	if path := env.Getenv(githubOutputVariable); path != "" {
		return NewGitHubActionsOutputRepository(afero.NewOsFs(), path, os.Stdout)
	}
	return NewConsoleOutputRepository(os.Stdout)
}
