package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/rios0rios0/rawfetch/internal/domain/repositories"
)

const (
	delimiterPrefix  = "ghadelimiter_"
	outputFileMode   = 0o644
	errorCommandText = "::error::"
)

// GitHubActionsOutputRepository writes outputs to the file named by
// GITHUB_OUTPUT and reports failures as workflow error commands.
type GitHubActionsOutputRepository struct {
	fs      afero.Fs
	path    string
	console io.Writer
}

// NewGitHubActionsOutputRepository creates an output repository appending to
// the output file at path on fs.
func NewGitHubActionsOutputRepository(
	fs afero.Fs, path string, console io.Writer,
) *GitHubActionsOutputRepository {
	return &GitHubActionsOutputRepository{fs: fs, path: path, console: console}
}

// SetOutput appends a heredoc style "name<<delimiter" block.
func (r *GitHubActionsOutputRepository) SetOutput(name, value string) error {
	delimiter := delimiterPrefix + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("output %q contains the generated delimiter %q", name, delimiter)
	}

	file, err := r.fs.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, outputFileMode)
	if err != nil {
		return fmt.Errorf("failed to open output file %q: %w", r.path, err)
	}

	_, writeErr := fmt.Fprintf(file, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	closeErr := file.Close()
	if writeErr != nil {
		return fmt.Errorf("failed to write output %q: %w", name, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close output file %q: %w", r.path, closeErr)
	}
	return nil
}

func (r *GitHubActionsOutputRepository) Fail(message string) {
	_, _ = fmt.Fprintln(r.console, errorCommandText+escapeCommandData(message))
}

// escapeCommandData escapes the characters that would end a workflow command.
func escapeCommandData(value string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(value)
}

var _ repositories.OutputRepository = (*GitHubActionsOutputRepository)(nil)
