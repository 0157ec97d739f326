package entities

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const homePrefix = "~"

// placeholderPattern matches ${NAME} placeholders in destination paths.
var placeholderPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Environment supplies the process state consulted when expanding a
// destination path. It is injected so tests do not touch the real process.
type Environment interface {
	HomeDir() (string, error)
	Getenv(name string) string
}

// SystemEnvironment reads the real home directory and environment.
type SystemEnvironment struct{}

func (SystemEnvironment) HomeDir() (string, error)  { return os.UserHomeDir() }
func (SystemEnvironment) Getenv(name string) string { return os.Getenv(name) }

// MapEnvironment is a fixed Environment backed by a map.
type MapEnvironment struct {
	Home      string
	Variables map[string]string
}

func (e MapEnvironment) HomeDir() (string, error)  { return e.Home, nil }
func (e MapEnvironment) Getenv(name string) string { return e.Variables[name] }

// ExpandPath replaces a leading "~" with the home directory and every
// ${NAME} with the value of NAME, or nothing when it is unset.
func ExpandPath(path string, env Environment) (string, error) {
	expanded := path
	if strings.HasPrefix(expanded, homePrefix) {
		home, err := env.HomeDir()
		if err != nil {
			return "", &FilesystemError{Op: "resolve home directory for", Path: path, Err: err}
		}
		expanded = home + strings.TrimPrefix(expanded, homePrefix)
	}

	return placeholderPattern.ReplaceAllStringFunc(expanded, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		return env.Getenv(name)
	}), nil
}

// ResolveDestination joins the output directory with the expanded
// destination path of spec.
func ResolveDestination(spec FileSpec, outputDirectory string, env Environment) (string, error) {
	expanded, err := ExpandPath(spec.DestPath, env)
	if err != nil {
		return "", err
	}
	return filepath.Join(outputDirectory, expanded), nil
}
