package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultRef is used when neither the settings nor a spec line name a ref.
	DefaultRef = "main"

	// DefaultOutputDirectory is the root under which destinations are joined.
	DefaultOutputDirectory = "."
)

// ErrConfigNotFound is returned by FindConfigFile when no settings file exists.
var ErrConfigNotFound = errors.New("config file not found in default locations")

// Settings holds every input of a run. It is loaded from an optional YAML
// file and then overlaid with environment and flag values by the controller.
type Settings struct {
	Token           string   `yaml:"token"`            // Inline, ${ENV_VAR}, or file path
	Repository      string   `yaml:"repo"`             // Default "org/repo"
	Ref             string   `yaml:"ref"`              // Default ref
	Pre             bool     `yaml:"pre"`              // Reserved, accepted but unused
	Files           []string `yaml:"files"`            // Raw spec lines
	OutputDirectory string   `yaml:"output_directory"` // Root for destination paths
	Progress        bool     `yaml:"progress"`         // Render terminal progress bars
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewDefaultSettings returns the settings used when no file is present.
func NewDefaultSettings() *Settings {
	return &Settings{
		Repository:      os.Getenv("GITHUB_REPOSITORY"),
		Ref:             DefaultRef,
		OutputDirectory: DefaultOutputDirectory,
	}
}

// NewSettings reads and parses a settings file, expanding environment
// variables and resolving token file paths. Missing values keep their
// defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := NewDefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Token = ResolveToken(settings.Token)
	return settings, nil
}

// Defaults returns the parser defaults derived from the settings.
func (s *Settings) Defaults() Defaults {
	return NewDefaults(s.Repository, s.Ref)
}

// FindConfigFile searches for a settings file in standard locations.
// Returns the path to the first file found or ErrConfigNotFound.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		".github",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".rawfetch.yaml",
		".rawfetch.yml",
		"rawfetch.yaml",
		"rawfetch.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", ErrConfigNotFound
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from it.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// ResolveTokenFromEnv returns the first token found in the conventional
// GitHub environment variables.
func ResolveTokenFromEnv() string {
	for _, name := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if token := os.Getenv(name); token != "" {
			return token
		}
	}
	return ""
}

// SplitLines turns a multiline input into trimmed, non-empty lines.
func SplitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
