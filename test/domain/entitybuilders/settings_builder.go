//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/rawfetch/internal/domain/entities"
)

const (
	defaultRepository      = "d-org/d-repo"
	defaultRef             = "main"
	defaultOutputDirectory = "/out"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	token           string
	repository      string
	ref             string
	pre             bool
	files           []string
	outputDirectory string
	progress        bool
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder:     testkit.NewBaseBuilder(),
		repository:      defaultRepository,
		ref:             defaultRef,
		outputDirectory: defaultOutputDirectory,
	}
}

// WithToken sets the auth token.
func (b *SettingsBuilder) WithToken(token string) *SettingsBuilder {
	b.token = token
	return b
}

// WithRepository sets the default "org/repo".
func (b *SettingsBuilder) WithRepository(repository string) *SettingsBuilder {
	b.repository = repository
	return b
}

// WithRef sets the default ref.
func (b *SettingsBuilder) WithRef(ref string) *SettingsBuilder {
	b.ref = ref
	return b
}

// WithPre sets the reserved pre-release flag.
func (b *SettingsBuilder) WithPre(pre bool) *SettingsBuilder {
	b.pre = pre
	return b
}

// WithFiles sets the raw spec lines.
func (b *SettingsBuilder) WithFiles(files ...string) *SettingsBuilder {
	b.files = files
	return b
}

// WithOutputDirectory sets the output root.
func (b *SettingsBuilder) WithOutputDirectory(dir string) *SettingsBuilder {
	b.outputDirectory = dir
	return b
}

// WithProgress enables progress reporting.
func (b *SettingsBuilder) WithProgress(progress bool) *SettingsBuilder {
	b.progress = progress
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	return &entities.Settings{
		Token:           b.token,
		Repository:      b.repository,
		Ref:             b.ref,
		Pre:             b.pre,
		Files:           append([]string(nil), b.files...),
		OutputDirectory: b.outputDirectory,
		Progress:        b.progress,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.token = ""
	b.repository = defaultRepository
	b.ref = defaultRef
	b.pre = false
	b.files = nil
	b.outputDirectory = defaultOutputDirectory
	b.progress = false
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder:     b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		token:           b.token,
		repository:      b.repository,
		ref:             b.ref,
		pre:             b.pre,
		files:           append([]string(nil), b.files...),
		outputDirectory: b.outputDirectory,
		progress:        b.progress,
	}
}
