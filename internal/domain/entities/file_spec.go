package entities

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

const (
	destinationSeparator = "=>"
	sourceSeparator      = ":"
	refSeparator         = "@"
	repoSeparator        = "/"

	rawContentURLTemplate = "https://raw.githubusercontent.com/%s/%s/%s/%s"

	maxPermissions = 0o7777
)

//nolint:gochecknoglobals // compiled once, read-only
var (
	orgPattern      = regexp.MustCompile(`^[a-zA-Z0-9\-]+$`)
	repoPattern     = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)
	refPattern      = regexp.MustCompile(`^[a-zA-Z0-9_./\-]+$`)
	srcPathPattern  = regexp.MustCompile(`^[a-zA-Z0-9_./\-]+$`)
	destPathPattern = regexp.MustCompile(`^[a-zA-Z0-9_./~${}\-]+$`)
)

// Defaults holds the values used when a spec line omits its repository or ref.
type Defaults struct {
	Org  string
	Repo string
	Ref  string
}

// NewDefaults builds Defaults from a combined "org/repo" string and a ref.
func NewDefaults(repository, ref string) Defaults {
	org, repo := SplitRepository(repository)
	return Defaults{Org: org, Repo: repo, Ref: ref}
}

// FileSpec is a fully resolved and validated description of one remote file.
// Values are only produced by ParseFileSpec, so every field already matches
// its pattern.
type FileSpec struct {
	Org         string
	Repo        string
	Ref         string
	SrcPath     string
	DestPath    string
	Permissions *os.FileMode // nil leaves the default permissions untouched
}

// Repository returns the owning "org/repo" string.
func (s FileSpec) Repository() string {
	return s.Org + repoSeparator + s.Repo
}

// DownloadURL returns the raw content URL of the file. No escaping is
// applied: every component has already been validated.
func (s FileSpec) DownloadURL() string {
	return fmt.Sprintf(rawContentURLTemplate, s.Org, s.Repo, s.Ref, s.SrcPath)
}

// HasPermissions reports whether explicit permission bits were requested.
func (s FileSpec) HasPermissions() bool {
	return s.Permissions != nil
}

// ParseFileSpec resolves a single spec line of the form
//
//	[org/repo[@ref]:]path[=>destination[=>octal]]
//
// falling back to defaults for the omitted parts. Segments past the second
// "/" or "@" are ignored. The first invalid field aborts parsing with a
// *ValidationError.
func ParseFileSpec(line string, defaults Defaults) (FileSpec, error) {
	source, destination := cutTrimmed(line, destinationSeparator)

	repoRef, srcPath, hasRepoRef := strings.Cut(source, sourceSeparator)
	if hasRepoRef {
		repoRef = strings.TrimSpace(repoRef)
		srcPath = strings.TrimSpace(srcPath)
	} else {
		repoRef, srcPath = "", source
	}

	orgRepo, ref := firstTwoTrimmed(repoRef, refSeparator)
	org, repo := firstTwoTrimmed(orgRepo, repoSeparator)

	destPath, permissionsText := cutTrimmed(destination, destinationSeparator)

	spec := FileSpec{
		Org:      orDefault(org, defaults.Org),
		Repo:     orDefault(repo, defaults.Repo),
		Ref:      orDefault(ref, defaults.Ref),
		SrcPath:  srcPath,
		DestPath: orDefault(destPath, srcPath),
	}

	checks := []struct {
		value   string
		pattern *regexp.Regexp
		field   string
		message string
	}{
		{spec.Org, orgPattern, FieldOrg, "Invalid organization name"},
		{spec.Repo, repoPattern, FieldRepo, "Invalid repository name"},
		{spec.Ref, refPattern, FieldRef, "Invalid reference"},
		{spec.SrcPath, srcPathPattern, FieldSrcPath, "Invalid source path"},
		{spec.DestPath, destPathPattern, FieldDestPath, "Invalid destination path"},
	}
	for _, check := range checks {
		if !check.pattern.MatchString(check.value) {
			return FileSpec{}, &ValidationError{Field: check.field, Message: check.message}
		}
	}

	if permissionsText != "" {
		mode, err := parsePermissions(permissionsText)
		if err != nil {
			return FileSpec{}, err
		}
		spec.Permissions = &mode
	}

	return spec, nil
}

// ParseFileSpecs parses every non-blank line in order and stops at the first
// invalid one.
func ParseFileSpecs(lines []string, defaults Defaults) ([]FileSpec, error) {
	specs := make([]FileSpec, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		spec, err := ParseFileSpec(line, defaults)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// SplitRepository splits "org/repo" into its two first segments. Extra
// segments are ignored and a missing repo yields an empty string.
func SplitRepository(repository string) (string, string) {
	return firstTwo(repository, repoSeparator)
}

func parsePermissions(text string) (os.FileMode, error) {
	value, err := strconv.ParseUint(text, 8, 32)
	if err != nil || value > maxPermissions {
		return 0, &ValidationError{Field: FieldPermissions, Message: "Invalid permissions"}
	}
	return os.FileMode(value), nil
}

// cutTrimmed splits s around the first sep and trims both halves.
func cutTrimmed(s, sep string) (string, string) {
	before, after, _ := strings.Cut(s, sep)
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// firstTwo returns the first two segments of s split on sep; later segments
// are dropped.
func firstTwo(s, sep string) (string, string) {
	parts := strings.Split(s, sep)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func firstTwoTrimmed(s, sep string) (string, string) {
	first, second := firstTwo(s, sep)
	return strings.TrimSpace(first), strings.TrimSpace(second)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
