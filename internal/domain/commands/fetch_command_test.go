//go:build unit

package commands_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/rawfetch/internal/domain/commands"
	"github.com/rios0rios0/rawfetch/internal/domain/entities"
	"github.com/rios0rios0/rawfetch/internal/infrastructure/repositories/filesystem"
	builders "github.com/rios0rios0/rawfetch/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/rawfetch/test/infrastructure/repositorydoubles"
)

const (
	helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

func rawURL(path string) string {
	return "https://raw.githubusercontent.com/" + path
}

func newCommand(
	content *doubles.StubContentRepository,
	fs afero.Fs,
	progress *doubles.SpyProgressRepository,
) *commands.FetchCommand {
	env := entities.MapEnvironment{Home: "/home/u", Variables: map[string]string{"ENVVAR": "prod"}}
	return commands.NewFetchCommand(content, filesystem.NewAferoStorageRepositoryWithFs(fs), progress, env)
}

func TestFetchCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should write the file and report its metadata", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		content := &doubles.StubContentRepository{Responses: map[string]doubles.StubResponse{
			rawURL("owner/repo/main/path/a.txt"): {Body: "hello"},
		}}
		cmd := newCommand(content, fs, &doubles.SpyProgressRepository{})
		settings := builders.NewSettingsBuilder().
			WithFiles("owner/repo@main:path/a.txt=>dest/b.txt").
			BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		require.True(t, batch.Succeeded(), "unexpected error: %v", batch.Err())
		require.Len(t, batch.Results(), 1)
		result := batch.Results()[0]
		assert.Equal(t, "path/a.txt", result.SrcPath)
		assert.Equal(t, "/out/dest/b.txt", result.DestPath)
		assert.Equal(t, "owner/repo", result.Repo)
		assert.Equal(t, "main", result.Ref)
		assert.Equal(t, int64(5), result.Size)
		assert.Equal(t, "5 Bytes", result.HumanSize)
		assert.Equal(t, helloSHA256, result.SHA256)
		assert.GreaterOrEqual(t, result.TimeTaken, int64(0))

		written, err := afero.ReadFile(fs, "/out/dest/b.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello", string(written))
	})

	t.Run("should produce the same hash regardless of chunking", func(t *testing.T) {
		t.Parallel()

		// given
		body := strings.Repeat("0123456789", 1000)
		content := &doubles.StubContentRepository{Responses: map[string]doubles.StubResponse{
			rawURL("d-org/d-repo/main/whole.bin"):   {Body: body},
			rawURL("d-org/d-repo/main/chunked.bin"): {Body: body, OneByte: true},
		}}
		cmd := newCommand(content, afero.NewMemMapFs(), &doubles.SpyProgressRepository{})
		settings := builders.NewSettingsBuilder().WithFiles("whole.bin", "chunked.bin").BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		require.True(t, batch.Succeeded())
		results := batch.Results()
		require.Len(t, results, 2)
		assert.Equal(t, results[0].SHA256, results[1].SHA256)
		assert.Equal(t, int64(len(body)), results[1].Size)
		assert.Equal(t, "9.77 KB", results[1].HumanSize)
	})

	t.Run("should handle an empty body", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		content := &doubles.StubContentRepository{Responses: map[string]doubles.StubResponse{
			rawURL("d-org/d-repo/main/empty.txt"): {Body: ""},
		}}
		cmd := newCommand(content, fs, &doubles.SpyProgressRepository{})
		settings := builders.NewSettingsBuilder().WithFiles("empty.txt").BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		require.True(t, batch.Succeeded())
		assert.Equal(t, int64(0), batch.Results()[0].Size)
		assert.Equal(t, "0 Bytes", batch.Results()[0].HumanSize)
		assert.Equal(t, emptySHA256, batch.Results()[0].SHA256)
		exists, err := afero.Exists(fs, "/out/empty.txt")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("should keep results in input order", func(t *testing.T) {
		t.Parallel()

		// given
		responses := map[string]doubles.StubResponse{}
		var lines []string
		for _, name := range []string{"c.txt", "a.txt", "b.txt", "e.txt", "d.txt"} {
			responses[rawURL("d-org/d-repo/main/"+name)] = doubles.StubResponse{Body: name, OneByte: true}
			lines = append(lines, name)
		}
		content := &doubles.StubContentRepository{Responses: responses}
		cmd := newCommand(content, afero.NewMemMapFs(), &doubles.SpyProgressRepository{})
		settings := builders.NewSettingsBuilder().WithFiles(lines...).BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		require.True(t, batch.Succeeded())
		results := batch.Results()
		require.Len(t, results, len(lines))
		for i, line := range lines {
			assert.Equal(t, line, results[i].SrcPath)
		}
	})

	t.Run("should fail the whole batch when one fetch fails", func(t *testing.T) {
		t.Parallel()

		// given
		content := &doubles.StubContentRepository{Responses: map[string]doubles.StubResponse{
			rawURL("d-org/d-repo/main/one.txt"):   {Body: "1"},
			rawURL("d-org/d-repo/main/three.txt"): {Body: "3"},
		}}
		cmd := newCommand(content, afero.NewMemMapFs(), &doubles.SpyProgressRepository{})
		settings := builders.NewSettingsBuilder().WithFiles("one.txt", "two.txt", "three.txt").BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		assert.False(t, batch.Succeeded())
		assert.Nil(t, batch.Results())
		var transportErr *entities.TransportError
		require.ErrorAs(t, batch.Err(), &transportErr)
		assert.Equal(t, http.StatusNotFound, transportErr.StatusCode)
		assert.Equal(t, "Failed to download file: 404", entities.FailureMessage(batch.Err()))
	})

	t.Run("should not issue requests when a line is invalid", func(t *testing.T) {
		t.Parallel()

		// given
		content := &doubles.StubContentRepository{}
		cmd := newCommand(content, afero.NewMemMapFs(), &doubles.SpyProgressRepository{})
		settings := builders.NewSettingsBuilder().WithFiles("a.txt", "owner/repo@bad ref:b.txt").BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		assert.False(t, batch.Succeeded())
		assert.Equal(t, "Invalid reference", entities.FailureMessage(batch.Err()))
		assert.Empty(t, content.Calls())
	})

	t.Run("should pass the token to every download", func(t *testing.T) {
		t.Parallel()

		// given
		content := &doubles.StubContentRepository{Responses: map[string]doubles.StubResponse{
			rawURL("d-org/d-repo/main/a.txt"): {Body: "a"},
			rawURL("d-org/d-repo/main/b.txt"): {Body: "b"},
		}}
		cmd := newCommand(content, afero.NewMemMapFs(), &doubles.SpyProgressRepository{})
		settings := builders.NewSettingsBuilder().WithToken("secret").WithFiles("a.txt", "b.txt").BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		require.True(t, batch.Succeeded())
		calls := content.Calls()
		require.Len(t, calls, 2)
		for _, call := range calls {
			assert.Equal(t, "secret", call.Token)
		}
	})

	t.Run("should apply explicit permissions", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		content := &doubles.StubContentRepository{Responses: map[string]doubles.StubResponse{
			rawURL("d-org/d-repo/main/run.sh"): {Body: "#!/bin/sh\n"},
		}}
		cmd := newCommand(content, fs, &doubles.SpyProgressRepository{})
		settings := builders.NewSettingsBuilder().WithFiles("run.sh=>bin/run.sh=>755").BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		require.True(t, batch.Succeeded())
		info, err := fs.Stat("/out/bin/run.sh")
		require.NoError(t, err)
		assert.Equal(t, "-rwxr-xr-x", info.Mode().Perm().String())
	})

	t.Run("should expand home and placeholders in the destination", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		content := &doubles.StubContentRepository{Responses: map[string]doubles.StubResponse{
			rawURL("d-org/d-repo/main/f.txt"): {Body: "f"},
		}}
		cmd := newCommand(content, fs, &doubles.SpyProgressRepository{})
		settings := builders.NewSettingsBuilder().WithFiles("f.txt=>~/out/${ENVVAR}/f.txt").BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		require.True(t, batch.Succeeded())
		assert.Equal(t, "/out/home/u/out/prod/f.txt", batch.Results()[0].DestPath)
		exists, err := afero.Exists(fs, "/out/home/u/out/prod/f.txt")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("should report a body read failure as a transport error", func(t *testing.T) {
		t.Parallel()

		// given
		content := &doubles.StubContentRepository{Responses: map[string]doubles.StubResponse{
			rawURL("d-org/d-repo/main/a.txt"): {Body: "partial", ReadErr: errors.New("connection reset")},
		}}
		cmd := newCommand(content, afero.NewMemMapFs(), &doubles.SpyProgressRepository{})
		settings := builders.NewSettingsBuilder().WithFiles("a.txt").BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		var transportErr *entities.TransportError
		require.ErrorAs(t, batch.Err(), &transportErr)
		assert.Contains(t, transportErr.Error(), "connection reset")
	})

	t.Run("should report an unwritable destination as a filesystem error", func(t *testing.T) {
		t.Parallel()

		// given
		content := &doubles.StubContentRepository{Responses: map[string]doubles.StubResponse{
			rawURL("d-org/d-repo/main/a.txt"): {Body: "a"},
		}}
		cmd := newCommand(content, afero.NewReadOnlyFs(afero.NewMemMapFs()), &doubles.SpyProgressRepository{})
		settings := builders.NewSettingsBuilder().WithFiles("a.txt").BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		var filesystemErr *entities.FilesystemError
		require.ErrorAs(t, batch.Err(), &filesystemErr)
		assert.Equal(t, "/out/a.txt", filesystemErr.Path)
	})

	t.Run("should succeed with an empty list", func(t *testing.T) {
		t.Parallel()

		// given
		content := &doubles.StubContentRepository{}
		cmd := newCommand(content, afero.NewMemMapFs(), &doubles.SpyProgressRepository{})
		settings := builders.NewSettingsBuilder().WithFiles("", "  ").BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		require.True(t, batch.Succeeded())
		assert.Empty(t, batch.Results())
		assert.NotNil(t, batch.Results())
		assert.Empty(t, content.Calls())
	})

	t.Run("should track every file when progress is enabled", func(t *testing.T) {
		t.Parallel()

		// given
		progress := &doubles.SpyProgressRepository{}
		content := &doubles.StubContentRepository{Responses: map[string]doubles.StubResponse{
			rawURL("d-org/d-repo/main/a.txt"): {Body: "a"},
			rawURL("d-org/d-repo/main/b.txt"): {Body: "b"},
		}}
		cmd := newCommand(content, afero.NewMemMapFs(), progress)
		settings := builders.NewSettingsBuilder().WithProgress(true).WithFiles("a.txt", "b.txt").BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		require.True(t, batch.Succeeded())
		assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, progress.Tracked())
		assert.Equal(t, 2, progress.Done())
		assert.True(t, progress.Closed())
	})

	t.Run("should not touch the progress output when disabled", func(t *testing.T) {
		t.Parallel()

		// given
		progress := &doubles.SpyProgressRepository{}
		content := &doubles.StubContentRepository{Responses: map[string]doubles.StubResponse{
			rawURL("d-org/d-repo/main/a.txt"): {Body: "a"},
		}}
		cmd := newCommand(content, afero.NewMemMapFs(), progress)
		settings := builders.NewSettingsBuilder().WithFiles("a.txt").BuildSettings()

		// when
		batch := cmd.Execute(context.Background(), settings)

		// then
		require.True(t, batch.Succeeded())
		assert.Empty(t, progress.Tracked())
		assert.False(t, progress.Closed())
	})
}
