package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/rawfetch/internal/domain/entities"
	"github.com/rios0rios0/rawfetch/internal/domain/repositories"
)

// Fetch is the interface for the fetch command.
type Fetch interface {
	Execute(ctx context.Context, settings *entities.Settings) entities.BatchResult
}

// FetchCommand parses every spec line, then downloads all files in parallel
// while hashing them, and returns the ordered metadata of the batch.
type FetchCommand struct {
	contentRepository  repositories.ContentRepository
	storageRepository  repositories.StorageRepository
	progressRepository repositories.ProgressRepository
	environment        entities.Environment
}

// NewFetchCommand creates a new FetchCommand with the given collaborators.
func NewFetchCommand(
	contentRepository repositories.ContentRepository,
	storageRepository repositories.StorageRepository,
	progressRepository repositories.ProgressRepository,
	environment entities.Environment,
) *FetchCommand {
	return &FetchCommand{
		contentRepository:  contentRepository,
		storageRepository:  storageRepository,
		progressRepository: progressRepository,
		environment:        environment,
	}
}

// Execute runs one batch. Any invalid line fails the batch before a request
// is issued; otherwise the first failed fetch wins and cancels the others.
// Files already written by other fetches are left in place.
func (it *FetchCommand) Execute(ctx context.Context, settings *entities.Settings) entities.BatchResult {
	if settings.Pre {
		logger.Debug("Input 'pre' is set but has no effect on ref resolution")
	}

	specs, err := entities.ParseFileSpecs(settings.Files, settings.Defaults())
	if err != nil {
		return entities.NewBatchFailure(err)
	}

	logger.Infof("Fetching %d file(s) into %q", len(specs), settings.OutputDirectory)

	progress := it.progressFor(settings)
	defer func() {
		if closeErr := progress.Close(); closeErr != nil {
			logger.Debugf("Failed to close progress output: %v", closeErr)
		}
	}()

	results := make([]entities.FetchResult, len(specs))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		group.Go(func() error {
			result, fetchErr := it.fetchFile(groupCtx, spec, settings, progress)
			if fetchErr != nil {
				logger.Debugf("Fetch of %s from %s@%s failed: %v",
					spec.SrcPath, spec.Repository(), spec.Ref, fetchErr)
				return fetchErr
			}
			results[i] = result
			return nil
		})
	}

	if waitErr := group.Wait(); waitErr != nil {
		return entities.NewBatchFailure(waitErr)
	}

	logger.Infof("Fetched %d file(s)", len(results))
	return entities.NewBatchSuccess(results)
}

func (it *FetchCommand) progressFor(settings *entities.Settings) repositories.ProgressRepository {
	if settings.Progress && it.progressRepository != nil {
		return it.progressRepository
	}
	return silentProgress{}
}

// fetchFile downloads a single spec, streaming the body into the destination
// file and the hash in arrival order.
func (it *FetchCommand) fetchFile(
	ctx context.Context,
	spec entities.FileSpec,
	settings *entities.Settings,
	progress repositories.ProgressRepository,
) (entities.FetchResult, error) {
	startTime := time.Now()

	url := spec.DownloadURL()
	destination, err := entities.ResolveDestination(spec, settings.OutputDirectory, it.environment)
	if err != nil {
		return entities.FetchResult{}, err
	}

	logger.Debugf("URL: %s", url)
	logger.Debugf("Destination: %s", destination)

	content, err := it.contentRepository.Download(ctx, url, settings.Token)
	if err != nil {
		return entities.FetchResult{}, err
	}
	defer content.Body.Close()

	size, sum, err := it.store(spec, url, destination, content, progress)
	if err != nil {
		return entities.FetchResult{}, err
	}

	if spec.HasPermissions() {
		if chmodErr := it.storageRepository.Chmod(destination, *spec.Permissions); chmodErr != nil {
			return entities.FetchResult{}, chmodErr
		}
	}

	result := entities.FetchResult{
		SrcPath:   spec.SrcPath,
		DestPath:  destination,
		Repo:      spec.Repository(),
		Ref:       spec.Ref,
		Size:      size,
		HumanSize: entities.FormatBytes(size),
		SHA256:    sum,
		TimeTaken: time.Since(startTime).Milliseconds(),
	}
	logResult(result)

	return result, nil
}

// store copies the body into destination and returns the byte count and the
// hex-encoded SHA-256 of what was written.
func (it *FetchCommand) store(
	spec entities.FileSpec,
	url string,
	destination string,
	content *repositories.RemoteContent,
	progress repositories.ProgressRepository,
) (int64, string, error) {
	file, err := it.storageRepository.Create(destination)
	if err != nil {
		return 0, "", err
	}

	tracked, done := progress.Track(spec.SrcPath, content.ContentLength, file)
	counter := &chunkCounter{url: url, total: content.ContentLength}
	digest := sha256.New()
	body := &bodyReader{reader: content.Body}

	_, copyErr := io.Copy(io.MultiWriter(counter, digest, tracked), body)
	done()
	closeErr := file.Close()

	switch {
	case copyErr != nil && body.err != nil:
		return 0, "", &entities.TransportError{URL: url, Err: body.err}
	case copyErr != nil:
		return 0, "", &entities.FilesystemError{Op: "write", Path: destination, Err: copyErr}
	case closeErr != nil:
		return 0, "", &entities.FilesystemError{Op: "close", Path: destination, Err: closeErr}
	}

	return counter.size, hexDigest(digest), nil
}

func hexDigest(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}

func logResult(result entities.FetchResult) {
	logger.Debugf("File: %s", result.SrcPath)
	logger.Debugf("Repo: %s", result.Repo)
	logger.Debugf("Ref: %s", result.Ref)
	logger.Debugf("Destination: %s", result.DestPath)
	logger.Debugf("Size: %d bytes (%s)", result.Size, result.HumanSize)
	logger.Debugf("SHA256: %s", result.SHA256)
	logger.Debugf("Time taken: %dms", result.TimeTaken)
}

// bodyReader remembers the last read error so that a failed copy can be
// attributed to the network rather than the disk.
type bodyReader struct {
	reader io.Reader
	err    error
}

func (r *bodyReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if err != nil && err != io.EOF {
		r.err = err
	}
	return n, err
}

// chunkCounter counts the bytes of every received chunk.
type chunkCounter struct {
	url   string
	total int64
	size  int64
}

func (c *chunkCounter) Write(p []byte) (int, error) {
	c.size += int64(len(p))
	if logger.IsLevelEnabled(logger.DebugLevel) {
		logger.Debugf("Received %d bytes for %s (%d/%s bytes, %s)",
			len(p), c.url, c.size, c.totalText(), c.percentText())
	}
	return len(p), nil
}

func (c *chunkCounter) totalText() string {
	if c.total < 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d", c.total)
}

func (c *chunkCounter) percentText() string {
	if c.total <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d%%", c.size*100/c.total)
}

// silentProgress is used when progress bars are not requested.
type silentProgress struct{}

func (silentProgress) Track(_ string, _ int64, dst io.Writer) (io.Writer, func()) {
	return dst, func() {}
}

func (silentProgress) Close() error { return nil }
