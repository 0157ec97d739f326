package repositories

import (
	"context"
	"io"
)

// RemoteContent is an open response body together with its declared length.
// ContentLength is -1 when the server did not announce it.
type RemoteContent struct {
	Body          io.ReadCloser
	ContentLength int64
}

// ContentRepository abstracts the retrieval of raw file content over HTTP.
// Implementations return an *entities.TransportError for non-200 statuses and
// connection failures.
type ContentRepository interface {
	// Download issues a GET for url, authenticating with token when it is
	// not empty. The caller owns and must close the returned body.
	Download(ctx context.Context, url, token string) (*RemoteContent, error)
}
