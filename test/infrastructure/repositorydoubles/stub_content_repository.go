//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing/iotest"

	"github.com/rios0rios0/rawfetch/internal/domain/entities"
	"github.com/rios0rios0/rawfetch/internal/domain/repositories"
)

// StubResponse configures the answer for one URL.
type StubResponse struct {
	Body       string
	StatusCode int // when set, Download fails with a TransportError carrying it
	Err        error
	OneByte    bool // deliver the body one byte per Read call
	ReadErr    error
}

// DownloadCall records a single invocation of Download.
type DownloadCall struct {
	URL   string
	Token string
}

// StubContentRepository implements repositories.ContentRepository with canned
// responses keyed by URL. It is safe for concurrent use.
type StubContentRepository struct {
	Responses map[string]StubResponse

	mu    sync.Mutex
	calls []DownloadCall
}

var _ repositories.ContentRepository = (*StubContentRepository)(nil)

func (s *StubContentRepository) Download(
	_ context.Context, url, token string,
) (*repositories.RemoteContent, error) {
	s.mu.Lock()
	s.calls = append(s.calls, DownloadCall{URL: url, Token: token})
	s.mu.Unlock()

	response, ok := s.Responses[url]
	if !ok {
		return nil, &entities.TransportError{URL: url, StatusCode: http.StatusNotFound}
	}
	if response.Err != nil {
		return nil, response.Err
	}
	if response.StatusCode != 0 {
		return nil, &entities.TransportError{URL: url, StatusCode: response.StatusCode}
	}

	var reader io.Reader = strings.NewReader(response.Body)
	if response.OneByte {
		reader = iotest.OneByteReader(reader)
	}
	if response.ReadErr != nil {
		reader = io.MultiReader(reader, iotest.ErrReader(response.ReadErr))
	}
	return &repositories.RemoteContent{
		Body:          io.NopCloser(reader),
		ContentLength: int64(len(response.Body)),
	}, nil
}

// Calls returns a copy of the recorded invocations.
func (s *StubContentRepository) Calls() []DownloadCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DownloadCall(nil), s.calls...)
}
