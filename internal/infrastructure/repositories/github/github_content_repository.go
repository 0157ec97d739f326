package github

import (
	"context"
	"fmt"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rawfetch/internal/domain/entities"
	"github.com/rios0rios0/rawfetch/internal/domain/repositories"
)

const (
	authorizationHeader = "Authorization"
	tokenScheme         = "token "
)

// GitHubContentRepository implements repositories.ContentRepository against
// raw.githubusercontent.com.
type GitHubContentRepository struct {
	client *http.Client
}

// NewGitHubContentRepository creates a content repository with a client that
// never times out and does not follow redirects, so that any non-200 answer
// surfaces as a failure.
func NewGitHubContentRepository() repositories.ContentRepository {
	return NewGitHubContentRepositoryWithClient(&http.Client{
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	})
}

// NewGitHubContentRepositoryWithClient creates a content repository using client.
func NewGitHubContentRepositoryWithClient(client *http.Client) *GitHubContentRepository {
	return &GitHubContentRepository{client: client}
}

// Download issues the GET request for url. The Authorization header is only
// sent when token is not empty.
func (r *GitHubContentRepository) Download(
	ctx context.Context,
	url, token string,
) (*repositories.RemoteContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &entities.TransportError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}

	if token != "" {
		req.Header.Set(authorizationHeader, tokenScheme+token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &entities.TransportError{URL: url, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		logger.Debugf("GET %s answered %s", url, resp.Status)
		return nil, &entities.TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	return &repositories.RemoteContent{
		Body:          resp.Body,
		ContentLength: resp.ContentLength,
	}, nil
}
