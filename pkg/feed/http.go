package feed

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/resolver"
)

// HTTPSource reads package listings from a JSON feed.
type HTTPSource struct {
	name   string
	base   string
	client *Client
}

// NewHTTPSource creates a source for the feed rooted at baseURL. The name
// defaults to the URL host.
func NewHTTPSource(name, baseURL string, opts ClientOptions) (*HTTPSource, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid feed URL %q", baseURL)
	}
	if name == "" {
		name = u.Host
	}
	return &HTTPSource{
		name:   name,
		base:   strings.TrimSuffix(baseURL, "/"),
		client: NewClient(opts),
	}, nil
}

// Name returns the source name.
func (s *HTTPSource) Name() string { return s.name }

// Versions fetches {base}/{id}/index.json, with id lower-cased.
func (s *HTTPSource) Versions(ctx context.Context, id string) ([]resolver.Candidate, error) {
	if err := errors.ValidatePackageName(id); err != nil {
		return nil, err
	}
	key := s.client.opts.Keyer.FeedKey(s.name, id)
	endpoint := fmt.Sprintf("%s/%s/index.json", s.base, url.PathEscape(strings.ToLower(id)))

	var l Listing
	err := s.client.Cached(ctx, key, &l, func() error {
		return s.client.Get(ctx, endpoint, &l)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", s.name, id, err)
	}
	if l.ID == "" {
		l.ID = id
	}
	return l.Candidates()
}

// NewHTTPSources creates one [HTTPSource] per URL, all sharing opts.
func NewHTTPSources(urls []string, opts ClientOptions) ([]Source, error) {
	sources := make([]Source, 0, len(urls))
	for _, u := range urls {
		s, err := NewHTTPSource("", u, opts)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, nil
}
