package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/evanraalte/nstimes/internal/domain"
)

// RequestSpec describes an outbound GET against a JSON API.
type RequestSpec struct {
	BaseURL string
	Path    string
	Query   url.Values
	Headers map[string]string
}

// BuildRequest joins base URL, path and query into a GET request.
func BuildRequest(ctx context.Context, spec RequestSpec) (*http.Request, error) {
	if strings.TrimSpace(spec.BaseURL) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidConfig,
		}
	}

	u, err := url.Parse(strings.TrimRight(spec.BaseURL, "/") + "/" + strings.TrimLeft(spec.Path, "/"))
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: spec.Path,
			Err:  err,
		}
	}
	if len(spec.Query) > 0 {
		u.RawQuery = spec.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: spec.Path,
			Err:  err,
		}
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}
