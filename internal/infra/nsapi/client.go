package nsapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/infra/httpclient"
	"github.com/evanraalte/nstimes/internal/ports"
)

const (
	stationsPath = "/nsapp-stations/v3"
	tripsPath    = "/reisinformatie-api/api/v3/trips"
	pricePath    = "/reisinformatie-api/api/v3/price"

	subscriptionHeader = "Ocp-Apim-Subscription-Key"
)

// Client talks to the NS API gateway.
type Client struct {
	exec    *httpclient.Executor
	baseURL string
	token   string
	logger  *slog.Logger
}

type Option func(*Client)

func WithExecutor(e *httpclient.Executor) Option {
	return func(c *Client) { c.exec = e }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(cfg domain.APIConfig, opts ...Option) *Client {
	hc := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		hc.Timeout = cfg.Timeout
	}
	hc.UserAgent = "nstimes"

	c := &Client{
		exec:    httpclient.NewExecutor(httpclient.WithClient(httpclient.New(hc)), httpclient.WithTimeout(hc.Timeout)),
		baseURL: cfg.BaseURL,
		token:   strings.TrimSpace(cfg.Token),
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ ports.PriceSource = (*Client)(nil)
	_ ports.TripSource  = (*Client)(nil)
)

func (c *Client) get(ctx context.Context, op, path string, q url.Values, out any) error {
	if c.token == "" {
		return &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrMissingToken,
		}
	}

	resp, err := c.exec.GetJSON(ctx, httpclient.RequestSpec{
		BaseURL: c.baseURL,
		Path:    path,
		Query:   q,
		Headers: map[string]string{
			subscriptionHeader: c.token,
			"Cache-Control":    "no-cache",
		},
	}, out)

	c.logger.Debug("nsapi.request",
		"op", op,
		"path", path,
		"status", resp.Status,
		"duration_ms", resp.Duration.Milliseconds(),
	)

	if err != nil {
		var oe *domain.OpError
		if errors.As(err, &oe) {
			return err
		}
		c.logger.Warn("nsapi.request_failed", "op", op, "path", path, "kind", domain.ClassifyUpstreamError(err), "err", err)
		return &domain.OpError{
			Op:   op,
			Kind: domain.KindUpstream,
			Path: path,
			Err:  err,
		}
	}
	return nil
}
