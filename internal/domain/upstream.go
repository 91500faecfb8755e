package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// UpstreamErrorKind is a high-level classification of failures talking to NS.
type UpstreamErrorKind string

const (
	UpstreamUnknown UpstreamErrorKind = "unknown"
	UpstreamTimeout UpstreamErrorKind = "timeout"
	UpstreamDNS     UpstreamErrorKind = "dns"
	UpstreamConn    UpstreamErrorKind = "connection"
	UpstreamHTTP    UpstreamErrorKind = "http"
)

// StatusError is returned when NS answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, body)
}

func (e *StatusError) Unwrap() error { return ErrUpstream }

// ClassifyUpstreamError maps transport errors to a coarse kind.
func ClassifyUpstreamError(err error) UpstreamErrorKind {
	if err == nil {
		return UpstreamUnknown
	}

	var se *StatusError
	if errors.As(err, &se) {
		return UpstreamHTTP
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return UpstreamTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return UpstreamDNS
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return UpstreamTimeout
	}

	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return UpstreamTimeout
	}

	var oe *net.OpError
	if errors.As(err, &oe) {
		return UpstreamConn
	}

	return UpstreamUnknown
}
