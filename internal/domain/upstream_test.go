package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
)

func TestClassifyUpstreamError_Timeout_ContextDeadline(t *testing.T) {
	if got := ClassifyUpstreamError(context.DeadlineExceeded); got != UpstreamTimeout {
		t.Fatalf("expected timeout, got=%s", got)
	}
}

func TestClassifyUpstreamError_Conn(t *testing.T) {
	err := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	if got := ClassifyUpstreamError(err); got != UpstreamConn {
		t.Fatalf("expected connection, got=%s", got)
	}
}

func TestClassifyUpstreamError_DNS(t *testing.T) {
	err := &net.DNSError{Err: "no such host", Name: "gateway.invalid"}
	if got := ClassifyUpstreamError(err); got != UpstreamDNS {
		t.Fatalf("expected dns, got=%s", got)
	}
}

func TestClassifyUpstreamError_Status(t *testing.T) {
	err := fmt.Errorf("prices: %w", &StatusError{StatusCode: 401, Body: "denied"})
	if got := ClassifyUpstreamError(err); got != UpstreamHTTP {
		t.Fatalf("expected http, got=%s", got)
	}
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected StatusError to unwrap to ErrUpstream")
	}
}

func TestClassifyUpstreamError_Unknown(t *testing.T) {
	if got := ClassifyUpstreamError(errors.New("boom")); got != UpstreamUnknown {
		t.Fatalf("expected unknown, got=%s", got)
	}
}
