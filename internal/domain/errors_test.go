package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "pricecache.load",
		Kind: KindCorruptState,
		Path: "/tmp/cache.json",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindCorruptState {
		t.Fatalf("expected kind %s", KindCorruptState)
	}

	msg := err.Error()
	for _, want := range []string{"pricecache.load", "corrupt_state", "/tmp/cache.json", "root"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("resolve from: %w", &OpError{
		Op:   "nsapi.stations",
		Kind: KindUpstream,
		Err:  ErrUpstream,
	})

	if !IsKind(err, KindUpstream) {
		t.Fatalf("expected IsKind to see through fmt.Errorf wrapping")
	}
	if IsKind(err, KindNotFound) {
		t.Fatalf("expected kind mismatch")
	}
	if IsKind(errors.New("plain"), KindUpstream) {
		t.Fatalf("plain errors carry no kind")
	}
}

func TestNilOpError(t *testing.T) {
	var err *OpError
	if err.Error() != "<nil>" {
		t.Fatalf("unexpected nil message %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}
