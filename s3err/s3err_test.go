package s3err

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromHTTPStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   Code
	}{
		{"ok", 200, OK},
		{"no content", 204, OK},
		{"unauthorized", 401, Auth},
		{"forbidden", 403, AccessDenied},
		{"not found", 404, NotFound},
		{"bad request", 400, Http},
		{"request timeout", 408, Timeout},
		{"server error", 500, Http},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromHTTPStatus(tc.status, "msg")
			if got.Code != tc.want {
				t.Errorf("FromHTTPStatus(%d) code = %v, want %v", tc.status, got.Code, tc.want)
			}
			if got.HTTPStatus != tc.status {
				t.Errorf("HTTPStatus = %d, want %d", got.HTTPStatus, tc.status)
			}
		})
	}
}

func TestFromTransportError(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		got := FromTransportError(context.Canceled)
		if got.Code != Cancelled {
			t.Fatalf("code = %v, want Cancelled", got.Code)
		}
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		got := FromTransportError(context.DeadlineExceeded)
		if got.Code != Timeout {
			t.Fatalf("code = %v, want Timeout", got.Code)
		}
	})

	t.Run("net op error dial maps to Init", func(t *testing.T) {
		opErr := &net.OpError{Op: "dial", Err: errors.New("refused")}
		got := FromTransportError(opErr)
		if got.Code != Init {
			t.Fatalf("code = %v, want Init", got.Code)
		}
		if got.TransportCode != "dial" {
			t.Fatalf("TransportCode = %q, want %q", got.TransportCode, "dial")
		}
	})

	t.Run("net op error read maps to Io", func(t *testing.T) {
		opErr := &net.OpError{Op: "read", Err: errors.New("reset")}
		got := FromTransportError(opErr)
		if got.Code != Io {
			t.Fatalf("code = %v, want Io", got.Code)
		}
	})

	t.Run("net op error other maps to Transport", func(t *testing.T) {
		opErr := &net.OpError{Op: "close", Err: errors.New("broken")}
		got := FromTransportError(opErr)
		if got.Code != Transport {
			t.Fatalf("code = %v, want Transport", got.Code)
		}
	})

	t.Run("nil returns nil", func(t *testing.T) {
		if FromTransportError(nil) != nil {
			t.Fatal("expected nil")
		}
	})
}

func TestErrorIs(t *testing.T) {
	base := New(NotFound, "missing", nil)
	wrapped := New(Internal, "wrapping", base)

	if !errors.Is(wrapped, base) {
		t.Fatal("expected Unwrap chain to expose base error")
	}

	target := New(NotFound, "", nil)
	if !errors.Is(base, target) {
		t.Fatal("expected Is() to match on Code")
	}
}

func TestIsCode(t *testing.T) {
	err := New(Timeout, "slow", nil)
	if !IsCode(err, Timeout) {
		t.Fatal("expected IsCode to match")
	}
	if IsCode(err, Cancelled) {
		t.Fatal("expected IsCode to not match different code")
	}
	if diff := cmp.Diff("Timeout: slow", err.Error()); diff != "" {
		t.Fatalf("Error() mismatch (-want +got):\n%s", diff)
	}
}
