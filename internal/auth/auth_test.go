package auth

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestBasic(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://example.com/bucket/key", nil)
	Basic(req, Credentials{AccessKeyID: "AKID", SecretAccessKey: "secret"})

	user, pass, ok := req.BasicAuth()
	if !ok {
		t.Fatal("expected basic auth to be set")
	}
	if user != "AKID" || pass != "secret" {
		t.Fatalf("got user=%q pass=%q", user, pass)
	}
	if req.Header.Get("x-amz-security-token") != "" {
		t.Errorf("expected no session token header when none was supplied")
	}
}

func TestBasicSetsSessionToken(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://example.com/bucket/key", nil)
	Basic(req, Credentials{AccessKeyID: "AKID", SecretAccessKey: "secret", SessionToken: "token123"})

	if req.Header.Get("x-amz-security-token") != "token123" {
		t.Errorf("expected session token header to be set in Basic mode")
	}
}

func TestSignV4SetsAuthorizationAndToken(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPut, "https://s3.example.com/bucket/key", nil)
	req.Header.Set("x-amz-content-sha256", UnsignedPayload)

	creds := Credentials{
		AccessKeyID:     "AKID",
		SecretAccessKey: "secret",
		SessionToken:    "token123",
	}

	err := SignV4(context.Background(), req, creds, "us-east-1", "s3", UnsignedPayload)
	if err != nil {
		t.Fatalf("SignV4 returned error: %v", err)
	}

	if req.Header.Get("x-amz-security-token") != "token123" {
		t.Errorf("expected session token header to be set")
	}
	authz := req.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "AWS4-HMAC-SHA256 ") {
		t.Errorf("expected SigV4 Authorization header, got %q", authz)
	}
	if !strings.Contains(authz, "Credential=AKID/") {
		t.Errorf("expected access key in credential scope, got %q", authz)
	}
}

func TestHashPayload(t *testing.T) {
	// known SHA-256 of empty string
	got := HashPayload(nil)
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != want {
		t.Errorf("HashPayload(nil) = %q, want %q", got, want)
	}
}
