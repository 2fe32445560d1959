package backend

import (
	"context"
	"net/http"

	"github.com/ShelbyKS/s3-client/internal/request"
)

// Serial executes every transaction synchronously on the calling
// goroutine against a shared *http.Client, relying on the Transport's own
// connection pooling for reuse: "do it here, now" — no internal
// concurrency of its own.
type Serial struct {
	client *http.Client
}

// NewSerial wraps client (already configured with the desired connection
// limits and timeouts) as a Serial backend.
func NewSerial(client *http.Client) *Serial {
	return &Serial{client: client}
}

// Execute runs txn.Req and streams its response into txn.Sink.
func (s *Serial) Execute(ctx context.Context, txn *request.Transaction) (*Result, error) {
	return execute(s.client, txn)
}

// Close is a no-op: Serial doesn't own the *http.Client's Transport, so it
// has nothing of its own to release. The caller (s3client.Client) owns
// the Transport's lifetime.
func (s *Serial) Close() error {
	return nil
}
