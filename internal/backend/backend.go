// Package backend runs prepared Transactions against the network: Serial
// executes one at a time on the calling goroutine, Multiplexed fans work
// out across a bounded pool of goroutines behind a single dispatcher.
package backend

import (
	"context"
	"io"
	"net/http"

	"github.com/ShelbyKS/s3-client/internal/request"
	"github.com/ShelbyKS/s3-client/s3err"
)

// Result is what executing a Transaction produces: the HTTP status and,
// for operations with a response body, how many bytes landed in the Sink.
type Result struct {
	StatusCode int
	BytesRead  int64
	Header     http.Header
}

// Backend executes a Transaction and returns its Result, or an *s3err.Error
// classifying whatever went wrong.
type Backend interface {
	Execute(ctx context.Context, txn *request.Transaction) (*Result, error)
	// Close releases any resources the backend holds (connections,
	// goroutines) and stops accepting new work.
	Close() error
}

// execute runs txn.Req through client and streams the response body into
// txn.Sink, the bit of logic both Serial and Multiplexed share.
func execute(client *http.Client, txn *request.Transaction) (*Result, error) {
	resp, err := client.Do(txn.Req)
	if err != nil {
		return nil, s3err.FromTransportError(err)
	}
	defer resp.Body.Close()

	// An error response's body is an XML error document, not the caller's
	// requested payload — it must never reach the transaction's Sink (an
	// FDSink would happily write it into the caller's destination file).
	if resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, s3err.FromHTTPStatus(resp.StatusCode, resp.Status)
	}

	n, err := io.Copy(txn.Sink, resp.Body)
	if err != nil {
		return nil, s3err.New(s3err.Io, "reading response body", err)
	}

	return &Result{StatusCode: resp.StatusCode, BytesRead: n, Header: resp.Header}, nil
}
