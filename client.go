package s3client

import (
	"net"
	"net/http"
	"sync"

	"github.com/ShelbyKS/s3-client/internal/backend"
	"github.com/ShelbyKS/s3-client/internal/request"
	"github.com/ShelbyKS/s3-client/internal/s3log"
	"github.com/ShelbyKS/s3-client/s3err"
)

var globalInit sync.Once

// Client is the root façade: one Client owns one pooled *http.Client, one
// backend (Serial or Multiplexed), and the Stats counters every operation
// updates. It is safe for concurrent use by multiple goroutines.
type Client struct {
	opts   Options
	cfg    request.Config
	be     backend.Backend
	logger *s3log.Logger

	Stats *Stats

	mu      sync.Mutex
	closed  bool
	lastErr error
}

// New validates opts, applies its defaults, and returns a ready Client.
// The first call to New in a process also performs a one-time global
// init (nothing today needs global mutable state beyond what Go's
// runtime already manages, but the hook is kept so a future dependency
// with real process-wide init — a crypto provider, a metrics registry —
// has somewhere to hang it).
func New(opts Options) (*Client, error) {
	var initErr error
	globalInit.Do(func() {
		initErr = globalInitOnce()
	})
	if initErr != nil {
		return nil, initErr
	}

	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, s3err.New(s3err.InvalidArg, "invalid options", err)
	}

	httpClient := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext:         (&net.Dialer{Timeout: opts.ConnectTimeout}).DialContext,
			MaxConnsPerHost:     opts.MaxConnectionsPerHost,
			MaxIdleConnsPerHost: opts.MaxConnectionsPerHost,
			MaxIdleConns:        opts.MaxTotalConnections,
		},
	}

	var be backend.Backend
	switch opts.Backend {
	case BackendMultiplexed:
		be = backend.NewMultiplexed(httpClient, int64(opts.MaxTotalConnections))
	default:
		be = backend.NewSerial(httpClient)
	}

	logger := s3log.New(s3log.Options{Level: opts.logLevel(), JSON: opts.LogJSON})

	return &Client{
		opts: opts,
		cfg: request.Config{
			Endpoint: opts.Endpoint,
			Region:   opts.Region,
			Creds:    opts.credentials(),
			UseSigV4: opts.UseSigV4,
		},
		be:     be,
		logger: logger,
		Stats:  &Stats{},
	}, nil
}

func globalInitOnce() error {
	return nil
}

// Close shuts the backend down (draining any in-flight multiplexed
// transactions) and stops the logger. It is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.be.Close()
	c.logger.Close()
	return err
}

// LastError returns the error reported by the most recent operation on
// this Client, or nil if that operation succeeded. It complements the per-call error return for callers
// embedding this library behind a host-language binding whose native
// idiom is "check a last-error slot" rather than propagating a return
// value; Go callers always have the richer per-call error already.
func (c *Client) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Client) setLastError(err error) error {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
	return err
}

func (c *Client) closedErr() error {
	return s3err.New(s3err.Init, "s3client: client is closed", nil)
}
