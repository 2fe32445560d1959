// Package s3client is the request-execution core: it builds transactions,
// runs them against a pooled *http.Client through a Serial or Multiplexed
// backend, and classifies the result into the s3err taxonomy. It does not
// implement multipart upload, presigned URLs, ACL management beyond
// bucket creation, retry/backoff, or chunked-transfer streaming
// signatures — those are out of scope for this module.
package s3client

import (
	"fmt"
	"time"

	"github.com/ShelbyKS/s3-client/internal/auth"
	"github.com/ShelbyKS/s3-client/internal/ioutil"
	"github.com/ShelbyKS/s3-client/internal/s3log"
)

// BackendKind selects which execution backend a Client runs transactions
// through.
type BackendKind int

const (
	// BackendSerial runs each transaction synchronously on the calling
	// goroutine.
	BackendSerial BackendKind = iota
	// BackendMultiplexed fans transactions out across a dispatcher
	// goroutine and a bounded pool of worker goroutines.
	BackendMultiplexed
)

// Options configures a Client. Endpoint, Region, AccessKey, and SecretKey
// are required; everything else has a sensible default.
type Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	// SessionToken is optional, for temporary/STS credentials.
	SessionToken string
	// UseSigV4 selects AWS SigV4 signing. When false, HTTP Basic auth is
	// applied instead (for S3-compatible stores fronted by a basic-auth
	// reverse proxy).
	UseSigV4 bool

	Backend BackendKind

	ConnectTimeout        time.Duration
	RequestTimeout        time.Duration
	MaxTotalConnections   int
	MaxConnectionsPerHost int

	// DriverIdlePoll is a tuning knob carried over from a poll-driven
	// transport; the Multiplexed backend's dispatcher blocks on a channel
	// instead of polling, so the value is accepted but currently unused.
	DriverIdlePoll time.Duration

	LogLevel string
	LogJSON  bool

	// BufferPool supplies the MemBufs ListObjects and DeleteObjects build
	// their request/response bodies in. A Client given no pool allocates
	// its own default, shared by nothing else, so callers that want
	// cross-client buffer reuse must pass one in explicitly.
	BufferPool *ioutil.BufferPool
}

const (
	defaultConnectTimeout        = 5 * time.Second
	defaultRequestTimeout        = 30 * time.Second
	defaultMaxTotalConnections   = 64
	defaultMaxConnectionsPerHost = 16
	defaultDriverIdlePoll        = 50 * time.Millisecond
)

// withDefaults returns a copy of o with every zero-valued tunable field
// filled in from its default.
func (o Options) withDefaults() Options {
	if o.ConnectTimeout == 0 {
		o.ConnectTimeout = defaultConnectTimeout
	}
	if o.RequestTimeout == 0 {
		o.RequestTimeout = defaultRequestTimeout
	}
	if o.MaxTotalConnections == 0 {
		o.MaxTotalConnections = defaultMaxTotalConnections
	}
	if o.MaxConnectionsPerHost == 0 {
		o.MaxConnectionsPerHost = defaultMaxConnectionsPerHost
	}
	if o.DriverIdlePoll == 0 {
		o.DriverIdlePoll = defaultDriverIdlePoll
	}
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if o.BufferPool == nil {
		o.BufferPool = ioutil.NewBufferPool()
	}
	return o
}

// validate checks the fields a caller must supply.
func (o Options) validate() error {
	if o.Endpoint == "" {
		return fmt.Errorf("s3client: Endpoint must not be empty")
	}
	if o.Region == "" {
		return fmt.Errorf("s3client: Region must not be empty")
	}
	if o.AccessKey == "" {
		return fmt.Errorf("s3client: AccessKey must not be empty")
	}
	if o.SecretKey == "" {
		return fmt.Errorf("s3client: SecretKey must not be empty")
	}
	if o.ConnectTimeout < 0 {
		return fmt.Errorf("s3client: ConnectTimeout must not be negative")
	}
	if o.RequestTimeout < 0 {
		return fmt.Errorf("s3client: RequestTimeout must not be negative")
	}
	if o.MaxTotalConnections < 0 {
		return fmt.Errorf("s3client: MaxTotalConnections must not be negative")
	}
	if o.MaxConnectionsPerHost < 0 {
		return fmt.Errorf("s3client: MaxConnectionsPerHost must not be negative")
	}
	return nil
}

func (o Options) credentials() auth.Credentials {
	return auth.Credentials{
		AccessKeyID:     o.AccessKey,
		SecretAccessKey: o.SecretKey,
		SessionToken:    o.SessionToken,
	}
}

func (o Options) logLevel() s3log.Level {
	return s3log.LevelFromString(o.LogLevel)
}
