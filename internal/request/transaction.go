// Package request builds the Transaction value each backend executes: a
// fully-prepared *http.Request plus the Sink bound to its response body.
// It is the Go translation of an easy-handle construction pipeline —
// allocate, wire I/O, build URL, apply options, apply auth, attach
// headers.
package request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/ShelbyKS/s3-client/internal/auth"
	"github.com/ShelbyKS/s3-client/internal/ioutil"
	"github.com/ShelbyKS/s3-client/internal/s3xml"
	"github.com/ShelbyKS/s3-client/internal/urlbuild"
	"github.com/ShelbyKS/s3-client/s3err"
)

// maxRegionLength bounds the region name SigV4 signs against; a
// pathologically long region is almost certainly a caller bug (a copied
// endpoint, a config typo) rather than a real AWS region.
const maxRegionLength = 120

// Transaction is a single prepared S3 operation, ready to be handed to a
// backend for execution. It is the Go analogue of a libcurl easy handle:
// Req is signed and ready to send, Sink receives the response body.
type Transaction struct {
	Req  *http.Request
	Sink ioutil.Sink

	// op names the operation for logging/Stats bookkeeping; it is not
	// sent on the wire.
	op string
}

// Op reports the operation name this transaction was built for.
func (t *Transaction) Op() string { return t.op }

// Config carries the client-wide settings every builder needs: the
// endpoint, the region this transaction targets, and the credentials/auth
// mode to apply.
type Config struct {
	Endpoint string
	Region   string
	Creds    auth.Credentials
	// UseSigV4 selects AWS SigV4 signing; otherwise HTTP Basic is applied.
	UseSigV4 bool
}

// apply sets the Authorization (or Basic) header on req, given the
// payload hash SigV4 needs ("UNSIGNED-PAYLOAD" for a streamed body, a
// real SHA-256 hex digest for a buffered one).
func (c Config) apply(ctx context.Context, req *http.Request, payloadHash string) error {
	if !c.UseSigV4 {
		auth.Basic(req, c.Creds)
		return nil
	}
	if len(c.Region) > maxRegionLength {
		return s3err.New(s3err.Internal, fmt.Sprintf("region exceeds %d characters", maxRegionLength), nil)
	}
	req.Header.Set("x-amz-content-sha256", payloadHash)
	if err := auth.SignV4(ctx, req, c.Creds, c.Region, "s3", payloadHash); err != nil {
		return s3err.New(s3err.Init, "SigV4 signing failed", err)
	}
	return nil
}

// bodySource is the Read method set build needs from a request body; any
// ioutil.Source satisfies it.
type bodySource interface {
	Read([]byte) (int, error)
}

func build(ctx context.Context, method, url string, body bodySource, op string) (*Transaction, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = body
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	return &Transaction{Req: req, op: op}, nil
}

// PutObjectFD builds a PUT request streaming size bytes from fd starting
// at offset as the object body. fd must be a valid, readable file; size
// must be strictly positive.
func PutObjectFD(ctx context.Context, cfg Config, bucket, key string, fd *os.File, offset, size int64) (*Transaction, error) {
	if fd == nil {
		return nil, fmt.Errorf("PutObjectFD: fd must not be nil")
	}
	if size <= 0 {
		return nil, fmt.Errorf("PutObjectFD: size must be > 0, got %d", size)
	}
	if offset < 0 {
		return nil, fmt.Errorf("PutObjectFD: offset must be >= 0, got %d", offset)
	}

	src := ioutil.NewFDSource(fd, offset, size)
	txn, err := build(ctx, http.MethodPut, urlbuild.Join(cfg.Endpoint, bucket, key), src, "PutObject")
	if err != nil {
		return nil, err
	}
	txn.Req.ContentLength = size
	txn.Sink = ioutil.NoneSink{}

	if err := cfg.apply(ctx, txn.Req, auth.UnsignedPayload); err != nil {
		return nil, err
	}
	return txn, nil
}

// GetObjectFD builds a GET request that streams the response body into fd
// starting at offset. sizeLimit caps how many bytes are written; 0 means
// uncapped. The response sink is always an FDSink for this operation;
// there is no in-memory GET.
func GetObjectFD(ctx context.Context, cfg Config, bucket, key string, fd *os.File, offset, sizeLimit int64) (*Transaction, error) {
	if fd == nil {
		return nil, fmt.Errorf("GetObjectFD: fd must not be nil")
	}
	if sizeLimit < 0 {
		return nil, fmt.Errorf("GetObjectFD: sizeLimit must be >= 0, got %d", sizeLimit)
	}

	txn, err := build(ctx, http.MethodGet, urlbuild.Join(cfg.Endpoint, bucket, key), nil, "GetObject")
	if err != nil {
		return nil, err
	}
	txn.Sink = ioutil.NewFDSink(fd, offset, sizeLimit)

	payloadHash := auth.HashPayload(nil)
	if err := cfg.apply(ctx, txn.Req, payloadHash); err != nil {
		return nil, err
	}
	return txn, nil
}

// CreateBucket builds a PUT against the bucket root with an empty body —
// S3's CreateBucket call never carries a LocationConstraint document in
// this module (single-region deployments only).
func CreateBucket(ctx context.Context, cfg Config, bucket string) (*Transaction, error) {
	if bucket == "" {
		return nil, fmt.Errorf("CreateBucket: bucket must not be empty")
	}

	txn, err := build(ctx, http.MethodPut, urlbuild.Join(cfg.Endpoint, bucket, ""), nil, "CreateBucket")
	if err != nil {
		return nil, err
	}
	txn.Req.ContentLength = 0
	txn.Sink = ioutil.NoneSink{}

	payloadHash := auth.HashPayload(nil)
	if err := cfg.apply(ctx, txn.Req, payloadHash); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListObjectsV2 builds a GET request against the bucket root with the
// list-type=2 query, collecting the raw response body into buf (a MemSink, since
// listings are always small enough to buffer).
func ListObjectsV2(ctx context.Context, cfg Config, bucket, prefix, delimiter, continuationToken string, maxKeys int, buf *ioutil.MemBuf) (*Transaction, error) {
	if bucket == "" {
		return nil, fmt.Errorf("ListObjectsV2: bucket must not be empty")
	}

	query := urlbuild.ListObjectsV2Query(prefix, delimiter, continuationToken, maxKeys)
	url := urlbuild.Join(cfg.Endpoint, bucket, "") + "?" + query

	txn, err := build(ctx, http.MethodGet, url, nil, "ListObjectsV2")
	if err != nil {
		return nil, err
	}
	txn.Sink = ioutil.NewMemSink(buf)

	payloadHash := auth.HashPayload(nil)
	if err := cfg.apply(ctx, txn.Req, payloadHash); err != nil {
		return nil, err
	}
	return txn, nil
}

// DeleteObjects builds a POST request against "<bucket>?delete" carrying
// the Multi-Object-Delete XML document for keys, fully buffered in memory
// and signed with its real SHA-256 hash (never UNSIGNED-PAYLOAD: S3's
// Multi-Object-Delete API requires a correct Content-MD5, and a real
// payload hash matches that stricter contract).
func DeleteObjects(ctx context.Context, cfg Config, bucket string, keys []string, buf *ioutil.MemBuf) (*Transaction, error) {
	if bucket == "" {
		return nil, fmt.Errorf("DeleteObjects: bucket must not be empty")
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("DeleteObjects: keys must not be empty")
	}
	for i, k := range keys {
		if k == "" {
			return nil, fmt.Errorf("DeleteObjects: key %d must not be empty", i)
		}
	}

	body := s3xml.BuildDeleteBody(keys)
	buf.Reset()
	_, _ = buf.Write(body)

	url := urlbuild.Join(cfg.Endpoint, bucket, "") + "?" + urlbuild.DeleteQuery
	src := ioutil.NewMemSource(buf.Bytes(), int64(buf.Len()))

	txn, err := build(ctx, http.MethodPost, url, src, "DeleteObjects")
	if err != nil {
		return nil, err
	}
	txn.Req.ContentLength = int64(len(body))
	txn.Req.Header.Set("Content-Type", "application/xml")
	txn.Req.Header.Set("Content-MD5", s3xml.ContentMD5(body))
	txn.Sink = ioutil.NoneSink{}

	payloadHash := auth.HashPayload(body)
	if err := cfg.apply(ctx, txn.Req, payloadHash); err != nil {
		return nil, err
	}
	return txn, nil
}
