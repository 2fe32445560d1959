// Package auth applies authentication to an outgoing *http.Request, either
// HTTP Basic (for S3-compatible stores that front themselves with a
// reverse proxy) or AWS Signature Version 4.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
)

// UnsignedPayload is the SigV4 sentinel payload hash used for request
// bodies streamed from a file descriptor, which cannot be hashed up front
// without reading the whole object into memory first.
const UnsignedPayload = "UNSIGNED-PAYLOAD"

// Credentials mirrors the subset of aws.Credentials this module's callers
// supply; it exists so package auth doesn't force every caller to import
// the AWS SDK just to build a Client.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Basic sets HTTP Basic auth on req using the access key as username and
// the secret key as password. A non-empty SessionToken is added as the
// x-amz-security-token header, same as SignV4 does for SigV4 mode.
func Basic(req *http.Request, creds Credentials) {
	req.SetBasicAuth(creds.AccessKeyID, creds.SecretAccessKey)
	if creds.SessionToken != "" {
		req.Header.Set("x-amz-security-token", creds.SessionToken)
	}
}

// SignV4 signs req with AWS Signature Version 4 for the given region and
// service ("s3"). payloadHash must be either a precomputed SHA-256 hex
// digest of a fully-buffered body, or UnsignedPayload for a streamed body.
// A non-empty SessionToken is added as the x-amz-security-token header
// before signing, so it is covered by the signature.
func SignV4(ctx context.Context, req *http.Request, creds Credentials, region, service, payloadHash string) error {
	if creds.SessionToken != "" {
		req.Header.Set("x-amz-security-token", creds.SessionToken)
	}

	signer := v4.NewSigner()
	awsCreds := aws.Credentials{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
	}

	return signer.SignHTTP(ctx, awsCreds, req, payloadHash, service, region, time.Now())
}

// HashPayload returns the SHA-256 hex digest of a fully-buffered body, for
// requests (DeleteObjects) whose body is already in memory and cheap to
// hash.
func HashPayload(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
