package s3client

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/ShelbyKS/s3-client/internal/ioutil"
	"github.com/ShelbyKS/s3-client/internal/request"
	"github.com/ShelbyKS/s3-client/internal/s3log"
	"github.com/ShelbyKS/s3-client/internal/s3xml"
	"github.com/ShelbyKS/s3-client/s3err"
)

// ObjectInfo describes one object reported by ListObjects.
type ObjectInfo = s3xml.ObjectInfo

// ListResult is the decoded, paginated result of ListObjects.
type ListResult = s3xml.ListResult

func (c *Client) checkOpen() error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return c.closedErr()
	}
	return nil
}

// PutObjectFD uploads size bytes read from fd starting at offset as the
// body of bucket/key. fd must remain open and untouched by other
// goroutines for the duration of the call; ReadAt is used throughout, so
// concurrent PutObjectFD calls against different regions of the same fd
// are safe.
func (c *Client) PutObjectFD(ctx context.Context, bucket, key string, fd *os.File, offset, size int64) error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	txn, err := request.PutObjectFD(ctx, c.cfg, bucket, key, fd, offset, size)
	if err != nil {
		return c.setLastError(s3err.New(s3err.InvalidArg, "build PutObject transaction", err))
	}

	_, err = c.be.Execute(ctx, txn)
	c.Stats.recordResult(StatPutObjectOK, StatPutObjectFail, err)
	c.logResult(txn, bucket, key, err)
	return c.setLastError(err)
}

// GetObjectFD downloads bucket/key into fd starting at offset, never
// writing past sizeLimit bytes; a sizeLimit of 0 means uncapped.
func (c *Client) GetObjectFD(ctx context.Context, bucket, key string, fd *os.File, offset, sizeLimit int64) error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	txn, err := request.GetObjectFD(ctx, c.cfg, bucket, key, fd, offset, sizeLimit)
	if err != nil {
		return c.setLastError(s3err.New(s3err.InvalidArg, "build GetObject transaction", err))
	}

	_, err = c.be.Execute(ctx, txn)
	c.Stats.recordResult(StatGetObjectOK, StatGetObjectFail, err)
	c.logResult(txn, bucket, key, err)
	return c.setLastError(err)
}

// CreateBucket creates bucket in the region this Client was configured
// for.
func (c *Client) CreateBucket(ctx context.Context, bucket string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	txn, err := request.CreateBucket(ctx, c.cfg, bucket)
	if err != nil {
		return c.setLastError(s3err.New(s3err.InvalidArg, "build CreateBucket transaction", err))
	}

	_, err = c.be.Execute(ctx, txn)
	c.Stats.recordResult(StatCreateBucketOK, StatCreateBucketFail, err)
	c.logResult(txn, bucket, "", err)
	return c.setLastError(err)
}

// ListObjects lists up to maxKeys objects in bucket under prefix,
// grouping common prefixes by delimiter. Pass the previous call's
// NextContinuationToken to page through a truncated result.
func (c *Client) ListObjects(ctx context.Context, bucket, prefix, delimiter, continuationToken string, maxKeys int) (*ListResult, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	buf := c.opts.BufferPool.Get()
	defer c.opts.BufferPool.Put(buf)

	txn, err := request.ListObjectsV2(ctx, c.cfg, bucket, prefix, delimiter, continuationToken, maxKeys, buf)
	if err != nil {
		err = c.setLastError(s3err.New(s3err.InvalidArg, "build ListObjectsV2 transaction", err))
		return nil, err
	}

	_, err = c.be.Execute(ctx, txn)
	c.Stats.recordResult(StatListObjectsOK, StatListObjectsFail, err)
	c.logResult(txn, bucket, prefix, err)
	if err != nil {
		return nil, c.setLastError(err)
	}

	result, err := s3xml.ParseListObjectsV2(buf.Bytes())
	if err != nil {
		return nil, c.setLastError(s3err.New(s3err.Http, "parse ListObjectsV2 response", err))
	}
	return result, nil
}

// DeleteObjects deletes every key in keys from bucket in a single
// Multi-Object-Delete request. keys must not be empty. S3 reports
// per-key failures (a locked object, a missing permission) in the
// response body even on a 200 status; those are collected into a single
// aggregate error rather than being silently swallowed.
func (c *Client) DeleteObjects(ctx context.Context, bucket string, keys []string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	bodyBuf := c.opts.BufferPool.Get()
	defer c.opts.BufferPool.Put(bodyBuf)

	txn, err := request.DeleteObjects(ctx, c.cfg, bucket, keys, bodyBuf)
	if err != nil {
		return c.setLastError(s3err.New(s3err.InvalidArg, "build DeleteObjects transaction", err))
	}

	respBuf := c.opts.BufferPool.Get()
	defer c.opts.BufferPool.Put(respBuf)
	txn.Sink = ioutil.NewMemSink(respBuf)

	_, err = c.be.Execute(ctx, txn)
	if err == nil {
		err = partialDeleteErr(respBuf.Bytes())
	}
	c.Stats.recordResult(StatDeleteObjectsOK, StatDeleteObjectsFail, err)
	c.logResult(txn, bucket, "", err)
	return c.setLastError(err)
}

// partialDeleteErr inspects a Multi-Object-Delete response body for
// per-key errors and, if any are present, aggregates them into one
// *s3err.Error. A malformed response body is reported as s3err.Http
// rather than silently ignored.
func partialDeleteErr(body []byte) error {
	deleteErrs, err := s3xml.ParseDeleteResult(body)
	if err != nil {
		return s3err.New(s3err.Http, "parse DeleteObjects response", err)
	}
	if len(deleteErrs) == 0 {
		return nil
	}

	var merr *multierror.Error
	for _, de := range deleteErrs {
		merr = multierror.Append(merr, fmt.Errorf("delete %s: %s: %s", de.Key, de.Code, de.Message))
	}
	return s3err.New(s3err.Http, "one or more keys failed to delete", merr.ErrorOrNil())
}

func (c *Client) logResult(txn *request.Transaction, bucket, key string, err error) {
	status := "done"
	detail := ""
	if err != nil {
		status = "failed"
		detail = err.Error()
		c.logger.Error(s3log.RequestEvent{Op: txn.Op(), Bucket: bucket, Key: key, Status: status, Detail: detail})
		return
	}
	c.logger.Info(s3log.RequestEvent{Op: txn.Op(), Bucket: bucket, Key: key, Status: status})
}
