// Package s3xml builds and parses the XML bodies the S3 REST API exchanges
// for ListObjectsV2 and Multi-Object-Delete.
package s3xml

import (
	"encoding/xml"
	"strings"
)

// ObjectInfo describes one object returned by ListObjectsV2.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	LastModified string
	StorageClass string
}

// ListResult is the decoded form of a ListObjectsV2 response.
type ListResult struct {
	Objects               []ObjectInfo
	CommonPrefixes        []string
	IsTruncated           bool
	NextContinuationToken string
}

type listBucketResult struct {
	XMLName               xml.Name `xml:"ListBucketResult"`
	IsTruncated           bool     `xml:"IsTruncated"`
	NextContinuationToken string   `xml:"NextContinuationToken"`
	Contents              []struct {
		Key          string `xml:"Key"`
		Size         int64  `xml:"Size"`
		ETag         string `xml:"ETag"`
		LastModified string `xml:"LastModified"`
		StorageClass string `xml:"StorageClass"`
	} `xml:"Contents"`
	CommonPrefixes []struct {
		Prefix string `xml:"Prefix"`
	} `xml:"CommonPrefixes"`
}

// ParseListObjectsV2 decodes a ListObjectsV2 response body. A malformed
// document is reported as s3err.Http by the caller, not NoMem; this
// parser imposes no size ceiling and never leads to NoMem.
func ParseListObjectsV2(body []byte) (*ListResult, error) {
	var parsed listBucketResult
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	result := &ListResult{
		IsTruncated:           parsed.IsTruncated,
		NextContinuationToken: parsed.NextContinuationToken,
	}
	for _, c := range parsed.Contents {
		result.Objects = append(result.Objects, ObjectInfo{
			Key:          c.Key,
			Size:         c.Size,
			ETag:         stripQuotes(c.ETag),
			LastModified: c.LastModified,
			StorageClass: c.StorageClass,
		})
	}
	for _, p := range parsed.CommonPrefixes {
		result.CommonPrefixes = append(result.CommonPrefixes, p.Prefix)
	}
	return result, nil
}

// stripQuotes removes one leading and one trailing '"' from an S3 ETag,
// which the REST API always wraps in literal quote characters.
func stripQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
