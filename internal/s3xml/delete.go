package s3xml

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/xml"
	"strings"
)

// BuildDeleteBody renders the Multi-Object-Delete request document for the
// given keys, in Quiet mode (S3 reports only errors, not every successful
// deletion). Callers must not invoke this with an empty key list;
// DeleteObjects rejects that before a transaction is built.
func BuildDeleteBody(keys []string) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<Delete xmlns="http://s3.amazonaws.com/doc/2006-03-01/"><Quiet>true</Quiet>`)
	for _, k := range keys {
		b.WriteString("<Object><Key>")
		b.WriteString(EscapeXML(k))
		b.WriteString("</Key></Object>")
	}
	b.WriteString("</Delete>")
	return []byte(b.String())
}

// ContentMD5 returns the base64-encoded MD5 digest of body, the value the
// Multi-Object-Delete API requires in the Content-MD5 header on every
// request regardless of body size.
func ContentMD5(body []byte) string {
	sum := md5.Sum(body)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// DeleteError is one per-key failure reported in a Multi-Object-Delete
// response. In Quiet mode, S3 omits successes and reports only these.
type DeleteError struct {
	Key     string
	Code    string
	Message string
}

type deleteResult struct {
	XMLName xml.Name `xml:"DeleteResult"`
	Errors  []struct {
		Key     string `xml:"Key"`
		Code    string `xml:"Code"`
		Message string `xml:"Message"`
	} `xml:"Error"`
}

// ParseDeleteResult decodes a Multi-Object-Delete response body and
// returns the per-key errors it reports. An empty, non-nil slice with a
// nil error means every key was deleted; a non-nil error means the body
// itself could not be decoded.
func ParseDeleteResult(body []byte) ([]DeleteError, error) {
	var parsed deleteResult
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	errs := make([]DeleteError, 0, len(parsed.Errors))
	for _, e := range parsed.Errors {
		errs = append(errs, DeleteError{Key: e.Key, Code: e.Code, Message: e.Message})
	}
	return errs, nil
}

// EscapeXML escapes the five XML-significant characters in s. It exists
// instead of encoding/xml.EscapeText because the delete body is built by
// hand as a string, not through an xml.Encoder.
func EscapeXML(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\'':
			b.WriteString("&apos;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
