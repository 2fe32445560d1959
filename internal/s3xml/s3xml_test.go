package s3xml

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseListObjectsV2(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult>
  <IsTruncated>true</IsTruncated>
  <NextContinuationToken>tok123</NextContinuationToken>
  <Contents>
    <Key>a.txt</Key>
    <Size>10</Size>
    <ETag>"abc"</ETag>
    <LastModified>2024-01-01T00:00:00.000Z</LastModified>
    <StorageClass>STANDARD</StorageClass>
  </Contents>
  <Contents>
    <Key>b.txt</Key>
    <Size>20</Size>
    <ETag>"def"</ETag>
    <LastModified>2024-01-02T00:00:00.000Z</LastModified>
    <StorageClass>STANDARD_IA</StorageClass>
  </Contents>
  <CommonPrefixes>
    <Prefix>dir/</Prefix>
  </CommonPrefixes>
</ListBucketResult>`)

	got, err := ParseListObjectsV2(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &ListResult{
		IsTruncated:           true,
		NextContinuationToken: "tok123",
		Objects: []ObjectInfo{
			{Key: "a.txt", Size: 10, ETag: "abc", LastModified: "2024-01-01T00:00:00.000Z", StorageClass: "STANDARD"},
			{Key: "b.txt", Size: 20, ETag: "def", LastModified: "2024-01-02T00:00:00.000Z", StorageClass: "STANDARD_IA"},
		},
		CommonPrefixes: []string{"dir/"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseListObjectsV2 mismatch (-want +got):\n%s", diff)
	}
}

func TestParseListObjectsV2Malformed(t *testing.T) {
	_, err := ParseListObjectsV2([]byte("not xml"))
	if err == nil {
		t.Fatal("expected an error for malformed XML")
	}
}

func TestBuildDeleteBody(t *testing.T) {
	body := BuildDeleteBody([]string{"a.txt", "b&c.txt"})
	s := string(body)
	if !strings.Contains(s, "<Key>a.txt</Key>") {
		t.Errorf("missing escaped key a.txt in %s", s)
	}
	if !strings.Contains(s, "<Key>b&amp;c.txt</Key>") {
		t.Errorf("missing escaped key b&amp;c.txt in %s", s)
	}
	if !strings.Contains(s, "<Quiet>true</Quiet>") {
		t.Errorf("expected quiet mode in %s", s)
	}
}

func TestParseDeleteResult(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<DeleteResult>
  <Error>
    <Key>locked.txt</Key>
    <Code>AccessDenied</Code>
    <Message>Access Denied</Message>
  </Error>
</DeleteResult>`)

	got, err := ParseDeleteResult(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []DeleteError{{Key: "locked.txt", Code: "AccessDenied", Message: "Access Denied"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDeleteResult mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDeleteResultAllSucceeded(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?><DeleteResult></DeleteResult>`)
	got, err := ParseDeleteResult(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no errors, got %v", got)
	}
}

func TestContentMD5(t *testing.T) {
	// RFC 1321 test vector: MD5("") base64-encoded.
	got := ContentMD5([]byte(""))
	want := "1B2M2Y8AsgTpgAmY7PhCfg=="
	if got != want {
		t.Errorf("ContentMD5(\"\") = %q, want %q", got, want)
	}
}

func TestEscapeXML(t *testing.T) {
	got := EscapeXML(`a&b<c>d'e"f`)
	want := "a&amp;b&lt;c&gt;d&apos;e&quot;f"
	if got != want {
		t.Errorf("EscapeXML = %q, want %q", got, want)
	}
}
