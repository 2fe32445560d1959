package s3log

import "fmt"

// Message is implemented by every event the logger can emit, mirroring
// how s5cmd's own logger decouples "what happened" from "how it's
// rendered" (text vs JSON).
type Message interface {
	String() string
	JSON() string
}

// RequestEvent records a transaction's lifecycle: submitted, started
// executing, or finished (successfully or not).
type RequestEvent struct {
	Op       string
	Bucket   string
	Key      string
	Status   string // "submitted", "started", "done", "failed"
	Detail   string
	Duration string
}

func (m RequestEvent) String() string {
	if m.Detail != "" {
		return fmt.Sprintf("%-6s %s s3://%s/%s %s (%s)", m.Op, m.Status, m.Bucket, m.Key, m.Duration, m.Detail)
	}
	return fmt.Sprintf("%-6s %s s3://%s/%s %s", m.Op, m.Status, m.Bucket, m.Key, m.Duration)
}

func (m RequestEvent) JSON() string {
	return fmt.Sprintf(
		`{"operation":%q,"bucket":%q,"key":%q,"status":%q,"detail":%q,"duration":%q}`,
		m.Op, m.Bucket, m.Key, m.Status, m.Detail, m.Duration,
	)
}

// PlainMessage wraps a bare string for ad-hoc log lines that don't warrant
// their own Message type.
type PlainMessage string

func (m PlainMessage) String() string { return string(m) }
func (m PlainMessage) JSON() string   { return fmt.Sprintf("{%q:%q}", "message", string(m)) }
