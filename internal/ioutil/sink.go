package ioutil

import (
	"io"
	"os"
)

// Sink accepts a response body. It is the streaming replacement for an
// easy-handle's write callback.
type Sink interface {
	io.Writer
}

// NoneSink discards a response body (CreateBucket, DeleteObjects).
type NoneSink struct{}

func (NoneSink) Write(p []byte) (int, error) { return len(p), nil }

// FDSink writes a response body directly into an open file starting at
// baseOffset, using WriteAt so the transaction never perturbs the file's
// shared offset. SizeLimit of 0 means uncapped; any positive SizeLimit
// caps the number of bytes written and a write that would exceed it
// fails with io.ErrShortWrite. This is the only sink GetObjectFD accepts.
type FDSink struct {
	File       *os.File
	BaseOffset int64
	SizeLimit  int64

	written int64
}

// NewFDSink returns a ready Sink for GetObjectFD. It does not validate its
// arguments; the transaction builder does.
func NewFDSink(f *os.File, baseOffset, sizeLimit int64) *FDSink {
	return &FDSink{File: f, BaseOffset: baseOffset, SizeLimit: sizeLimit}
}

func (s *FDSink) Write(p []byte) (int, error) {
	if s.SizeLimit > 0 {
		remaining := s.SizeLimit - s.written
		if remaining <= 0 || int64(len(p)) > remaining {
			return 0, io.ErrShortWrite
		}
	}
	n, err := s.File.WriteAt(p, s.BaseOffset+s.written)
	s.written += int64(n)
	return n, err
}

// Written reports how many bytes have landed in the file so far.
func (s *FDSink) Written() int64 {
	return s.written
}

// MemSink accumulates a response body in memory (ListObjectsV2 responses).
type MemSink struct {
	Buf *MemBuf
}

// NewMemSink wraps buf as a Sink.
func NewMemSink(buf *MemBuf) *MemSink {
	return &MemSink{Buf: buf}
}

func (s *MemSink) Write(p []byte) (int, error) {
	return s.Buf.Write(p)
}
