package ioutil

import (
	"io"
	"os"
	"testing"
)

func TestFDSinkCapsWrites(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "fdsink")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer f.Close()

	sink := NewFDSink(f, 0, 5)
	if _, err := sink.Write([]byte("hello")); err != nil {
		t.Fatalf("Write within limit: %v", err)
	}
	if _, err := sink.Write([]byte("x")); err != io.ErrShortWrite {
		t.Fatalf("Write past limit: err = %v, want io.ErrShortWrite", err)
	}
}

func TestFDSinkUncappedWhenSizeLimitZero(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "fdsink")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer f.Close()

	sink := NewFDSink(f, 0, 0)
	large := make([]byte, 1<<20)
	n, err := sink.Write(large)
	if err != nil {
		t.Fatalf("uncapped Write: %v", err)
	}
	if n != len(large) {
		t.Errorf("n = %d, want %d", n, len(large))
	}
	if sink.Written() != int64(len(large)) {
		t.Errorf("Written() = %d, want %d", sink.Written(), len(large))
	}
}

func TestMemSinkWritesIntoMemBuf(t *testing.T) {
	buf := NewMemBuf()
	sink := NewMemSink(buf)
	if _, err := sink.Write([]byte("listing body")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if string(buf.Bytes()) != "listing body" {
		t.Errorf("Bytes() = %q, want %q", buf.Bytes(), "listing body")
	}
}
