package s3client

import "sync/atomic"

// StatKind enumerates the operation outcomes Client.Stats tracks: one
// success and one failure counter per public operation.
type StatKind int

const (
	StatPutObjectOK StatKind = iota
	StatPutObjectFail
	StatGetObjectOK
	StatGetObjectFail
	StatCreateBucketOK
	StatCreateBucketFail
	StatListObjectsOK
	StatListObjectsFail
	StatDeleteObjectsOK
	StatDeleteObjectsFail

	statKindCount
)

// Stats holds atomic counters for every operation this Client performs,
// safe to read concurrently with the goroutines driving a Multiplexed
// backend.
type Stats struct {
	counters [statKindCount]uint64
}

func (s *Stats) increment(kind StatKind) {
	atomic.AddUint64(&s.counters[kind], 1)
}

// Get atomically reads kind's counter.
func (s *Stats) Get(kind StatKind) uint64 {
	return atomic.LoadUint64(&s.counters[kind])
}

func (s *Stats) recordResult(okKind, failKind StatKind, err error) {
	if err != nil {
		s.increment(failKind)
		return
	}
	s.increment(okKind)
}
