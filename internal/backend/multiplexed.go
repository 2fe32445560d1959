package backend

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/ShelbyKS/s3-client/internal/request"
	"github.com/ShelbyKS/s3-client/s3err"
)

// Multiplexed is the Go analogue of a libcurl multi-handle: rather than a
// driver thread polling a mutex/condvar-guarded pending queue, a single
// dispatcher goroutine ranges over an unbuffered channel of submissions
// and hands each one to its own goroutine, gated by a semaphore sized to
// the client's MaxTotalConnections. The rendezvous a transaction's caller
// waits on is a private, buffered result channel rather than a condvar
// broadcast — each submitter gets exactly one delivery, so no transaction
// is ever picked up twice and none is silently dropped.
type Multiplexed struct {
	client *http.Client
	sem    *semaphore.Weighted

	pending chan *pendingRequest
	closed  chan struct{}

	dispatcherDone sync.WaitGroup
	inflight       sync.WaitGroup
	closeOnce      sync.Once
}

type pendingRequest struct {
	ctx      context.Context
	txn      *request.Transaction
	resultCh chan execResult
}

type execResult struct {
	res *Result
	err error
}

// NewMultiplexed starts the dispatcher goroutine and returns a ready
// backend. maxTotalConnections bounds how many transactions may be in
// flight against the network at once, independent of how many callers
// have submitted work.
func NewMultiplexed(client *http.Client, maxTotalConnections int64) *Multiplexed {
	m := &Multiplexed{
		client:  client,
		sem:     semaphore.NewWeighted(maxTotalConnections),
		pending: make(chan *pendingRequest),
		closed:  make(chan struct{}),
	}
	m.dispatcherDone.Add(1)
	go m.dispatch()
	return m
}

func (m *Multiplexed) dispatch() {
	defer m.dispatcherDone.Done()

	for req := range m.pending {
		if err := m.sem.Acquire(req.ctx, 1); err != nil {
			req.resultCh <- execResult{err: s3err.FromTransportError(err)}
			continue
		}

		m.inflight.Add(1)
		go func(req *pendingRequest) {
			defer m.inflight.Done()
			defer m.sem.Release(1)

			res, err := execute(m.client, req.txn)
			req.resultCh <- execResult{res: res, err: err}
		}(req)
	}
}

// Execute submits txn to the dispatcher and blocks until its goroutine
// finishes, the transaction's context is cancelled, or the backend is
// closed — whichever happens first.
func (m *Multiplexed) Execute(ctx context.Context, txn *request.Transaction) (*Result, error) {
	select {
	case <-m.closed:
		return nil, s3err.New(s3err.Init, "multiplexed backend is closed", nil)
	default:
	}

	req := &pendingRequest{
		ctx:      ctx,
		txn:      txn,
		resultCh: make(chan execResult, 1),
	}

	select {
	case m.pending <- req:
	case <-ctx.Done():
		return nil, s3err.FromTransportError(ctx.Err())
	case <-m.closed:
		return nil, s3err.New(s3err.Init, "multiplexed backend is closed", nil)
	}

	select {
	case r := <-req.resultCh:
		return r.res, r.err
	case <-ctx.Done():
		return nil, s3err.FromTransportError(ctx.Err())
	}
}

// Close stops accepting new transactions, waits for the dispatcher to
// drain the channel, and waits for every already-dispatched goroutine to
// finish before returning. It is idempotent.
func (m *Multiplexed) Close() error {
	m.closeOnce.Do(func() {
		close(m.closed)
		close(m.pending)
	})
	m.dispatcherDone.Wait()
	m.inflight.Wait()
	return nil
}
