package drain

import "sync"

// queue is an unbounded single-producer single-consumer FIFO of chunks.
// The producer may also record one terminal error.
type queue struct {
	mu     sync.Mutex
	chunks [][]byte
	err    error
	ready  chan struct{}
}

func newQueue() *queue {
	return &queue{ready: make(chan struct{}, 1)}
}

func (q *queue) push(chunk []byte) {
	q.mu.Lock()
	q.chunks = append(q.chunks, chunk)
	q.mu.Unlock()
	q.signal()
}

// fail records the reader's terminal error. Only the first is kept.
func (q *queue) fail(err error) {
	q.mu.Lock()
	if q.err == nil {
		q.err = err
	}
	q.mu.Unlock()
	q.signal()
}

// take removes every queued chunk in arrival order.
func (q *queue) take() ([][]byte, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	chunks := q.chunks
	q.chunks = nil
	return chunks, q.err
}

func (q *queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
