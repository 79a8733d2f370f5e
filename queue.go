// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pcq

import (
	"golang.org/x/sys/cpu"
)

// Queue is a fixed-capacity blocking FIFO queue safe for any number of
// concurrent producer and consumer goroutines.
//
// Two counting semaphores enforce the capacity bound without polling:
// empty holds free-slot credits, used holds filled-slot credits. Two
// independent per-side locks let one producer and one consumer proceed
// concurrently with zero contention; producers contend only with other
// producers and consumers only with other consumers. The locks are
// binary semaphores, so the semaphore layer is the only coordination
// mechanism in the queue.
//
// Order across multiple producers is lock-arrival order, not call
// order. A single producer paired with a single consumer observes
// strict FIFO.
//
// Memory: O(capacity), allocated once at construction.
type Queue[T any] struct {
	_           cpu.CacheLinePad
	empty       Semaphore // free-slot credits. Producers wait, consumers post
	_           cpu.CacheLinePad
	used        Semaphore // filled-slot credits. Consumers wait, producers post
	_           cpu.CacheLinePad
	produceLock Semaphore // binary, guards produceAt
	produceAt   int
	_           cpu.CacheLinePad
	consumeLock Semaphore // binary, guards consumeAt
	consumeAt   int
	_           cpu.CacheLinePad
	slots       []T
}

// New creates a queue with exactly capacity slots.
// Capacity is not rounded: the bound is part of the blocking contract.
// Panics if capacity < 1.
func New[T any](capacity int) *Queue[T] {
	q := new(Queue[T])
	q.Init(capacity)
	return q
}

// Init sets up the queue in place, supporting value embedding in a
// larger allocation. Must be called before the queue is shared.
// Panics if capacity < 1.
func (q *Queue[T]) Init(capacity int) {
	if capacity < 1 {
		panic("pcq: capacity must be >= 1")
	}
	q.slots = make([]T, capacity)
	q.produceAt = 0
	q.consumeAt = 0
	q.empty.Init(capacity)
	q.used.Init(0)
	q.produceLock.Init(1)
	q.consumeLock.Init(1)
}

// Produce copies v into the next free slot, blocking while the queue
// is full. A non-nil error reports a failed element transfer (see
// [Copier]): the credit is refunded, the cursor does not move, and the
// queue state is as if Produce had not been called.
func (q *Queue[T]) Produce(v T) error {
	q.empty.Wait()
	q.produceLock.Wait()
	if err := assign(&q.slots[q.produceAt], &v); err != nil {
		q.empty.Post()
		q.produceLock.Post()
		return err
	}
	q.produceAt++
	if q.produceAt == len(q.slots) {
		q.produceAt = 0
	}
	q.produceLock.Post()
	q.used.Post()
	return nil
}

// ProduceSwap exchanges *v with the next free slot, blocking while the
// queue is full. The former slot content, dead by contract, ends up in
// *v. Avoids a content copy for large payloads. Failure semantics
// match [Produce] (see [Swapper]).
func (q *Queue[T]) ProduceSwap(v *T) error {
	q.empty.Wait()
	q.produceLock.Wait()
	if err := swap(&q.slots[q.produceAt], v); err != nil {
		q.empty.Post()
		q.produceLock.Post()
		return err
	}
	q.produceAt++
	if q.produceAt == len(q.slots) {
		q.produceAt = 0
	}
	q.produceLock.Post()
	q.used.Post()
	return nil
}

// Consume copies the next element into *out, blocking while the queue
// is empty. The vacated slot is reset to the zero value so the queue
// does not pin dead references. A non-nil error reports a failed
// element transfer (see [Copier]): the credit is refunded, the cursor
// does not move, and the element remains the next one consumed.
func (q *Queue[T]) Consume(out *T) error {
	q.used.Wait()
	q.consumeLock.Wait()
	if err := assign(out, &q.slots[q.consumeAt]); err != nil {
		q.used.Post()
		q.consumeLock.Post()
		return err
	}
	var zero T
	q.slots[q.consumeAt] = zero
	q.consumeAt++
	if q.consumeAt == len(q.slots) {
		q.consumeAt = 0
	}
	q.consumeLock.Post()
	q.empty.Post()
	return nil
}

// ConsumeSwap exchanges the next element with *out, blocking while the
// queue is empty. The prior content of *out, dead by contract, is left
// in the slot for a later produce to overwrite. Failure semantics
// match [Consume] (see [Swapper]).
func (q *Queue[T]) ConsumeSwap(out *T) error {
	q.used.Wait()
	q.consumeLock.Wait()
	if err := swap(out, &q.slots[q.consumeAt]); err != nil {
		q.used.Post()
		q.consumeLock.Post()
		return err
	}
	q.consumeAt++
	if q.consumeAt == len(q.slots) {
		q.consumeAt = 0
	}
	q.consumeLock.Post()
	q.empty.Post()
	return nil
}

// ConsumeValue removes and returns the next element, blocking while
// the queue is empty. One copy more expensive than [Consume]; prefer
// Consume on hot paths.
func (q *Queue[T]) ConsumeValue() (T, error) {
	var v T
	err := q.Consume(&v)
	return v, err
}

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int {
	return len(q.slots)
}
