// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pcq

import (
	"code.hybscloud.com/lfq"
	"golang.org/x/sys/cpu"
)

// defaultPageCapacity is the per-page element count. 1023 entries plus
// the next link keep a page of pointer-sized elements at 8 KiB.
const defaultPageCapacity = 1023

// sparePages bounds the retired-page cache. Two covers the steady
// state where the consumer retires one page while the producer opens
// the next; overflow falls to the garbage collector.
const sparePages = 2

// page is one fixed-size segment of the chain. The producer owns the
// next link of the newest page; the consumer owns every page from its
// cursor forward and retires each page as it finishes it.
type page[T any] struct {
	next    *page[T]
	entries []T
}

// Unbounded is a blocking FIFO queue with no capacity bound,
// restricted to exactly one producer goroutine and one consumer
// goroutine.
//
// Produce never blocks: storage grows as a singly linked chain of
// fixed-size pages. Consume blocks on the filled-element semaphore,
// whose post/wait pairing is the only synchronization between the two
// goroutines; it also publishes newly linked pages, so the cursors
// need no locks. Memory is proportional to the producer/consumer lag,
// not to the total number of elements ever produced: the consumer
// retires each page as it finishes it, recycling through a small
// spare-page list and releasing overflow to the garbage collector.
//
// More than one goroutine per side corrupts the queue; use [Queue]
// for multi-producer or multi-consumer handoff.
type Unbounded[T any] struct {
	_       cpu.CacheLinePad
	filled  Semaphore // filled-element credits. Consumer waits, producer posts
	_       cpu.CacheLinePad
	filling *page[T] // producer cursor
	fillAt  int
	_       cpu.CacheLinePad
	reading *page[T] // consumer cursor
	readAt  int
	_       cpu.CacheLinePad
	spare   lfq.SPSC[*page[T]] // retired pages. Consumer enqueues, producer dequeues
	pageCap int
}

// NewUnbounded creates an unbounded queue with one empty page.
func NewUnbounded[T any]() *Unbounded[T] {
	u := new(Unbounded[T])
	u.Init()
	return u
}

// Init sets up the queue in place, supporting value embedding in a
// larger allocation. Must be called before the queue is shared.
func (u *Unbounded[T]) Init() {
	u.initPages(defaultPageCapacity)
}

func (u *Unbounded[T]) initPages(pageCapacity int) {
	if pageCapacity < 1 {
		panic("pcq: page capacity must be >= 1")
	}
	p := &page[T]{entries: make([]T, pageCapacity)}
	u.pageCap = pageCapacity
	u.filling = p
	u.fillAt = 0
	u.reading = p
	u.readAt = 0
	u.filled.Init(0)
	u.spare.Init(sparePages)
}

// Produce copies v to the end of the queue. Never blocks: a full page
// grows the chain instead. A non-nil error reports a failed element
// transfer (see [Copier]); the cursor does not move and nothing is
// published to the consumer.
func (u *Unbounded[T]) Produce(v T) error {
	if err := assign(u.fillSlot(), &v); err != nil {
		return err
	}
	u.fillAt++
	u.filled.Post()
	return nil
}

// ProduceSwap exchanges *v with the entry at the end of the queue,
// avoiding a content copy for large payloads. Never blocks. Failure
// semantics match [Unbounded.Produce] (see [Swapper]).
func (u *Unbounded[T]) ProduceSwap(v *T) error {
	if err := swap(u.fillSlot(), v); err != nil {
		return err
	}
	u.fillAt++
	u.filled.Post()
	return nil
}

// Consume copies the next element into *out, blocking while the queue
// is empty. The vacated entry is reset to the zero value so finished
// pages do not pin dead references. A non-nil error reports a failed
// element transfer (see [Copier]): the credit is refunded, the cursor
// does not move, and the element remains the next one consumed.
func (u *Unbounded[T]) Consume(out *T) error {
	u.filled.Wait()
	slot := u.readSlot()
	if err := assign(out, slot); err != nil {
		u.filled.Post()
		return err
	}
	var zero T
	*slot = zero
	u.readAt++
	return nil
}

// ConsumeSwap exchanges the next element with *out, blocking while the
// queue is empty. The prior content of *out, dead by contract, stays
// in the vacated entry. Failure semantics match [Unbounded.Consume]
// (see [Swapper]).
func (u *Unbounded[T]) ConsumeSwap(out *T) error {
	u.filled.Wait()
	slot := u.readSlot()
	if err := swap(out, slot); err != nil {
		u.filled.Post()
		return err
	}
	u.readAt++
	return nil
}

// ConsumeValue removes and returns the next element, blocking while
// the queue is empty. One copy more expensive than
// [Unbounded.Consume]; prefer Consume on hot paths.
func (u *Unbounded[T]) ConsumeValue() (T, error) {
	var v T
	err := u.Consume(&v)
	return v, err
}

// fillSlot returns the producer's current entry, opening a new page
// when the current one is full. The link becomes visible to the
// consumer through the post of the first element written to the new
// page.
func (u *Unbounded[T]) fillSlot() *T {
	if u.fillAt == u.pageCap {
		next := u.newPage()
		u.filling.next = next
		u.filling = next
		u.fillAt = 0
	}
	return &u.filling.entries[u.fillAt]
}

// readSlot returns the consumer's current entry, retiring the current
// page first when every entry on it has been consumed.
func (u *Unbounded[T]) readSlot() *T {
	if u.readAt == u.pageCap {
		done := u.reading
		u.reading = done.next
		u.readAt = 0
		u.retire(done)
	}
	return &u.reading.entries[u.readAt]
}

// newPage reuses a retired page when one is cached, allocating
// otherwise.
func (u *Unbounded[T]) newPage() *page[T] {
	if p, err := u.spare.Dequeue(); err == nil {
		return p
	}
	return &page[T]{entries: make([]T, u.pageCap)}
}

// retire hands a finished page to the spare list. Overflow beyond
// sparePages is dropped for the garbage collector to reclaim.
func (u *Unbounded[T]) retire(p *page[T]) {
	p.next = nil
	_ = u.spare.Enqueue(&p)
}
