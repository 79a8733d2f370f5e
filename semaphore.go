// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pcq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Semaphore is a counting semaphore for coordinating producer and
// consumer goroutines. The counter holds credits: Post adds one credit,
// Wait blocks until a credit is available and claims it.
//
// A Post made after writing shared data publishes that data to the
// goroutine whose Wait claims the credit. The queues in this package
// rely on that edge as their only cross-goroutine synchronization.
//
// Waiting is adaptive backoff via [code.hybscloud.com/iox.Backoff],
// not runtime parking. A goroutine blocked in Wait returns only when a
// credit arrives; a Semaphore must not be abandoned or reinitialized
// while a waiter is blocked on it.
type Semaphore struct {
	count atomix.Uint64
}

// NewSemaphore creates a semaphore holding initial credits.
// Panics if initial is negative.
func NewSemaphore(initial int) *Semaphore {
	s := new(Semaphore)
	s.Init(initial)
	return s
}

// Init sets the credit count, supporting value embedding in a larger
// allocation. Must be called before the semaphore is shared.
// Panics if initial is negative.
func (s *Semaphore) Init(initial int) {
	if initial < 0 {
		panic("pcq: semaphore count must be >= 0")
	}
	s.count.StoreRelaxed(uint64(initial))
}

// Wait blocks until a credit is available, then claims it.
// Missed claims are retried invisibly with adaptive backoff: callers
// never observe a spurious wakeup or an interrupted wait.
func (s *Semaphore) Wait() {
	var bo iox.Backoff
	for s.tryWait() != nil {
		bo.Wait()
	}
}

// Post adds one credit, releasing at most one blocked waiter.
// Each credit is claimed by exactly one Wait.
func (s *Semaphore) Post() {
	s.count.Add(1)
}

// tryWait claims a credit without blocking.
// Returns iox.ErrWouldBlock while the counter is zero. The successful
// compare-and-swap carries acquire ordering, pairing with the release
// of the Post that produced the credit.
func (s *Semaphore) tryWait() error {
	for {
		c := s.count.LoadRelaxed()
		if c == 0 {
			return iox.ErrWouldBlock
		}
		if s.count.CompareAndSwapAcqRel(c, c-1) {
			return nil
		}
	}
}
