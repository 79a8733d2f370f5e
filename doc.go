// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pcq provides blocking producer-consumer queues built on a
// counting semaphore.
//
// pcq is the blocking complement to [code.hybscloud.com/lfq]: where
// lfq returns [code.hybscloud.com/iox.ErrWouldBlock] and leaves
// waiting to the caller, pcq waits internally and returns once the
// operation has happened. Waiting is adaptive backoff via
// [code.hybscloud.com/iox.Backoff]; the package spawns no goroutines
// and creates no channels.
//
// # Architecture
//
//   - [Semaphore]: counting semaphore. Wait claims a credit, blocking
//     while the counter is zero; Post adds a credit and releases one
//     waiter. The post/wait pairing publishes memory written before
//     the post to the claimant.
//   - [Queue]: fixed-capacity queue for any number of producer and
//     consumer goroutines. Two semaphores count free and filled slots;
//     two per-side binary semaphores serialize producers against
//     producers and consumers against consumers.
//   - [Unbounded]: unbounded queue for exactly one producer and one
//     consumer goroutine. Produce never blocks; storage grows in
//     fixed-size pages recycled through an internal
//     [code.hybscloud.com/lfq.SPSC] free list.
//
// # Failure Semantics
//
// Element types whose transfer can fail implement [Copier] or
// [Swapper]. A transfer error is recovered locally: the queue refunds
// the semaphore credit, leaves its cursor and the slot untouched, and
// returns the element's error unchanged, so the failed element can be
// retried. Types without these interfaces transfer by plain
// assignment, and every operation on them returns nil.
//
// Construction and usage violations (capacity < 1, negative semaphore
// count) panic. The package itself never manufactures error values.
//
// # Blocking
//
// Produce on a full [Queue] and Consume on an empty [Queue] or
// [Unbounded] block the calling goroutine without timeout or
// cancellation: a blocked call returns only when the counterpart
// operation posts the awaited credit. Callers that need to release a
// blocked consumer deliver a sentinel element instead.
//
// # Race Detection
//
// The semaphore counter is the queues' only cross-goroutine
// synchronization. Its release/acquire pairing is correct under the Go
// memory model, but the race detector tracks happens-before through
// explicit synchronization primitives and cannot observe orderings
// established by atomic operations on a separate variable. Tests that
// move data across goroutines are therefore skipped under -race; the
// single-goroutine suite runs either way.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for the semaphore
// counter, [code.hybscloud.com/iox] for backoff waiting,
// [code.hybscloud.com/lfq] for the spare-page free list, and
// golang.org/x/sys/cpu for cache-line layout.
package pcq
