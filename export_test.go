// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pcq

// NewUnboundedPageCapacity creates an unbounded queue with a custom
// page capacity, so tests can exercise page-boundary behavior without
// producing a thousand elements per page.
func NewUnboundedPageCapacity[T any](pageCapacity int) *Unbounded[T] {
	u := new(Unbounded[T])
	u.initPages(pageCapacity)
	return u
}

// LivePages counts the pages reachable from the consumer's cursor.
// Both sides must be quiescent while it walks the chain.
func (u *Unbounded[T]) LivePages() int {
	n := 1
	for p := u.reading; p != u.filling; p = p.next {
		n++
	}
	return n
}
