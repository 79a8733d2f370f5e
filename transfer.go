// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pcq

// Copier is implemented by element types whose copy can fail.
//
// Copy-form operations (Produce, Consume, ConsumeValue) transfer
// elements with CopyFrom when *T implements Copier[T], and with plain
// assignment otherwise. The destination drives the call: produce runs
// the slot's CopyFrom with the caller's value as src, consume runs the
// out value's CopyFrom with the slot as src.
//
// A non-nil error aborts the transfer. The queue refunds the semaphore
// credit, leaves its cursor and the slot untouched, and returns the
// error unchanged, so the caller may retry or abandon the element.
//
// Example:
//
//	type Frame struct {
//		buf []byte
//	}
//
//	func (f *Frame) CopyFrom(src *Frame) error {
//		if len(src.buf) > cap(f.buf) {
//			return ErrFrameTooLarge
//		}
//		f.buf = f.buf[:len(src.buf)]
//		copy(f.buf, src.buf)
//		return nil
//	}
type Copier[T any] interface {
	// CopyFrom copies *src into the receiver.
	// Returns nil on success. On error the receiver must be left in a
	// state the caller can reuse.
	CopyFrom(src *T) error
}

// Swapper is implemented by element types whose swap can fail.
//
// Swap-form operations (ProduceSwap, ConsumeSwap) exchange the
// caller's value with the slot content, avoiding a content copy for
// large payloads. They use SwapWith when *T implements Swapper[T], and
// the two-assignment swap otherwise. Failure semantics match
// [Copier]: credit refunded, cursor and slot untouched, error
// returned unchanged.
type Swapper[T any] interface {
	// SwapWith exchanges the receiver's content with *other.
	// Returns nil on success. On error both values must be left in a
	// state their owners can reuse.
	SwapWith(other *T) error
}

// assign transfers *src into *dst, through Copier when the element
// type implements it.
func assign[T any](dst, src *T) error {
	if c, ok := any(dst).(Copier[T]); ok {
		return c.CopyFrom(src)
	}
	*dst = *src
	return nil
}

// swap exchanges *a and *b, through Swapper when the element type
// implements it.
func swap[T any](a, b *T) error {
	if s, ok := any(a).(Swapper[T]); ok {
		return s.SwapWith(b)
	}
	*a, *b = *b, *a
	return nil
}
