// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pcq_test

import "errors"

// errPoison marks a transfer rejected by the element itself.
var errPoison = errors.New("poison transfer")

// fragile is an element whose transfer fails when either side is
// poisoned. Used to exercise the credit-refund unwind paths.
type fragile struct {
	n      int
	poison bool
}

func (f *fragile) CopyFrom(src *fragile) error {
	if f.poison || src.poison {
		return errPoison
	}
	f.n = src.n
	return nil
}

func (f *fragile) SwapWith(other *fragile) error {
	if f.poison || other.poison {
		return errPoison
	}
	f.n, other.n = other.n, f.n
	return nil
}
