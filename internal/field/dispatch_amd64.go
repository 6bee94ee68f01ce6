// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64

package field

import "golang.org/x/sys/cpu"

// wideMultiply selects productWide/reduceCoefficientsFlat over the
// hand-unrolled default. Both code paths are pure Go and produce
// identical results; this only follows the teacher's
// internal/radix51/fe_amd64.go pattern of probing CPU features once at
// init() instead of per call.
var wideMultiply bool

func init() {
	wideMultiply = cpu.Initialized && cpu.X86.HasBMI2 && cpu.X86.HasADX
}
