// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64

package field

// wideMultiply is always false off amd64: there is no
// golang.org/x/sys/cpu feature probe worth doing for the flat-loop code
// shape on other architectures, so the hand-unrolled default runs
// everywhere else.
var wideMultiply = false
