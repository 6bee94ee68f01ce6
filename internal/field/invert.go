// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

// Invert sets v = a^(p-2) = a^-1 (mod p) and returns v, using the fixed
// addition chain from curve25519-donna's crecip (itself taken from djb's
// sample implementation). The chain builds z^2, z^9, z^11 and then
// repeatedly squares and multiplies to reach z^(2^k-1) for
// k = 5, 10, 20, 50, 100, 250, finishing with a single multiply by z^11
// to land on the exponent p-2 = 2^255-21. 254 squarings, 11
// multiplications, no branch or loop bound depends on a.
//
// If a == 0 (mod p), the result is undefined, matching spec.md's
// contract (invert is only specified for nonzero inputs).
func (v *Element) Invert(a *Element) *Element {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t0, t1 Element

	z2.Square(a)          // 2
	t1.Square(&z2)         // 4
	t0.Square(&t1)         // 8
	z9.Mul(&t0, a)         // 9
	z11.Mul(&z9, &z2)      // 11
	t0.Square(&z11)        // 22
	z2_5_0.Mul(&t0, &z9)   // 2^5 - 2^0 = 31

	t0.Square(&z2_5_0) // 2^6 - 2^1
	t1.Square(&t0)     // 2^7 - 2^2
	t0.Square(&t1)     // 2^8 - 2^3
	t1.Square(&t0)     // 2^9 - 2^4
	t0.Square(&t1)     // 2^10 - 2^5
	z2_10_0.Mul(&t0, &z2_5_0) // 2^10 - 2^0

	t0.Square(&z2_10_0) // 2^11 - 2^1
	t1.Square(&t0)       // 2^12 - 2^2
	for i := 2; i < 10; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	} // 2^20 - 2^10
	z2_20_0.Mul(&t1, &z2_10_0) // 2^20 - 2^0

	t0.Square(&z2_20_0) // 2^21 - 2^1
	t1.Square(&t0)       // 2^22 - 2^2
	for i := 2; i < 20; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	} // 2^40 - 2^20
	t0.Mul(&t1, &z2_20_0) // 2^40 - 2^0

	t1.Square(&t0) // 2^41 - 2^1
	t0.Square(&t1) // 2^42 - 2^2
	for i := 2; i < 10; i += 2 {
		t1.Square(&t0)
		t0.Square(&t1)
	} // 2^50 - 2^10
	z2_50_0.Mul(&t0, &z2_10_0) // 2^50 - 2^0

	t0.Square(&z2_50_0) // 2^51 - 2^1
	t1.Square(&t0)       // 2^52 - 2^2
	for i := 2; i < 50; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	} // 2^100 - 2^50
	z2_100_0.Mul(&t1, &z2_50_0) // 2^100 - 2^0

	t1.Square(&z2_100_0) // 2^101 - 2^1
	t0.Square(&t1)         // 2^102 - 2^2
	for i := 2; i < 100; i += 2 {
		t1.Square(&t0)
		t0.Square(&t1)
	} // 2^200 - 2^100
	t1.Mul(&t0, &z2_100_0) // 2^200 - 2^0

	t0.Square(&t1) // 2^201 - 2^1
	t1.Square(&t0) // 2^202 - 2^2
	for i := 2; i < 50; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	} // 2^250 - 2^50
	t0.Mul(&t1, &z2_50_0) // 2^250 - 2^0

	t1.Square(&t0) // 2^251 - 2^1
	t0.Square(&t1) // 2^252 - 2^2
	t1.Square(&t0) // 2^253 - 2^3
	t0.Square(&t1) // 2^254 - 2^4
	t1.Square(&t0) // 2^255 - 2^5
	v.Mul(&t1, &z11) // 2^255 - 21

	return v
}
