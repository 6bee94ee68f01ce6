// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

// This file implements the schoolbook polynomial product and the two
// reduction passes that turn it back into a ten-limb field element,
// following curve25519-donna's fproduct / fsquare_inner / freduce_degree
// / freduce_coefficients. The product is unrolled by hand, the way every
// hand-written field-arithmetic implementation in this corpus does it
// (donna's own fmonty, the teacher's amd64 assembly, FiloSottile's
// generated fe.go) rather than expressed as a generic double loop: the
// per-output-limb coefficient pattern is fixed at compile time, so there
// is nothing a loop buys except an extra branch per term.
//
// Odd-indexed limbs carry 25 bits instead of 26, so a cross term a[i]*b[j]
// needs an extra factor of 2 exactly when both i and j are odd (that is
// the point at which the 2^25.5 radix mismatch shows up); everywhere else
// the factor is 1 in product. In squareInner a further factor of 2 comes
// from merging the equal (i,j)/(j,i) pairs of a square.

// Mul sets v = a*b and returns v.
//
// On entry: |a[i]|, |b[i]| < 2^27. On exit: |v[i]| < 2^26.
func (v *Element) Mul(a, b *Element) *Element {
	var t [19]int64
	product(&t, &a.l, &b.l)
	reduceDegree(&t)
	reduceCoefficients(&t)
	for i := range v.l {
		v.l[i] = int32(t[i])
	}
	return v
}

// Square sets v = a*a and returns v.
//
// On entry: |a[i]| < 2^27. On exit: |v[i]| < 2^26.
func (v *Element) Square(a *Element) *Element {
	var t [19]int64
	squareInner(&t, &a.l)
	reduceDegree(&t)
	reduceCoefficients(&t)
	for i := range v.l {
		v.l[i] = int32(t[i])
	}
	return v
}

// product computes the 19-limb schoolbook product of a and b into out.
// On exit |out[i]| < 14 * the largest product of the input limbs.
func product(out *[19]int64, a, b *[10]int32) {
	if wideMultiply {
		productWide(out, a, b)
		return
	}
	o := func(x int32) int64 { return int64(x) }
	out[0] = o(a[0]) * o(b[0])
	out[1] = o(a[0])*o(b[1]) + o(a[1])*o(b[0])
	out[2] = 2*o(a[1])*o(b[1]) + o(a[0])*o(b[2]) + o(a[2])*o(b[0])
	out[3] = o(a[1])*o(b[2]) + o(a[2])*o(b[1]) + o(a[0])*o(b[3]) + o(a[3])*o(b[0])
	out[4] = o(a[2])*o(b[2]) + 2*(o(a[1])*o(b[3])+o(a[3])*o(b[1])) + o(a[0])*o(b[4]) + o(a[4])*o(b[0])
	out[5] = o(a[2])*o(b[3]) + o(a[3])*o(b[2]) + o(a[1])*o(b[4]) + o(a[4])*o(b[1]) + o(a[0])*o(b[5]) + o(a[5])*o(b[0])
	out[6] = 2*(o(a[3])*o(b[3])+o(a[1])*o(b[5])+o(a[5])*o(b[1])) + o(a[2])*o(b[4]) + o(a[4])*o(b[2]) + o(a[0])*o(b[6]) + o(a[6])*o(b[0])
	out[7] = o(a[3])*o(b[4]) + o(a[4])*o(b[3]) + o(a[2])*o(b[5]) + o(a[5])*o(b[2]) + o(a[1])*o(b[6]) + o(a[6])*o(b[1]) + o(a[0])*o(b[7]) + o(a[7])*o(b[0])
	out[8] = o(a[4])*o(b[4]) + 2*(o(a[3])*o(b[5])+o(a[5])*o(b[3])+o(a[1])*o(b[7])+o(a[7])*o(b[1])) + o(a[2])*o(b[6]) + o(a[6])*o(b[2]) + o(a[0])*o(b[8]) + o(a[8])*o(b[0])
	out[9] = o(a[4])*o(b[5]) + o(a[5])*o(b[4]) + o(a[3])*o(b[6]) + o(a[6])*o(b[3]) + o(a[2])*o(b[7]) + o(a[7])*o(b[2]) + o(a[1])*o(b[8]) + o(a[8])*o(b[1]) + o(a[0])*o(b[9]) + o(a[9])*o(b[0])
	out[10] = 2*(o(a[5])*o(b[5])+o(a[3])*o(b[7])+o(a[7])*o(b[3])+o(a[1])*o(b[9])+o(a[9])*o(b[1])) + o(a[4])*o(b[6]) + o(a[6])*o(b[4]) + o(a[2])*o(b[8]) + o(a[8])*o(b[2])
	out[11] = o(a[5])*o(b[6]) + o(a[6])*o(b[5]) + o(a[4])*o(b[7]) + o(a[7])*o(b[4]) + o(a[3])*o(b[8]) + o(a[8])*o(b[3]) + o(a[2])*o(b[9]) + o(a[9])*o(b[2])
	out[12] = o(a[6])*o(b[6]) + 2*(o(a[5])*o(b[7])+o(a[7])*o(b[5])+o(a[3])*o(b[9])+o(a[9])*o(b[3])) + o(a[4])*o(b[8]) + o(a[8])*o(b[4])
	out[13] = o(a[6])*o(b[7]) + o(a[7])*o(b[6]) + o(a[5])*o(b[8]) + o(a[8])*o(b[5]) + o(a[4])*o(b[9]) + o(a[9])*o(b[4])
	out[14] = 2*(o(a[7])*o(b[7])+o(a[5])*o(b[9])+o(a[9])*o(b[5])) + o(a[6])*o(b[8]) + o(a[8])*o(b[6])
	out[15] = o(a[7])*o(b[8]) + o(a[8])*o(b[7]) + o(a[6])*o(b[9]) + o(a[9])*o(b[6])
	out[16] = o(a[8])*o(b[8]) + 2*(o(a[7])*o(b[9])+o(a[9])*o(b[7]))
	out[17] = o(a[8])*o(b[9]) + o(a[9])*o(b[8])
	out[18] = 2 * o(a[9]) * o(b[9])
}

// productWide computes the same 19-limb product as product, but as a flat
// sum-of-pairs loop instead of hand-unrolled expressions. It is selected
// at runtime on CPUs the dispatch flag in dispatch_amd64.go identifies as
// having fast 64-bit multiply/add-with-carry (BMI2/ADX): a single
// predictable accumulation loop gives the compiler a tighter dependency
// chain to schedule than ten hand-shaped expressions of varying length.
// Both forms must and do produce bit-identical results.
func productWide(out *[19]int64, a, b *[10]int32) {
	for k := 0; k < 19; k++ {
		var sum int64
		lo := k - 9
		if lo < 0 {
			lo = 0
		}
		hi := k
		if hi > 9 {
			hi = 9
		}
		for i := lo; i <= hi; i++ {
			j := k - i
			factor := int64(1)
			if i&1 == 1 && j&1 == 1 {
				factor = 2
			}
			sum += factor * int64(a[i]) * int64(b[j])
		}
		out[k] = sum
	}
}

// squareInner computes the 19-limb square of in, exploiting
// in[a]*in[b] == in[b]*in[a] to halve the number of distinct
// multiplications relative to product(in, in).
func squareInner(out *[19]int64, in *[10]int32) {
	o := func(x int32) int64 { return int64(x) }
	out[0] = o(in[0]) * o(in[0])
	out[1] = 2 * o(in[0]) * o(in[1])
	out[2] = 2 * (o(in[1])*o(in[1]) + o(in[0])*o(in[2]))
	out[3] = 2 * (o(in[1])*o(in[2]) + o(in[0])*o(in[3]))
	out[4] = o(in[2])*o(in[2]) + 4*o(in[1])*o(in[3]) + 2*o(in[0])*o(in[4])
	out[5] = 2 * (o(in[2])*o(in[3]) + o(in[1])*o(in[4]) + o(in[0])*o(in[5]))
	out[6] = 2*(o(in[3])*o(in[3])+o(in[2])*o(in[4])+o(in[0])*o(in[6])) + 4*o(in[1])*o(in[5])
	out[7] = 2 * (o(in[3])*o(in[4]) + o(in[2])*o(in[5]) + o(in[1])*o(in[6]) + o(in[0])*o(in[7]))
	out[8] = o(in[4])*o(in[4]) + 2*(o(in[2])*o(in[6])+o(in[0])*o(in[8])) + 4*(o(in[1])*o(in[7])+o(in[3])*o(in[5]))
	out[9] = 2 * (o(in[4])*o(in[5]) + o(in[3])*o(in[6]) + o(in[2])*o(in[7]) + o(in[1])*o(in[8]) + o(in[0])*o(in[9]))
	out[10] = 2*(o(in[5])*o(in[5])+o(in[4])*o(in[6])+o(in[2])*o(in[8])) + 4*(o(in[3])*o(in[7])+o(in[1])*o(in[9]))
	out[11] = 2 * (o(in[5])*o(in[6]) + o(in[4])*o(in[7]) + o(in[3])*o(in[8]) + o(in[2])*o(in[9]))
	out[12] = o(in[6])*o(in[6]) + 2*(o(in[4])*o(in[8])) + 4*(o(in[5])*o(in[7])+o(in[3])*o(in[9]))
	out[13] = 2 * (o(in[6])*o(in[7]) + o(in[5])*o(in[8]) + o(in[4])*o(in[9]))
	out[14] = 2*(o(in[7])*o(in[7])+o(in[6])*o(in[8])) + 4*o(in[5])*o(in[9])
	out[15] = 2 * (o(in[7])*o(in[8]) + o(in[6])*o(in[9]))
	out[16] = o(in[8])*o(in[8]) + 4*o(in[7])*o(in[9])
	out[17] = 2 * o(in[8]) * o(in[9])
	out[18] = 2 * o(in[9]) * o(in[9])
}

// reduceDegree folds the degree-18..10 coefficients of t back into
// degree 0..9 using 2^255 = 19 (mod p): t[k-10] += 19*t[k].
//
// On entry |t[i]| < 14*2^54. On exit |t[0..9]| < 280*2^54 (t[10..18] are
// left untouched and ignored by the caller).
func reduceDegree(t *[19]int64) {
	for k := 18; k >= 10; k-- {
		t[k-10] += 19 * t[k]
	}
}

// reduceCoefficients carries t[0..9] down to |t[i]| < 2^26, folding the
// carry out of t[9] back into t[0] via the same 19 identity.
//
// On entry |t[i]| < 280*2^54 for i in 0..9.
func reduceCoefficients(t *[19]int64) {
	if wideMultiply {
		reduceCoefficientsFlat(t)
		return
	}
	var carryOverflow int64
	for i := 0; i < 10; i += 2 {
		over := t[i] >> 26
		t[i] -= over << 26
		t[i+1] += over

		over2 := t[i+1] >> 25
		t[i+1] -= over2 << 25
		if i+2 < 10 {
			t[i+2] += over2
		} else {
			carryOverflow = over2
		}
	}
	t[0] += carryOverflow * 19

	over := t[0] >> 26
	t[0] -= over << 26
	t[1] += over
}

// reduceCoefficientsFlat is value-identical to reduceCoefficients but
// walks the ten limbs in a single pass instead of an even/odd-paired
// one, matching the wide-accumulator code shape productWide uses.
func reduceCoefficientsFlat(t *[19]int64) {
	var carry int64
	for i := 0; i < 10; i++ {
		t[i] += carry
		if i&1 == 1 {
			carry = t[i] >> 25
			t[i] -= carry << 25
		} else {
			carry = t[i] >> 26
			t[i] -= carry << 26
		}
	}
	t[0] += carry * 19

	over := t[0] >> 26
	t[0] -= over << 26
	t[1] += over
}
