// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package montgomery implements the Curve25519 Montgomery ladder: the
// combined double-and-differential-add step (fmonty in
// curve25519-donna) and the 255-bit constant-time scalar-multiplication
// loop (cmult) that drives it.
package montgomery

import "github.com/gtank/x25519/internal/field"

// Point is a projective point (X:Z) representing the affine x-coordinate
// X/Z. (X, 0) is the point at infinity.
type Point struct {
	X, Z field.Element
}

// Step computes 2Q and Q+Q' from Q=(x,z), Q'=(xprime,zprime), and the
// fixed difference qmqp = x(Q-Q'), using only field operations (the
// compositional form spec.md §4.4/§9 permits in place of donna's fused
// 1,500-line circuit). This is fmonty.
//
// On entry and exit, every field element here is reduced (|limb| < 2^26).
func Step(q, qprime *Point, qmqp *field.Element) (double, sum Point) {
	var a, b, aa, bb, e, c, d, da, cb, t field.Element

	a.Add(&q.X, &q.Z)   // A = X + Z
	aa.Square(&a)       // AA = A^2
	b.Sub(&q.X, &q.Z)   // B = X - Z
	bb.Square(&b)       // BB = B^2
	e.Sub(&aa, &bb)     // E = AA - BB

	c.Add(&qprime.X, &qprime.Z) // C = X' + Z'
	d.Sub(&qprime.X, &qprime.Z) // D = X' - Z'
	da.Mul(&d, &a)               // DA = D*A
	cb.Mul(&c, &b)               // CB = C*B

	t.Add(&da, &cb)
	sum.X.Square(&t) // X3 = (DA+CB)^2
	t.Sub(&da, &cb)
	t.Square(&t)
	sum.Z.Mul(qmqp, &t) // Z3 = x(Q-Q') * (DA-CB)^2

	double.X.Mul(&aa, &bb) // X2 = AA*BB

	t.ScalarMultSmallReduced(&e, a24Const)
	t.Add(&aa, &t)
	double.Z.Mul(&e, &t) // Z2 = E * (AA + a24*E)

	return double, sum
}

const a24Const = 121665

// ScalarMult computes n*Q for the 32-byte clamped little-endian scalar n
// and the base point x-coordinate q, returning the resulting projective
// point. This is cmult: a constant-time Montgomery ladder.
//
// The caller is responsible for clamping n (spec.md §6). Bit 255 is
// always 0 after clamping and is never examined; ScalarMult walks bits
// 254 down to 0 — exactly the 255 iterations spec.md §4.6 specifies,
// using the XOR-with-previous-bit swap formulation it gives as the
// primary description (swap before the step using bit^prevBit, step,
// and a single corrective swap after the loop using the final bit) —
// the net swap pattern is identical to curve25519-donna's
// swap-before-and-after-every-step form.
func ScalarMult(n *[32]byte, q *field.Element) Point {
	var r0, r1 Point
	r0.X.One()
	r0.Z.Zero()
	r1.X.Set(q)
	r1.Z.One()

	var prevBit int32
	for i := 254; i >= 0; i-- {
		bit := int32(n[i/8]>>uint(i&7)) & 1
		swap := bit ^ prevBit
		field.Swap(&r0.X, &r1.X, swap)
		field.Swap(&r0.Z, &r1.Z, swap)

		double, sum := Step(&r0, &r1, q)
		r0, r1 = double, sum

		prevBit = bit
	}
	field.Swap(&r0.X, &r1.X, prevBit)
	field.Swap(&r0.Z, &r1.Z, prevBit)

	return r0
}
