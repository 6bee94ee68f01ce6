// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package x25519 implements the X25519 function (RFC 7748): scalar
// multiplication on the Montgomery curve y^2 = x^3 + 486662x^2 + x over
// GF(2^255-19), the elliptic-curve Diffie-Hellman primitive underlying
// Curve25519. The core field arithmetic (internal/field) and Montgomery
// ladder (internal/montgomery) are constant-time: they contain no branch
// or memory access keyed on a scalar bit or a field element's value.
//
// ScalarMult is infallible by construction — any two 32-byte strings are
// valid inputs, including the identity and points on the curve's twist —
// matching the standard X25519 threat model. It does not generate keys,
// sign, hash, or validate that a point lies in the prime-order subgroup;
// see the kex package for a minimal example of combining ScalarMult with
// key generation and a symmetric session layer.
package x25519

import (
	"errors"

	"github.com/gtank/x25519/internal/field"
	"github.com/gtank/x25519/internal/montgomery"
)

// ScalarSize is the byte length of both an X25519 scalar and a point
// encoding.
const ScalarSize = 32

// Basepoint is the canonical little-endian encoding of the Curve25519
// base point's x-coordinate, 9.
var Basepoint = [32]byte{9}

// ScalarMult sets the 32-byte little-endian x-coordinate of scalar*point
// and returns it. scalar is clamped internally (spec.md §6); callers
// never need to clamp it themselves, and clamping an already-clamped
// scalar is a no-op (spec.md §8, T6).
//
// ScalarMult always succeeds: every 32-byte point is a valid input, even
// the all-zero encoding (the order-2 point u = 0) or an encoding of a point on
// the curve's quadratic twist.
func ScalarMult(scalar, point *[32]byte) [32]byte {
	clamped := clamp(scalar)

	var bp field.Element
	bp.Expand(point)

	r := montgomery.ScalarMult(&clamped, &bp)

	var zInv, x field.Element
	zInv.Invert(&r.Z)
	x.Mul(&r.X, &zInv)

	return x.Contract()
}

// clamp returns a copy of scalar with the bit pattern RFC 7748 requires
// before use as an X25519 private scalar: the low three bits of byte 0
// cleared, the high bit of byte 31 cleared, and the second-highest bit
// of byte 31 set. This pins the scalar into the prime-order subgroup and
// fixes the ladder's iteration count.
func clamp(scalar *[32]byte) [32]byte {
	var out [32]byte
	out = *scalar
	out[0] &= 0xf8
	out[31] &= 0x7f
	out[31] |= 0x40
	return out
}

// X25519 is a slice-based wrapper around ScalarMult for callers that
// don't want to manage [32]byte arrays directly, mirroring the
// golang.org/x/crypto/curve25519 entry-point shape. It is the only
// function in this package that can fail, and only on malformed input
// lengths — a boundary concern, not a core-algorithm one.
func X25519(scalar, point []byte) ([]byte, error) {
	if len(scalar) != ScalarSize {
		return nil, errors.New("x25519: invalid scalar length")
	}
	if len(point) != ScalarSize {
		return nil, errors.New("x25519: invalid point length")
	}
	var s, p [32]byte
	copy(s[:], scalar)
	copy(p[:], point)
	out := ScalarMult(&s, &p)
	return out[:], nil
}
