// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x25519

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"
)

func TestBasepointEncoding(t *testing.T) {
	var want [32]byte
	want[0] = 9
	if Basepoint != want {
		t.Errorf("Basepoint = %x, want %x", Basepoint, want)
	}
}

// TestClampIsIdempotent checks spec.md's T6: clamping an already-clamped
// scalar must be a no-op, since ScalarMult clamps its input internally on
// every call.
func TestClampIsIdempotent(t *testing.T) {
	var s [32]byte
	if _, err := io.ReadFull(rand.Reader, s[:]); err != nil {
		t.Fatal(err)
	}
	once := clamp(&s)
	twice := clamp(&once)
	if once != twice {
		t.Errorf("clamp is not idempotent: %x != %x", once, twice)
	}
}

// TestIdentityPoint checks spec.md's T4: the all-zero u-coordinate (the
// order-2 point (0, 0)) maps to the all-zero
// output for every scalar, clamped or not.
func TestIdentityPoint(t *testing.T) {
	var zero, scalar [32]byte
	if _, err := io.ReadFull(rand.Reader, scalar[:]); err != nil {
		t.Fatal(err)
	}
	got := ScalarMult(&scalar, &zero)
	if got != zero {
		t.Errorf("ScalarMult(scalar, 0) = %x, want all-zero", got)
	}
}

// TestClampedBitsDontAffectResult checks that
// two scalars differing only in the bits clamp() fixes yield the same
// result, since ScalarMult must clamp every scalar it's given.
func TestClampedBitsDontAffectResult(t *testing.T) {
	var s, point [32]byte
	if _, err := io.ReadFull(rand.Reader, s[:]); err != nil {
		t.Fatal(err)
	}
	if _, err := io.ReadFull(rand.Reader, point[:]); err != nil {
		t.Fatal(err)
	}

	var sAltered [32]byte
	sAltered = s
	// Flip exactly the bits clamp() always overwrites anyway.
	sAltered[0] ^= 0x07
	sAltered[31] ^= 0xc0

	got1 := ScalarMult(&s, &point)
	got2 := ScalarMult(&sAltered, &point)
	if got1 != got2 {
		t.Error("bits at the clamped scalar's fixed positions affected the result")
	}
}

// TestDiffieHellmanSymmetry is the standard ECDH correctness check: two
// parties deriving a shared secret from each other's public values must
// agree, for random private scalars.
func TestDiffieHellmanSymmetry(t *testing.T) {
	for i := 0; i < 16; i++ {
		var a, b [32]byte
		if _, err := io.ReadFull(rand.Reader, a[:]); err != nil {
			t.Fatal(err)
		}
		if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
			t.Fatal(err)
		}

		A := ScalarMult(&a, &Basepoint)
		B := ScalarMult(&b, &Basepoint)

		sharedFromA := ScalarMult(&a, &B)
		sharedFromB := ScalarMult(&b, &A)

		if sharedFromA != sharedFromB {
			t.Fatalf("trial %d: shared secrets disagree: %x != %x", i, sharedFromA, sharedFromB)
		}
	}
}

func TestX25519WrapperMatchesScalarMult(t *testing.T) {
	var s, p [32]byte
	if _, err := io.ReadFull(rand.Reader, s[:]); err != nil {
		t.Fatal(err)
	}
	if _, err := io.ReadFull(rand.Reader, p[:]); err != nil {
		t.Fatal(err)
	}

	want := ScalarMult(&s, &p)
	got, err := X25519(s[:], p[:])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want[:]) {
		t.Errorf("X25519 = %x, want %x", got, want)
	}
}

func TestX25519RejectsBadLengths(t *testing.T) {
	ok := make([]byte, ScalarSize)
	short := make([]byte, ScalarSize-1)

	if _, err := X25519(short, ok); err == nil {
		t.Error("X25519 accepted a short scalar")
	}
	if _, err := X25519(ok, short); err == nil {
		t.Error("X25519 accepted a short point")
	}
}
