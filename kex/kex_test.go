// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kex

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/gtank/x25519"
)

// TestSessionRoundTrip exercises the whole glue path: two key pairs, a
// shared secret computed from each side, two Sessions built from it (one
// as initiator, one as responder), and a message sealed by one side and
// opened by the other in both directions.
func TestSessionRoundTrip(t *testing.T) {
	aPriv, aPub, err := GenerateKeyPair(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	bPriv, bPub, err := GenerateKeyPair(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	aShared := x25519.ScalarMult(&aPriv, &bPub)
	bShared := x25519.ScalarMult(&bPriv, &aPub)
	if aShared != bShared {
		t.Fatal("shared secrets disagree")
	}

	initiator, err := NewSession(aShared, true)
	if err != nil {
		t.Fatal(err)
	}
	responder, err := NewSession(bShared, false)
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("the quick brown fox jumps over the lazy dog")
	aad := []byte("header")

	sealed := initiator.Seal(nil, msg, aad)
	opened, err := responder.Open(nil, sealed, aad)
	if err != nil {
		t.Fatalf("responder could not open initiator's message: %v", err)
	}
	if !bytes.Equal(opened, msg) {
		t.Errorf("round-tripped message = %q, want %q", opened, msg)
	}

	reply := []byte("and the dog said nothing")
	sealedReply := responder.Seal(nil, reply, aad)
	openedReply, err := initiator.Open(nil, sealedReply, aad)
	if err != nil {
		t.Fatalf("initiator could not open responder's reply: %v", err)
	}
	if !bytes.Equal(openedReply, reply) {
		t.Errorf("round-tripped reply = %q, want %q", openedReply, reply)
	}
}

func TestSessionRejectsTamperedCiphertext(t *testing.T) {
	aPriv, aPub, _ := GenerateKeyPair(rand.Reader)
	bPriv, bPub, _ := GenerateKeyPair(rand.Reader)
	shared := x25519.ScalarMult(&aPriv, &bPub)
	otherShared := x25519.ScalarMult(&bPriv, &aPub)
	if shared != otherShared {
		t.Fatal("shared secrets disagree")
	}

	initiator, _ := NewSession(shared, true)
	responder, _ := NewSession(otherShared, false)

	sealed := initiator.Seal(nil, []byte("message"), nil)
	sealed[0] ^= 0xff

	if _, err := responder.Open(nil, sealed, nil); err == nil {
		t.Error("Open accepted a tampered ciphertext")
	}
}

func TestNonceCounterAdvances(t *testing.T) {
	priv, pub, _ := GenerateKeyPair(rand.Reader)
	shared := x25519.ScalarMult(&priv, &pub)
	s, err := NewSession(shared, true)
	if err != nil {
		t.Fatal(err)
	}

	first := s.Seal(nil, []byte("a"), nil)
	second := s.Seal(nil, []byte("a"), nil)
	if bytes.Equal(first, second) {
		t.Error("sealing the same plaintext twice produced identical ciphertexts")
	}
}
