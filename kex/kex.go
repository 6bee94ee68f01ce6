// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kex shows x25519.ScalarMult doing the job it actually gets
// used for: deriving a symmetric session from a Diffie-Hellman shared
// secret, the way TLS 1.3 and WireGuard do. It is glue, not a protocol —
// there is no handshake transcript, no replay protection, and no peer
// authentication. Nothing here is constant-time or safe for concurrent
// use; Session owns mutable nonce-counter state.
package kex

import (
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/gtank/x25519"
)

// GenerateKeyPair reads a 32-byte private scalar from rand, clamps a copy
// of it the same way x25519.ScalarMult would, and derives the matching
// public value over the base point.
func GenerateKeyPair(rand io.Reader) (priv, pub [32]byte, err error) {
	if _, err := io.ReadFull(rand, priv[:]); err != nil {
		return priv, pub, err
	}
	pub = x25519.ScalarMult(&priv, &x25519.Basepoint)
	return priv, pub, nil
}

// Session holds a pair of derived AEAD ciphers, one per direction, after
// both sides of a key exchange combine their shared secret through
// HKDF-Extract and HKDF-Expand. It is not safe for concurrent use: Seal
// and Open both advance a per-direction nonce counter.
type Session struct {
	sealer, opener cipherState
}

type cipherState struct {
	aead  cipher.AEAD
	nonce uint64
}

// expandLabel derives length bytes from secret using HKDF-Expand with a
// domain-separated label, patterned on key_exchange.go's
// hkdfExpandLabel: a length-prefixed, label-prefixed info string binds
// the derived key to both its purpose and the protocol it belongs to.
func expandLabel(secret []byte, label string, length int) []byte {
	const protocol = "x25519kex "
	info := make([]byte, 0, 2+1+len(protocol)+len(label))
	info = append(info, byte(length>>8), byte(length))
	info = append(info, byte(len(protocol)+len(label)))
	info = append(info, protocol...)
	info = append(info, label...)

	expander := hkdf.Expand(sha256.New, secret, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(expander, out); err != nil {
		panic("kex: hkdf expand failed: " + err.Error())
	}
	return out
}

// NewSession derives a Session from a raw X25519 shared secret. initiator
// selects which of the two derived keys seals outbound traffic: the
// initiator seals with the "i2r" key and opens with "r2i", the responder
// the other way around, so each side's sealer matches its peer's opener.
func NewSession(sharedSecret [32]byte, initiator bool) (*Session, error) {
	extracted := hkdf.Extract(sha256.New, sharedSecret[:], nil)

	i2r := expandLabel(extracted, "i2r", chacha20poly1305.KeySize)
	r2i := expandLabel(extracted, "r2i", chacha20poly1305.KeySize)

	i2rAEAD, err := chacha20poly1305.New(i2r)
	if err != nil {
		return nil, err
	}
	r2iAEAD, err := chacha20poly1305.New(r2i)
	if err != nil {
		return nil, err
	}

	s := &Session{}
	if initiator {
		s.sealer.aead = i2rAEAD
		s.opener.aead = r2iAEAD
	} else {
		s.sealer.aead = r2iAEAD
		s.opener.aead = i2rAEAD
	}
	return s, nil
}

// nonceFor renders a monotonic counter as a chacha20poly1305 nonce, low
// byte first. It does not advance the counter: Seal and Open each advance
// their own direction's counter after every call, since reusing a nonce
// under the same key is a catastrophic AEAD failure.
func nonceFor(counter uint64) [chacha20poly1305.NonceSize]byte {
	var nonce [chacha20poly1305.NonceSize]byte
	for i := 0; i < 8; i++ {
		nonce[i] = byte(counter >> (8 * i))
	}
	return nonce
}

// Seal encrypts and authenticates plaintext, appending the sealed output
// to dst and returning the extended slice. additionalData is
// authenticated but not encrypted.
func (s *Session) Seal(dst, plaintext, additionalData []byte) []byte {
	nonce := nonceFor(s.sealer.nonce)
	s.sealer.nonce++
	return s.sealer.aead.Seal(dst, nonce[:], plaintext, additionalData)
}

// Open authenticates and decrypts ciphertext, appending the plaintext to
// dst. The nonce counter must stay in lockstep with the peer's Seal
// calls; out-of-order delivery is not handled here (spec's non-goal:
// kex is not a protocol).
func (s *Session) Open(dst, ciphertext, additionalData []byte) ([]byte, error) {
	nonce := nonceFor(s.opener.nonce)
	s.opener.nonce++
	out, err := s.opener.aead.Open(dst, nonce[:], ciphertext, additionalData)
	if err != nil {
		return nil, errors.New("kex: message authentication failed")
	}
	return out, nil
}
