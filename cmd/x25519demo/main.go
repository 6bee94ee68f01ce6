// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command x25519demo exercises the x25519 and kex packages from the
// command line: either a raw scalar multiplication against a supplied
// point, or a full two-party key exchange followed by a sealed message
// round trip. It is a demonstration, not a tool meant to protect real
// secrets — keys and messages are printed to stdout.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"

	"github.com/gtank/x25519"
	"github.com/gtank/x25519/kex"
)

func main() {
	scalarHex := flag.String("scalar", "", "hex-encoded 32-byte scalar (raw ScalarMult mode)")
	pointHex := flag.String("point", "", "hex-encoded 32-byte point (raw ScalarMult mode, defaults to the base point)")
	message := flag.String("message", "the quick brown fox jumps over the lazy dog", "message to seal in exchange mode")
	flag.Parse()

	if *scalarHex != "" {
		if err := runScalarMult(*scalarHex, *pointHex); err != nil {
			log.Fatalf("scalar multiplication failed: %s", err)
		}
		return
	}

	if err := runExchange(*message); err != nil {
		log.Fatalf("key exchange demo failed: %s", err)
	}
}

func runScalarMult(scalarHex, pointHex string) error {
	scalarBytes, err := hex.DecodeString(scalarHex)
	if err != nil {
		return fmt.Errorf("decoding scalar: %w", err)
	}

	point := x25519.Basepoint[:]
	if pointHex != "" {
		point, err = hex.DecodeString(pointHex)
		if err != nil {
			return fmt.Errorf("decoding point: %w", err)
		}
	}

	out, err := x25519.X25519(scalarBytes, point)
	if err != nil {
		return err
	}

	fmt.Printf("scalar : %x\n", scalarBytes)
	fmt.Printf("point  : %x\n", point)
	fmt.Printf("result : %x\n", out)
	return nil
}

func runExchange(message string) error {
	alicePriv, alicePub, err := kex.GenerateKeyPair(rand.Reader)
	if err != nil {
		return fmt.Errorf("generating Alice's key pair: %w", err)
	}
	bobPriv, bobPub, err := kex.GenerateKeyPair(rand.Reader)
	if err != nil {
		return fmt.Errorf("generating Bob's key pair: %w", err)
	}

	fmt.Printf("alice public : %x\n", alicePub)
	fmt.Printf("bob public   : %x\n", bobPub)

	aliceShared := x25519.ScalarMult(&alicePriv, &bobPub)
	bobShared := x25519.ScalarMult(&bobPriv, &alicePub)
	if aliceShared != bobShared {
		return fmt.Errorf("shared secrets disagree: %x != %x", aliceShared, bobShared)
	}
	fmt.Printf("shared secret: %x\n", aliceShared)

	alice, err := kex.NewSession(aliceShared, true)
	if err != nil {
		return fmt.Errorf("building Alice's session: %w", err)
	}
	bob, err := kex.NewSession(bobShared, false)
	if err != nil {
		return fmt.Errorf("building Bob's session: %w", err)
	}

	sealed := alice.Seal(nil, []byte(message), nil)
	fmt.Printf("sealed       : %x\n", sealed)

	opened, err := bob.Open(nil, sealed, nil)
	if err != nil {
		return fmt.Errorf("Bob could not open Alice's message: %w", err)
	}
	fmt.Printf("opened       : %s\n", opened)

	return nil
}
