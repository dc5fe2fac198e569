// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Command csifish is a thin, independent command-line wrapper around the
// csifish package: generate a keypair and immediately sign a message with
// it, or verify a signature against a previously saved verifying key. The
// CLI itself is explicitly out of scope for the core (spec.md 1) and
// carries no protocol logic of its own; a signing key only ever exists
// for the lifetime of one genkey-and-sign invocation, since spec.md 6
// defines no signing-key wire encoding.
package main

import (
	"crypto"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bytemare/hash2curve"

	"github.com/vnchari/csifish"
)

const fingerprintDST = "csifish-cli-fingerprint"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error

	switch os.Args[1] {
	case "sign":
		err = runSign(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "csifish:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: csifish <sign|verify> [flags]")
	fmt.Fprintln(os.Stderr, "  sign   -msg FILE -vkout FILE -sigout FILE [-curves N -rounds N -hashdepth N -seed PASSPHRASE]")
	fmt.Fprintln(os.Stderr, "  verify -msg FILE -vk FILE -sig FILE [-hashdepth N]")
}

// fingerprint derives a short, non-secret display label for a verifying
// key's encoding by expanding it through the hash-to-curve ecosystem's
// ExpandXMD helper. This is cosmetic only (a stable, collision-resistant
// label an operator can read aloud to compare two keys) and never feeds
// keypair generation or signing.
func fingerprint(root []byte) string {
	uniform := hash2curve.ExpandXMD(crypto.SHA256, root, []byte(fingerprintDST), 8)
	return hex.EncodeToString(uniform)
}

func runSign(args []string) error {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	msgPath := fs.String("msg", "", "path to the message to sign (- for stdin)")
	vkOut := fs.String("vkout", "", "path to write the verifying key to (required)")
	sigOut := fs.String("sigout", "", "path to write the hex-encoded signature to (- for stdout)")
	curves := fs.Uint("curves", uint(csifish.Standard.Curves), "number of commitment curves C (power of two)")
	rounds := fs.Uint("rounds", uint(csifish.Standard.Rounds), "number of challenge rounds R")
	hashDepth := fs.Int("hashdepth", csifish.Standard.HashDepth, "hash iteration depth H")
	seed := fs.String("seed", "", "derive keygen and signing randomness deterministically from this passphrase (test/demo only, never for real keys)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *vkOut == "" {
		return fmt.Errorf("sign: -vkout is required")
	}

	if *seed != "" {
		csifish.SeedDeterministic([]byte(*seed))
		defer csifish.ResetRandomness()
	}

	params := csifish.Params{Curves: uint32(*curves), Rounds: uint32(*rounds), HashDepth: *hashDepth}

	msg, err := readInput(*msgPath)
	if err != nil {
		return err
	}

	sk, vk, err := csifish.GenerateKeypair(params)
	if err != nil {
		return err
	}

	sig, err := csifish.Sign(sk, msg)
	if err != nil {
		return err
	}

	if err := writeOutput(*vkOut, vk.Bytes()); err != nil {
		return err
	}

	encoded := []byte(hex.EncodeToString(sig.Marshal()))
	if err := writeOutput(valueOr(*sigOut, "-"), encoded); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "csifish: signed with C=%d R=%d H=%d, verifying key fingerprint %s\n",
		params.Curves, params.Rounds, params.HashDepth, fingerprint(vk.Bytes()))

	return nil
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	msgPath := fs.String("msg", "", "path to the message that was signed (- for stdin)")
	vkPath := fs.String("vk", "", "path to the verifying key written by sign (required)")
	sigPath := fs.String("sig", "", "path to the hex-encoded signature written by sign (required)")
	curves := fs.Uint("curves", uint(csifish.Standard.Curves), "number of commitment curves C the key was generated with")
	rounds := fs.Uint("rounds", uint(csifish.Standard.Rounds), "number of challenge rounds R the signature was produced with")
	hashDepth := fs.Int("hashdepth", csifish.Standard.HashDepth, "hash iteration depth H the signature was produced with")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *vkPath == "" || *sigPath == "" {
		return fmt.Errorf("verify: -vk and -sig are required")
	}

	params := csifish.Params{Curves: uint32(*curves), Rounds: uint32(*rounds), HashDepth: *hashDepth}

	msg, err := readInput(*msgPath)
	if err != nil {
		return err
	}

	vkBytes, err := os.ReadFile(*vkPath)
	if err != nil {
		return err
	}

	vk, err := csifish.VerifyingKeyFromBytes(params, vkBytes)
	if err != nil {
		return err
	}

	sigHex, err := os.ReadFile(*sigPath)
	if err != nil {
		return err
	}

	raw, err := hex.DecodeString(trimNewline(string(sigHex)))
	if err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}

	sig, err := csifish.UnmarshalSignature(raw, params.HashDepth)
	if err != nil {
		return err
	}

	if err := csifish.Verify(vk, msg, sig); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "csifish: signature verifies, fingerprint", fingerprint(vk.Bytes()))

	return nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}

	return s
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
