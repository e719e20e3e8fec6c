// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package common

import "testing"

func TestOptionsValidate(t *testing.T) {
	opts := &Options{}
	opts.Validate()
	if opts.Workers != 1 {
		t.Fatal("unexpected default workers", opts.Workers)
	}
	if opts.Algorithm != "sha256" {
		t.Fatal("unexpected default algorithm", opts.Algorithm)
	}

	opts = &Options{Workers: 8, Algorithm: "sha512"}
	opts.Validate()
	if opts.Workers != 8 || opts.Algorithm != "sha512" {
		t.Fatal("Validate overwrote explicit values", opts)
	}
}

func TestVersionSet(t *testing.T) {
	if Version == "" {
		t.Fatal("empty version")
	}
}
