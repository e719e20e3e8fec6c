// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package hashkit selects between the SHA-1, SHA-224, SHA-256, SHA-384 and
// SHA-512 engines of this module by Algorithm, and offers one-shot,
// streaming, HMAC and PBKDF2 entry points that accept text or bytes.
//
//	hex, _ := hashkit.Hex(hashkit.SHA256, "abc")
//	// ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad
//
// Engines are plain values with no shared state: independent messages may
// be hashed concurrently, each with its own Hash, but a single Hash must
// not be driven from more than one goroutine.
package hashkit
