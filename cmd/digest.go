// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zcash/hashkit"
)

// textFlag returns the --text value, or nil when the flag was not given, so
// that an explicit empty string still hashes the empty message.
func textFlag(cmd *cobra.Command) *string {
	if !cmd.Flags().Changed("text") {
		return nil
	}
	text, _ := cmd.Flags().GetString("text")
	return &text
}

// printResults writes one "<hex>  <name>" line per result.
func printResults(out io.Writer, results []result) {
	for _, r := range results {
		fmt.Fprintf(out, "%x  %s\n", r.digest, r.name)
	}
}

// decodeKey returns the key bytes, decoding hex when asHex is set.
func decodeKey(key string, asHex bool) ([]byte, error) {
	if !asHex {
		return []byte(key), nil
	}
	b, err := hex.DecodeString(key)
	if err != nil {
		return nil, errors.Wrap(err, "decoding hex key")
	}
	return b, nil
}

func runDigest(ctx context.Context, out io.Writer, alg hashkit.Algorithm, srcs []source, workers int) error {
	results, err := hashSources(ctx, srcs, alg.String(), alg.New, workers)
	if err != nil {
		return err
	}
	printResults(out, results)
	return nil
}

func runHMAC(ctx context.Context, out io.Writer, alg hashkit.Algorithm, key []byte, srcs []source, workers int) error {
	newMAC := func() (hashkit.Hash, error) {
		return hashkit.NewHMAC(alg, key)
	}
	results, err := hashSources(ctx, srcs, "hmac-"+alg.String(), newMAC, workers)
	if err != nil {
		return err
	}
	printResults(out, results)
	return nil
}

func runPBKDF2(out io.Writer, alg hashkit.Algorithm, password, salt []byte, iter, keyLen int) error {
	if keyLen == 0 {
		keyLen = alg.Size()
	}
	dk, err := hashkit.PBKDF2(alg, password, salt, iter, keyLen)
	if err != nil {
		return err
	}
	digestsComputed.WithLabelValues("pbkdf2-" + alg.String()).Inc()
	fmt.Fprintf(out, "%x\n", dk)
	return nil
}

// runVerify hashes src (keyed when key is non-nil) and compares the result
// with expected in constant time. A mismatch returns errMismatch.
func runVerify(ctx context.Context, out io.Writer, alg hashkit.Algorithm, key []byte, expected string, src source) error {
	want, err := hex.DecodeString(expected)
	if err != nil {
		return errors.Wrap(err, "decoding expected digest")
	}
	newHash, label := alg.New, alg.String()
	if key != nil {
		newHash = func() (hashkit.Hash, error) { return hashkit.NewHMAC(alg, key) }
		label = "hmac-" + label
	}
	results, err := hashSources(ctx, []source{src}, label, newHash, 1)
	if err != nil {
		return err
	}
	if !hashkit.Equal(results[0].digest, want) {
		verifyFailures.Inc()
		log.WithFields(logrus.Fields{
			"source":    src.name,
			"algorithm": label,
		}).Warn("digest mismatch")
		fmt.Fprintf(out, "%s: FAILED\n", src.name)
		return errMismatch
	}
	fmt.Fprintf(out, "%s: OK\n", src.name)
	return nil
}

var digestCmd = &cobra.Command{
	Use:   "digest [files...]",
	Short: "Print the digest of files, text or stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, err := algorithm()
		if err != nil {
			return err
		}
		return runDigest(cmd.Context(), cmd.OutOrStdout(), alg, sources(textFlag(cmd), args), opts.Workers)
	},
}

var hmacCmd = &cobra.Command{
	Use:   "hmac --key KEY [files...]",
	Short: "Print the HMAC tag of files, text or stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, err := algorithm()
		if err != nil {
			return err
		}
		keyStr, _ := cmd.Flags().GetString("key")
		keyHex, _ := cmd.Flags().GetBool("key-hex")
		key, err := decodeKey(keyStr, keyHex)
		if err != nil {
			return err
		}
		return runHMAC(cmd.Context(), cmd.OutOrStdout(), alg, key, sources(textFlag(cmd), args), opts.Workers)
	},
}

var pbkdf2Cmd = &cobra.Command{
	Use:   "pbkdf2 --password P --salt S",
	Short: "Derive a key with PBKDF2-HMAC",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, err := algorithm()
		if err != nil {
			return err
		}
		password, _ := cmd.Flags().GetString("password")
		saltStr, _ := cmd.Flags().GetString("salt")
		saltHex, _ := cmd.Flags().GetBool("salt-hex")
		iter, _ := cmd.Flags().GetInt("iterations")
		keyLen, _ := cmd.Flags().GetInt("length")
		salt, err := decodeKey(saltStr, saltHex)
		if err != nil {
			return err
		}
		return runPBKDF2(cmd.OutOrStdout(), alg, []byte(password), salt, iter, keyLen)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify --expected HEX [file]",
	Short: "Check a file, text or stdin against an expected digest or HMAC tag",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, err := algorithm()
		if err != nil {
			return err
		}
		expected, _ := cmd.Flags().GetString("expected")
		var key []byte
		if cmd.Flags().Changed("key") {
			keyStr, _ := cmd.Flags().GetString("key")
			keyHex, _ := cmd.Flags().GetBool("key-hex")
			if key, err = decodeKey(keyStr, keyHex); err != nil {
				return err
			}
		}
		return runVerify(cmd.Context(), cmd.OutOrStdout(), alg, key, expected, sources(textFlag(cmd), args)[0])
	},
}

func init() {
	digestCmd.Flags().String("text", "", "hash this text instead of files")

	hmacCmd.Flags().String("text", "", "authenticate this text instead of files")
	hmacCmd.Flags().String("key", "", "HMAC key")
	hmacCmd.Flags().Bool("key-hex", false, "the key is hex encoded")
	hmacCmd.MarkFlagRequired("key")

	pbkdf2Cmd.Flags().String("password", "", "password")
	pbkdf2Cmd.Flags().String("salt", "", "salt")
	pbkdf2Cmd.Flags().Bool("salt-hex", false, "the salt is hex encoded")
	pbkdf2Cmd.Flags().Int("iterations", 4096, "iteration count")
	pbkdf2Cmd.Flags().Int("length", 0, "derived key length in bytes (default the digest size)")
	pbkdf2Cmd.MarkFlagRequired("password")

	verifyCmd.Flags().String("text", "", "verify this text instead of a file")
	verifyCmd.Flags().String("expected", "", "expected digest or tag, hex encoded")
	verifyCmd.Flags().String("key", "", "verify an HMAC tag under this key")
	verifyCmd.Flags().Bool("key-hex", false, "the key is hex encoded")
	verifyCmd.MarkFlagRequired("expected")
}
