// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package cmd

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/zcash/hashkit"
	"github.com/zcash/hashkit/storage"
)

func newSHA256() (hashkit.Hash, error) {
	return hashkit.New(hashkit.SHA256)
}

func writeFiles(t *testing.T, contents ...string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for i, c := range contents {
		p := filepath.Join(dir, string(rune('a'+i))+".txt")
		if err := os.WriteFile(p, []byte(c), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return paths
}

func TestRunDigestText(t *testing.T) {
	var out bytes.Buffer
	err := runDigest(context.Background(), &out, hashkit.SHA256, []source{textSource("abc")}, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad  -\n"
	if out.String() != want {
		t.Fatalf("got %q want %q", out.String(), want)
	}
}

func TestRunDigestFilesInOrder(t *testing.T) {
	contents := []string{"", "abc", strings.Repeat("x", 10000), "abc"}
	paths := writeFiles(t, contents...)

	var out bytes.Buffer
	if err := runDigest(context.Background(), &out, hashkit.SHA1, sources(nil, paths), 3); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != len(paths) {
		t.Fatalf("expected %d lines, got %q", len(paths), out.String())
	}
	for i, line := range lines {
		want, err := hashkit.Hex(hashkit.SHA1, contents[i])
		if err != nil {
			t.Fatal(err)
		}
		if line != want+"  "+paths[i] {
			t.Fatalf("line %d: got %q", i, line)
		}
	}
}

func TestRunDigestMissingFile(t *testing.T) {
	var out bytes.Buffer
	err := runDigest(context.Background(), &out, hashkit.SHA256, sources(nil, []string{"no-such-file"}), 1)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatal("unexpected error", err)
	}
}

func TestRunDigestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if err := runDigest(ctx, &out, hashkit.SHA256, []source{textSource("abc")}, 1); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestSourcesSelection(t *testing.T) {
	text := ""
	if s := sources(&text, []string{"ignored"}); len(s) != 1 || s[0].name != "-" {
		t.Fatal("--text should take precedence over files")
	}
	if s := sources(nil, nil); len(s) != 1 || s[0].name != "-" {
		t.Fatal("expected stdin source")
	}
	if s := sources(nil, []string{"a", "b"}); len(s) != 2 || s[1].name != "b" {
		t.Fatal("expected one source per file")
	}
}

func TestRunHMAC(t *testing.T) {
	var out bytes.Buffer
	err := runHMAC(context.Background(), &out, hashkit.SHA256, []byte("Jefe"),
		[]source{textSource("what do ya want for nothing?")}, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843  -\n"
	if out.String() != want {
		t.Fatalf("got %q want %q", out.String(), want)
	}
}

func TestDecodeKey(t *testing.T) {
	k, err := decodeKey("0b0b", true)
	if err != nil || !bytes.Equal(k, []byte{0x0b, 0x0b}) {
		t.Fatal("hex key decode failed", k, err)
	}
	k, err = decodeKey("Jefe", false)
	if err != nil || string(k) != "Jefe" {
		t.Fatal("raw key decode failed", k, err)
	}
	if _, err := decodeKey("zz", true); err == nil {
		t.Fatal("expected error for bad hex")
	}
}

func TestRunPBKDF2(t *testing.T) {
	var out bytes.Buffer
	if err := runPBKDF2(&out, hashkit.SHA1, []byte("password"), []byte("salt"), 2, 20); err != nil {
		t.Fatal(err)
	}
	if out.String() != "ea6c014dc72d6f8ccd1ed92ace1d41f0d8de8957\n" {
		t.Fatalf("unexpected key %q", out.String())
	}

	// length 0 means the digest size
	out.Reset()
	if err := runPBKDF2(&out, hashkit.SHA512, []byte("p"), []byte("s"), 1, 0); err != nil {
		t.Fatal(err)
	}
	if len(strings.TrimSpace(out.String())) != 128 {
		t.Fatalf("expected 64-byte key, got %q", out.String())
	}

	if err := runPBKDF2(&out, hashkit.SHA1, []byte("p"), []byte("s"), 0, 20); err == nil {
		t.Fatal("expected error for zero iterations")
	}
}

func TestRunVerify(t *testing.T) {
	ctx := context.Background()
	abc := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	var out bytes.Buffer
	if err := runVerify(ctx, &out, hashkit.SHA256, nil, abc, textSource("abc")); err != nil {
		t.Fatal(err)
	}
	if out.String() != "-: OK\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	before := counterValue(verifyFailures)
	out.Reset()
	err := runVerify(ctx, &out, hashkit.SHA256, nil, abc, textSource("abd"))
	if err != errMismatch {
		t.Fatal("expected mismatch, got", err)
	}
	if out.String() != "-: FAILED\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if counterValue(verifyFailures)-before != 1 {
		t.Fatal("verify failure not counted")
	}

	// truncated expected value never matches
	if err := runVerify(ctx, &out, hashkit.SHA256, nil, abc[:62], textSource("abc")); err != errMismatch {
		t.Fatal("expected mismatch for truncated digest, got", err)
	}

	if err := runVerify(ctx, &out, hashkit.SHA256, nil, "xyz", textSource("abc")); err == nil || err == errMismatch {
		t.Fatal("expected decode error, got", err)
	}

	tag := "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"
	out.Reset()
	if err := runVerify(ctx, &out, hashkit.SHA256, []byte("Jefe"), tag, textSource("what do ya want for nothing?")); err != nil {
		t.Fatal(err)
	}
}

func openTestCatalog(t *testing.T) *sql.DB {
	t.Helper()
	db, err := openCatalog(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndCheck(t *testing.T) {
	ctx := context.Background()
	db := openTestCatalog(t)
	paths := writeFiles(t, "one", "two", "three")

	var out bytes.Buffer
	if err := runRecord(ctx, &out, db, hashkit.SHA256, paths, 2); err != nil {
		t.Fatal(err)
	}
	if err := runRecord(ctx, &out, db, hashkit.SHA1, paths[:1], 1); err != nil {
		t.Fatal(err)
	}
	count, err := storage.CountDigests(ctx, db)
	if err != nil || count != 4 {
		t.Fatal("unexpected catalog size", count, err)
	}

	out.Reset()
	if err := runCheck(ctx, &out, db, "", nil, 2); err != nil {
		t.Fatal(err, out.String())
	}
	if strings.Count(out.String(), ": OK\n") != 4 {
		t.Fatalf("unexpected check output %q", out.String())
	}

	// modify one file and remove another
	if err := os.WriteFile(paths[1], []byte("TWO"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(paths[2]); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := runCheck(ctx, &out, db, "", nil, 2); err != errMismatch {
		t.Fatal("expected mismatch, got", err)
	}
	got := out.String()
	if !strings.Contains(got, paths[1]+": FAILED\n") || !strings.Contains(got, paths[2]+": MISSING\n") {
		t.Fatalf("unexpected check output %q", got)
	}

	// only the sha1 entry, which is unchanged
	out.Reset()
	if err := runCheck(ctx, &out, db, "sha1", nil, 1); err != nil {
		t.Fatal(err)
	}
	if out.String() != paths[0]+": OK\n" {
		t.Fatalf("unexpected filtered output %q", out.String())
	}
}

// chdir switches the working directory for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestRecordStoresAbsolutePaths(t *testing.T) {
	ctx := context.Background()
	db := openTestCatalog(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rel.txt"), []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}

	chdir(t, dir)
	abs, err := filepath.Abs("rel.txt")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := runRecord(ctx, &out, db, hashkit.SHA256, []string{"rel.txt"}, 1); err != nil {
		t.Fatal(err)
	}
	e, err := storage.GetDigest(ctx, db, abs, "sha256")
	if err != nil {
		t.Fatal("entry not stored under the absolute path:", err)
	}
	if e.Digest != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Fatal("unexpected digest", e.Digest)
	}

	// check from another directory still finds the file
	chdir(t, t.TempDir())
	out.Reset()
	if err := runCheck(ctx, &out, db, "", nil, 1); err != nil {
		t.Fatal(err, out.String())
	}
	if out.String() != abs+": OK\n" {
		t.Fatalf("unexpected check output %q", out.String())
	}
}

func TestCheckUnknownAlgorithmEntry(t *testing.T) {
	ctx := context.Background()
	db := openTestCatalog(t)
	paths := writeFiles(t, "one", "two")

	var out bytes.Buffer
	if err := runRecord(ctx, &out, db, hashkit.SHA256, paths, 2); err != nil {
		t.Fatal(err)
	}
	err := storage.StoreDigest(ctx, db, storage.Entry{Path: paths[0], Algorithm: "md5", Digest: "00"})
	if err != nil {
		t.Fatal(err)
	}

	before := counterValue(verifyFailures)
	out.Reset()
	if err := runCheck(ctx, &out, db, "", nil, 2); err != errMismatch {
		t.Fatal("expected mismatch, got", err)
	}
	want := paths[0] + ": FAILED\n" + paths[0] + ": OK\n" + paths[1] + ": OK\n"
	if out.String() != want {
		t.Fatalf("got %q want %q", out.String(), want)
	}
	if counterValue(verifyFailures)-before != 1 {
		t.Fatal("unknown algorithm entry not counted as a failure")
	}
}

func TestCheckPaths(t *testing.T) {
	ctx := context.Background()
	db := openTestCatalog(t)
	paths := writeFiles(t, "one", "two", "three")

	var out bytes.Buffer
	if err := runRecord(ctx, &out, db, hashkit.SHA256, paths[:2], 2); err != nil {
		t.Fatal(err)
	}
	if err := runRecord(ctx, &out, db, hashkit.SHA512, paths[:1], 1); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := runCheck(ctx, &out, db, "", paths[:1], 2); err != nil {
		t.Fatal(err)
	}
	if out.String() != paths[0]+": OK\n"+paths[0]+": OK\n" {
		t.Fatalf("expected both algorithms checked, got %q", out.String())
	}

	out.Reset()
	if err := runCheck(ctx, &out, db, "sha512", paths[:2], 2); err != errMismatch {
		t.Fatal("expected mismatch for unrecorded path, got", err)
	}
	if out.String() != paths[1]+": NOT RECORDED\n"+paths[0]+": OK\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestForget(t *testing.T) {
	ctx := context.Background()
	db := openTestCatalog(t)
	paths := writeFiles(t, "one", "two")

	var out bytes.Buffer
	if err := runRecord(ctx, &out, db, hashkit.SHA256, paths, 2); err != nil {
		t.Fatal(err)
	}
	if err := runRecord(ctx, &out, db, hashkit.SHA1, paths[:1], 1); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := runForget(ctx, &out, db, "sha1", paths[:1]); err != nil {
		t.Fatal(err)
	}
	if out.String() != paths[0]+": removed sha1\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if _, err := storage.GetDigest(ctx, db, paths[0], "sha256"); err != nil {
		t.Fatal("sha256 entry removed by a sha1 forget:", err)
	}

	out.Reset()
	if err := runForget(ctx, &out, db, "", paths); err != nil {
		t.Fatal(err)
	}
	count, err := storage.CountDigests(ctx, db)
	if err != nil || count != 0 {
		t.Fatal("catalog not empty after forget", count, err)
	}

	out.Reset()
	err = runForget(ctx, &out, db, "", paths[:1])
	if errors.Cause(err) != storage.ErrNotFound {
		t.Fatal("expected ErrNotFound, got", err)
	}
	if out.String() != paths[0]+": NOT RECORDED\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
