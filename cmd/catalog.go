// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package cmd

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zcash/hashkit"
	"github.com/zcash/hashkit/storage"
)

func openCatalog(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalog %s", path)
	}
	if err := storage.CreateTables(db); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "creating catalog tables in %s", path)
	}
	return db, nil
}

// absPaths resolves every file against the working directory, so that
// catalog entries stay valid when check runs from somewhere else.
func absPaths(files []string) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %s", f)
		}
		paths = append(paths, abs)
	}
	return paths, nil
}

// catalogAlgorithms returns the algorithm names to look up: just filter if
// it is set, else every supported algorithm.
func catalogAlgorithms(filter string) []string {
	if filter != "" {
		return []string{filter}
	}
	var names []string
	for _, a := range hashkit.Algorithms() {
		names = append(names, a.String())
	}
	return names
}

func runRecord(ctx context.Context, out io.Writer, db *sql.DB, alg hashkit.Algorithm, files []string, workers int) error {
	paths, err := absPaths(files)
	if err != nil {
		return err
	}
	results, err := hashSources(ctx, sources(nil, paths), alg.String(), alg.New, workers)
	if err != nil {
		return err
	}
	for _, r := range results {
		err := storage.StoreDigest(ctx, db, storage.Entry{
			Path:      r.name,
			Algorithm: alg.String(),
			Digest:    hex.EncodeToString(r.digest),
			Size:      r.size,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%x  %s\n", r.digest, r.name)
	}
	log.WithFields(logrus.Fields{
		"files":     len(results),
		"algorithm": alg.String(),
	}).Info("recorded digests")
	return nil
}

// listEntries drains storage.ListDigests.
func listEntries(ctx context.Context, db *sql.DB, filter string) ([]storage.Entry, error) {
	entryOut := make(chan storage.Entry)
	errOut := make(chan error)
	go storage.ListDigests(ctx, db, filter, entryOut, errOut)

	var entries []storage.Entry
	for {
		select {
		case e := <-entryOut:
			entries = append(entries, e)
		case err := <-errOut:
			if err != nil {
				return nil, errors.Wrap(err, "listing catalog")
			}
			return entries, nil
		}
	}
}

// checkEntries re-hashes the file of every entry and returns its status:
// OK, FAILED (digest differs, or the entry itself is unusable) or MISSING.
// Files are hashed in one pool per algorithm.
func checkEntries(ctx context.Context, entries []storage.Entry, workers int) ([]string, error) {
	status := make([]string, len(entries))
	groups := make(map[hashkit.Algorithm][]int)
	var order []hashkit.Algorithm
	for i, e := range entries {
		alg, err := hashkit.ParseAlgorithm(e.Algorithm)
		if err != nil {
			log.WithFields(logrus.Fields{
				"path":  e.Path,
				"error": err,
			}).Warn("catalog entry has an unknown algorithm")
			status[i] = "FAILED"
			continue
		}
		if !fileExists(e.Path) {
			status[i] = "MISSING"
			continue
		}
		if _, ok := groups[alg]; !ok {
			order = append(order, alg)
		}
		groups[alg] = append(groups[alg], i)
	}

	for _, alg := range order {
		idx := groups[alg]
		srcs := make([]source, len(idx))
		for j, i := range idx {
			srcs[j] = fileSource(entries[i].Path)
		}
		results, err := hashSources(ctx, srcs, alg.String(), alg.New, workers)
		if err != nil {
			return nil, err
		}
		for j, r := range results {
			i := idx[j]
			want, err := hex.DecodeString(entries[i].Digest)
			if err == nil && hashkit.Equal(r.digest, want) {
				status[i] = "OK"
				continue
			}
			status[i] = "FAILED"
		}
	}
	return status, nil
}

// runCheck verifies catalog entries and prints one status line per entry.
// With paths it checks only the entries recorded for those files (under
// filter, or any algorithm); otherwise every entry, restricted to filter
// when it is non-empty. Any entry that is not OK, or a path with no entry,
// makes it return errMismatch.
func runCheck(ctx context.Context, out io.Writer, db *sql.DB, filter string, paths []string, workers int) error {
	var entries []storage.Entry
	failed := 0
	if len(paths) == 0 {
		var err error
		if entries, err = listEntries(ctx, db, filter); err != nil {
			return err
		}
	} else {
		abs, err := absPaths(paths)
		if err != nil {
			return err
		}
		for _, p := range abs {
			found := false
			for _, name := range catalogAlgorithms(filter) {
				e, err := storage.GetDigest(ctx, db, p, name)
				if errors.Cause(err) == storage.ErrNotFound {
					continue
				}
				if err != nil {
					return err
				}
				entries = append(entries, e)
				found = true
			}
			if !found {
				fmt.Fprintf(out, "%s: NOT RECORDED\n", p)
				failed++
			}
		}
	}

	status, err := checkEntries(ctx, entries, workers)
	if err != nil {
		return err
	}
	for i, e := range entries {
		fmt.Fprintf(out, "%s: %s\n", e.Path, status[i])
		if status[i] != "OK" {
			if status[i] == "FAILED" {
				verifyFailures.Inc()
			}
			failed++
		}
	}

	if failed > 0 {
		log.WithFields(logrus.Fields{
			"failed":  failed,
			"checked": len(entries),
		}).Warn("catalog check failed")
		return errMismatch
	}
	return nil
}

// runForget removes the catalog entries of files, for filter or for every
// algorithm. A file with nothing to remove is reported and makes it return
// storage.ErrNotFound once all files are processed.
func runForget(ctx context.Context, out io.Writer, db *sql.DB, filter string, files []string) error {
	paths, err := absPaths(files)
	if err != nil {
		return err
	}
	var missing []string
	for _, p := range paths {
		removed := 0
		for _, name := range catalogAlgorithms(filter) {
			err := storage.DeleteDigest(ctx, db, p, name)
			if errors.Cause(err) == storage.ErrNotFound {
				continue
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: removed %s\n", p, name)
			removed++
		}
		if removed == 0 {
			fmt.Fprintf(out, "%s: NOT RECORDED\n", p)
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(storage.ErrNotFound, "%d of %d files", len(missing), len(paths))
	}
	return nil
}

// algorithmFilter returns the --algorithm name when it was given
// explicitly, else "".
func algorithmFilter(cmd *cobra.Command) (string, error) {
	if !cmd.Flags().Changed("algorithm") {
		return "", nil
	}
	alg, err := algorithm()
	if err != nil {
		return "", err
	}
	return alg.String(), nil
}

var recordCmd = &cobra.Command{
	Use:   "record files...",
	Short: "Record file digests in the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, err := algorithm()
		if err != nil {
			return err
		}
		db, err := openCatalog(opts.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		return runRecord(cmd.Context(), cmd.OutOrStdout(), db, alg, args, opts.Workers)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [--path file]...",
	Short: "Re-hash cataloged files and compare with their recorded digests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := algorithmFilter(cmd)
		if err != nil {
			return err
		}
		paths, _ := cmd.Flags().GetStringSlice("path")
		db, err := openCatalog(opts.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		return runCheck(cmd.Context(), cmd.OutOrStdout(), db, filter, paths, opts.Workers)
	},
}

var forgetCmd = &cobra.Command{
	Use:   "forget files...",
	Short: "Remove files from the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := algorithmFilter(cmd)
		if err != nil {
			return err
		}
		db, err := openCatalog(opts.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		return runForget(cmd.Context(), cmd.OutOrStdout(), db, filter, args)
	},
}

func init() {
	checkCmd.Flags().StringSlice("path", nil, "check only the entries recorded for this file (repeatable)")
}
