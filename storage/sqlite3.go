// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package storage keeps a catalog of recorded file digests in SQLite so
// they can be checked again later.
package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("no digest recorded")
)

// Entry is one recorded digest.
type Entry struct {
	Path      string
	Algorithm string
	Digest    string // lowercase hex
	Size      int64
	Recorded  time.Time
}

func CreateTables(conn *sql.DB) error {
	digestTable := `
		CREATE TABLE IF NOT EXISTS digests (
			path TEXT NOT NULL,
			algorithm TEXT NOT NULL,
			digest TEXT NOT NULL,
			size INTEGER,
			recorded DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (path, algorithm)
		);
	`
	_, err := conn.Exec(digestTable)
	return err
}

// StoreDigest records e, replacing any earlier digest for the same path and
// algorithm. A zero Recorded time is stored as the current time.
func StoreDigest(ctx context.Context, conn *sql.DB, e Entry) error {
	insert := "REPLACE INTO digests (path, algorithm, digest, size, recorded) VALUES (?, ?, ?, ?, ?)"

	if e.Recorded.IsZero() {
		e.Recorded = time.Now().UTC()
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "creating db tx for %s", e.Path)
	}

	_, err = tx.ExecContext(ctx, insert, e.Path, e.Algorithm, e.Digest, e.Size, e.Recorded)
	if err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "storing %s digest of %s", e.Algorithm, e.Path)
	}

	err = tx.Commit()
	if err != nil {
		return errors.Wrapf(err, "committing db tx for %s", e.Path)
	}
	return nil
}

func GetDigest(ctx context.Context, db *sql.DB, path, algorithm string) (Entry, error) {
	e := Entry{Path: path, Algorithm: algorithm}
	query := "SELECT digest, size, recorded FROM digests WHERE path = ? AND algorithm = ?"
	err := db.QueryRowContext(ctx, query, path, algorithm).Scan(&e.Digest, &e.Size, &e.Recorded)
	if err == sql.ErrNoRows {
		return e, errors.Wrapf(ErrNotFound, "%s (%s)", path, algorithm)
	}
	if err != nil {
		return e, errors.Wrapf(err, "getting %s digest of %s", algorithm, path)
	}
	return e, nil
}

func DeleteDigest(ctx context.Context, db *sql.DB, path, algorithm string) error {
	query := "DELETE FROM digests WHERE path = ? AND algorithm = ?"
	result, err := db.ExecContext(ctx, query, path, algorithm)
	if err != nil {
		return errors.Wrapf(err, "deleting %s digest of %s", algorithm, path)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "checking deleted rows")
	}
	if n == 0 {
		return errors.Wrapf(ErrNotFound, "%s (%s)", path, algorithm)
	}
	return nil
}

func CountDigests(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT count(*) FROM digests").Scan(&count)
	return count, err
}

// ListDigests sends every entry, ordered by path, to entryOut, then sends
// the final error (nil on success) to errOut. An empty algorithm lists all
// algorithms.
func ListDigests(ctx context.Context, db *sql.DB, algorithm string, entryOut chan<- Entry, errOut chan<- error) {
	query := "SELECT path, algorithm, digest, size, recorded FROM digests WHERE (? = '' OR algorithm = ?) ORDER BY path, algorithm"
	result, err := db.QueryContext(ctx, query, algorithm, algorithm)
	if err != nil {
		errOut <- err
		return
	}
	defer result.Close()

	for result.Next() {
		var e Entry
		err = result.Scan(&e.Path, &e.Algorithm, &e.Digest, &e.Size, &e.Recorded)
		if err != nil {
			errOut <- err
			return
		}
		select {
		case entryOut <- e:
		case <-ctx.Done():
			errOut <- ctx.Err()
			return
		}
	}

	if err := result.Err(); err != nil {
		errOut <- err
		return
	}

	// done
	errOut <- nil
}
