// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package cmd

import (
	"cmp"
	"context"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/zcash/hashkit"
	"github.com/zcash/hashkit/common/logging"
)

// source is one input to hash: a file, literal text or stdin.
type source struct {
	name string
	open func() (io.ReadCloser, error)
}

func textSource(text string) source {
	return source{"-", func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(text)), nil
	}}
}

func stdinSource() source {
	return source{"-", func() (io.ReadCloser, error) {
		return io.NopCloser(os.Stdin), nil
	}}
}

func fileSource(path string) source {
	return source{path, func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", path)
		}
		return f, nil
	}}
}

// sources returns the --text input if it was given, else one source per
// file argument, else stdin.
func sources(text *string, files []string) []source {
	if text != nil {
		return []source{textSource(*text)}
	}
	if len(files) == 0 {
		return []source{stdinSource()}
	}
	srcs := make([]source, 0, len(files))
	for _, f := range files {
		srcs = append(srcs, fileSource(f))
	}
	return srcs
}

type result struct {
	index  int
	name   string
	size   int64
	digest []byte
}

// hashSources streams every source through its own context from newHash,
// running at most workers at a time. Results are in source order. label
// names the computation in metrics.
func hashSources(ctx context.Context, srcs []source, label string, newHash func() (hashkit.Hash, error), workers int) ([]result, error) {
	p := pool.NewWithResults[result]().WithContext(ctx).WithMaxGoroutines(max(workers, 1))
	for i, src := range srcs {
		p.Go(func(ctx context.Context) (result, error) {
			res := result{index: i, name: src.name}
			err := logging.Timed(log, "hash", logrus.Fields{"source": src.name, "algorithm": label}, func() error {
				h, err := newHash()
				if err != nil {
					return err
				}
				r, err := src.open()
				if err != nil {
					return err
				}
				defer r.Close()
				res.size, err = io.Copy(h, contextReader{ctx, r})
				if err != nil {
					return errors.Wrapf(err, "reading %s", src.name)
				}
				res.digest = h.Digest()
				return nil
			})
			if err != nil {
				return res, err
			}
			bytesHashed.Add(float64(res.size))
			digestsComputed.WithLabelValues(label).Inc()
			return res, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(results, func(a, b result) int { return cmp.Compare(a.index, b.index) })
	return results, nil
}

// contextReader stops a long read once ctx is cancelled.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
