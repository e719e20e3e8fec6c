// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package hashkit

import "context"

// Pending is a digest being computed on another goroutine.
type Pending struct {
	done chan struct{}
	sum  []byte
	err  error
}

// SumAsync starts computing the digest of data under alg and returns
// immediately. data must not be modified until the result is ready. The
// computation always runs to completion; there is no way to cancel it.
func SumAsync(alg Algorithm, data []byte) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.sum, p.err = Digest(alg, data)
	}()
	return p
}

// Done is closed once the digest is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the digest is ready or ctx is done. A cancelled ctx
// only stops the waiting; the digest is still computed and a later Wait
// returns it.
func (p *Pending) Wait(ctx context.Context) ([]byte, error) {
	select {
	case <-p.done:
		return p.sum, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
