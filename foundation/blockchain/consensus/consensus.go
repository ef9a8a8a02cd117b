// Package consensus implements the longest valid chain rule used to settle
// differences between the chain of this node and the chains of its peers.
package consensus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// Set of error variables for skipping a peer.
var (
	ErrMalformedChain = errors.New("malformed chain")
	ErrNotLonger      = errors.New("chain is not longer than ours")
)

// =============================================================================

// FetchFunc retrieves the chain a peer is reporting.
type FetchFunc func(ctx context.Context, pr peer.Peer) (peer.Chain, error)

// ValidateFunc checks the integrity of a candidate chain.
type ValidateFunc func(blocks []database.Block) error

// Config represents everything needed to resolve the chain against the
// known peers.
type Config struct {
	Peers         []peer.Peer
	CurrentLength int
	Fetch         FetchFunc
	Validate      ValidateFunc
	PeerTimeout   time.Duration
	EvHandler     func(v string, args ...any)
}

// Result represents the outcome of a resolution. When Replaced is false,
// Chain is nil and the local chain stays authoritative.
type Result struct {
	Replaced bool
	Chain    []database.Block
	Peer     peer.Peer
}

// Resolve asks every peer for its chain at the same time and returns the
// longest valid chain that is strictly longer than the current length. A peer
// that fails to respond, responds with a malformed or invalid chain, or
// doesn't have a longer chain is skipped. Chains of equal length are settled
// by the lowest peer host so the result doesn't depend on response order.
func Resolve(ctx context.Context, cfg Config) Result {
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	validate := cfg.Validate
	if validate == nil {
		validate = func(blocks []database.Block) error {
			return database.ValidateChain(blocks, ev)
		}
	}

	ev("consensus: Resolve: started: peers[%d]: length[%d]", len(cfg.Peers), cfg.CurrentLength)
	defer ev("consensus: Resolve: completed")

	type candidate struct {
		peer   peer.Peer
		blocks []database.Block
	}

	candidates := make(chan candidate, len(cfg.Peers))

	var wg sync.WaitGroup
	wg.Add(len(cfg.Peers))

	for _, pr := range cfg.Peers {
		go func(pr peer.Peer) {
			defer wg.Done()

			blocks, err := consider(ctx, cfg, validate, pr)
			if err != nil {
				ev("consensus: Resolve: peer[%s]: SKIPPED: %s", pr, err)
				return
			}

			ev("consensus: Resolve: peer[%s]: CANDIDATE: length[%d]", pr, len(blocks))
			candidates <- candidate{peer: pr, blocks: blocks}
		}(pr)
	}

	wg.Wait()
	close(candidates)

	var best *candidate
	for c := range candidates {
		switch {
		case best == nil:
		case len(c.blocks) > len(best.blocks):
		case len(c.blocks) == len(best.blocks) && c.peer.Host < best.peer.Host:
		default:
			continue
		}

		best = &c
	}

	if best == nil {
		ev("consensus: Resolve: our chain is authoritative")
		return Result{}
	}

	ev("consensus: Resolve: chain from peer[%s] wins: length[%d]", best.peer, len(best.blocks))

	return Result{
		Replaced: true,
		Chain:    best.blocks,
		Peer:     best.peer,
	}
}

// ValidateStructure checks the chain reported by a peer can be trusted to be
// a chain at all before spending time on validating it.
func ValidateStructure(pc peer.Chain) error {
	if len(pc.Chain) == 0 {
		return fmt.Errorf("%w: no blocks", ErrMalformedChain)
	}

	if pc.Length != len(pc.Chain) {
		return fmt.Errorf("%w: reported length %d, got %d blocks", ErrMalformedChain, pc.Length, len(pc.Chain))
	}

	for i, block := range pc.Chain {
		if block.Index != uint64(i+1) {
			return fmt.Errorf("%w: block at position %d has index %d", ErrMalformedChain, i+1, block.Index)
		}
	}

	return nil
}

// =============================================================================

// consider fetches the chain from the peer and decides if it can replace
// the current chain.
func consider(ctx context.Context, cfg Config, validate ValidateFunc, pr peer.Peer) ([]database.Block, error) {
	if cfg.PeerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.PeerTimeout)
		defer cancel()
	}

	pc, err := cfg.Fetch(ctx, pr)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	if err := ValidateStructure(pc); err != nil {
		return nil, err
	}

	if pc.Length <= cfg.CurrentLength {
		return nil, fmt.Errorf("%w: got %d, ours %d", ErrNotLonger, pc.Length, cfg.CurrentLength)
	}

	if err := validate(pc.Chain); err != nil {
		return nil, err
	}

	return pc.Chain, nil
}
