package state

import (
	"context"

	"github.com/ardanlabs/ledger/foundation/blockchain/consensus"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Resolve asks the known peers for their chains and replaces the local chain
// with the longest valid one when it is longer than ours. It reports whether
// the chain was replaced along with the chain now held by the ledger.
func (s *State) Resolve(ctx context.Context) (bool, []database.Block, error) {
	s.evHandler("state: Resolve: started")
	defer s.evHandler("state: Resolve: completed")

	result := consensus.Resolve(ctx, consensus.Config{
		Peers:         s.RetrieveKnownPeers(),
		CurrentLength: s.db.Length(),
		Fetch:         s.NetRequestPeerChain,
		PeerTimeout:   s.peerTimeout,
		EvHandler:     s.evHandler,
	})

	replaced, blocks, err := s.replaceChain(result)
	if err != nil {
		return false, nil, err
	}

	if replaced {
		s.evHandler("viewer: replaced: peer[%s]: length[%d]", result.Peer, len(result.Chain))

		// Any search in progress is building on a block that is gone.
		if s.Worker != nil {
			s.Worker.SignalCancelMining()
		}
	}

	return replaced, blocks, nil
}

// replaceChain swaps in the winning chain and returns the chain the ledger
// holds once the decision is made. A block may have been forged while the
// peers were being asked, so the candidate must still be longer.
func (s *State) replaceChain(result consensus.Result) (bool, []database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false

	switch length := s.db.Length(); {
	case !result.Replaced:
	case len(result.Chain) <= length:
		s.evHandler("state: replaceChain: candidate no longer longer: got[%d]: ours[%d]", len(result.Chain), length)
	default:
		if err := s.db.Replace(result.Chain); err != nil {
			return false, nil, err
		}
		replaced = true
	}

	blocks, err := s.db.CopyBlocks()
	if err != nil {
		return false, nil, err
	}

	return replaced, blocks, nil
}
