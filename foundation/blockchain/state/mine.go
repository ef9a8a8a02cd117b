package state

import (
	"context"
	"errors"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// ErrStaleTip is returned when the chain changed while a proof was being
// searched for, so the proof no longer builds on the latest block.
var ErrStaleTip = errors.New("chain changed during mining")

// =============================================================================

// MineNewBlock searches for the proof that follows the latest block, then
// forges a new block holding the pending transactions and the mining reward.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	latest := s.RetrieveLatestBlock()

	s.evHandler("state: MineNewBlock: MINING: perform POW: lastProof[%d]", latest.Proof)

	// The search runs without holding the lock so transactions can be
	// submitted while mining. This can be cancelled.
	proof, err := database.POW(ctx, latest.Proof, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	// The chain may have been replaced while the search was running.
	prevHash := latest.Hash()
	if tip := s.db.LatestBlock(); tip.Index != latest.Index || tip.Hash() != prevHash {
		s.evHandler("state: MineNewBlock: MINING: stale tip: blk[%d]", latest.Index)
		return database.Block{}, ErrStaleTip
	}

	s.evHandler("state: MineNewBlock: MINING: reward miner[%s]", s.minerAccount)

	s.mempool.Add(database.NewRewardTx(s.minerAccount, s.genesis.MiningReward))

	return s.forgeBlock(proof, prevHash)
}
