package state

import (
	"encoding/json"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// ForgeBlock appends a new block to the chain holding every pending
// transaction. When prevHash is empty the hash of the latest block is used.
func (s *State) ForgeBlock(proof uint64, prevHash string) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.forgeBlock(proof, prevHash)
}

// forgeBlock performs the forge and expects the caller to hold the lock.
func (s *State) forgeBlock(proof uint64, prevHash string) (database.Block, error) {
	latest := s.db.LatestBlock()
	if prevHash == "" {
		prevHash = latest.Hash()
	}

	block := database.NewBlock(latest.Index+1, proof, prevHash, s.mempool.Drain())

	s.evHandler("state: forgeBlock: write block[%d]: trans[%d]", block.Index, len(block.Transactions))

	if err := s.db.Write(block); err != nil {
		return database.Block{}, fmt.Errorf("write blk[%d]: %w", block.Index, err)
	}

	s.blockEvent(block)

	return block, nil
}

// blockEvent provides a specific event about a new block in the chain for
// application specific support.
func (s *State) blockEvent(block database.Block) {
	blockJSON, err := json.Marshal(block)
	if err != nil {
		blockJSON = []byte(fmt.Sprintf("%q", err.Error()))
	}

	s.evHandler(`viewer: block: {"hash":%q,"block":%s}`, block.Hash(), string(blockJSON))
}
