package state

import "github.com/ardanlabs/ledger/foundation/blockchain/database"

// SubmitTransaction accepts a transaction for inclusion in the next block
// and returns the index of the block it will be added to.
func (s *State) SubmitTransaction(tx database.Tx) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mempool.Add(tx)

	s.evHandler("state: SubmitTransaction: tx[%s]", tx)

	return s.db.LatestBlock().Index + 1
}
