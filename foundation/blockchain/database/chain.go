package database

import (
	"errors"
	"fmt"
)

// ErrInvalidChain is returned when a chain fails the hash or proof of
// work checks.
var ErrInvalidChain = errors.New("invalid chain")

// =============================================================================

// ValidateChain walks the chain pairwise and checks every block is linked to
// the hash of the block before it and solves the proof of work of the block
// before it. A chain with less than two blocks is valid.
func ValidateChain(blocks []Block, evHandler func(v string, args ...any)) error {
	for i := 1; i < len(blocks); i++ {
		prevBlock := blocks[i-1]
		block := blocks[i]

		evHandler("database: ValidateChain: validate: blk[%d]: check: previous hash does match previous block", block.Index)

		if hash := prevBlock.Hash(); block.PreviousHash != hash {
			return fmt.Errorf("%w: blk[%d]: previous hash doesn't match previous block, got %s, exp %s", ErrInvalidChain, block.Index, block.PreviousHash, hash)
		}

		evHandler("database: ValidateChain: validate: blk[%d]: check: proof solves previous proof", block.Index)

		if !IsProofValid(prevBlock.Proof, block.Proof) {
			return fmt.Errorf("%w: blk[%d]: proof %d doesn't solve previous proof %d", ErrInvalidChain, block.Index, block.Proof, prevBlock.Proof)
		}
	}

	return nil
}

// IsValidChain is the boolean form of ValidateChain.
func IsValidChain(blocks []Block) bool {
	return ValidateChain(blocks, func(string, ...any) {}) == nil
}
