package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Difficulty is the number of leading 0's the hash of the previous proof and
// a new proof must have.
const Difficulty = 4

// cancelCheck is the number of attempts between checks of the context.
const cancelCheck = 1 << 12

// =============================================================================

// POW performs the work of mining to find the smallest proof that solves the
// puzzle for the previous proof. The search can be cancelled with the context.
func POW(ctx context.Context, lastProof uint64, ev func(v string, args ...any)) (uint64, error) {
	ev("database: POW: MINING: started: lastProof[%d]", lastProof)
	defer ev("database: POW: MINING: completed")

	var proof uint64
	for {
		if proof%cancelCheck == 0 {
			if ctx.Err() != nil {
				ev("database: POW: MINING: CANCELLED: attempts[%d]", proof)
				return 0, ctx.Err()
			}
		}

		if proof > 0 && proof%1_000_000 == 0 {
			ev("database: POW: MINING: attempts[%d]", proof)
		}

		if IsProofValid(lastProof, proof) {
			ev("database: POW: MINING: SOLVED: lastProof[%d]: proof[%d]", lastProof, proof)
			return proof, nil
		}

		proof++
	}
}

// IsProofValid checks the hash of the previous proof followed by the proof
// has Difficulty leading 0's.
//
// The puzzle only depends on the previous proof and not on the content of
// the block being forged.
func IsProofValid(lastProof uint64, proof uint64) bool {
	guess := strconv.FormatUint(lastProof, 10) + strconv.FormatUint(proof, 10)
	hash := sha256.Sum256([]byte(guess))

	return isHashSolved(Difficulty, hex.EncodeToString(hash[:]))
}

// isHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty int, hash string) bool {
	const match = "0000000000000000"

	if len(hash) != 64 || difficulty > len(match) {
		return false
	}

	return hash[:difficulty] == match[:difficulty]
}
