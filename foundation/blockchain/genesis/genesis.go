// Package genesis maintains access to the genesis settings.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Values used to construct the first block when no genesis file is provided.
const (
	PrevHash     = "1"
	Proof        = 100
	MiningReward = 1
)

// Genesis represents the genesis file.
type Genesis struct {
	Date         time.Time `json:"date"`
	ChainID      uint16    `json:"chain_id"`      // The chain id represents an unique id for this running instance.
	PrevHash     string    `json:"prev_hash"`     // Sentinel stored as the previous hash of the first block.
	Proof        uint64    `json:"proof"`         // Seed proof the first mined block must build on.
	MiningReward uint64    `json:"mining_reward"` // Reward for mining a block.
}

// Default returns the genesis settings used when no file is provided.
func Default() Genesis {
	return Genesis{
		Date:         time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		ChainID:      1,
		PrevHash:     PrevHash,
		Proof:        Proof,
		MiningReward: MiningReward,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Fields missing from the file
// keep their default value.
func Load(path string) (Genesis, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("reading genesis file: %w", err)
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis file: %w", err)
	}

	if genesis.PrevHash == "" {
		return Genesis{}, fmt.Errorf("genesis prev_hash can't be empty")
	}

	return genesis, nil
}
