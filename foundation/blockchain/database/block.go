package database

import (
	"encoding/json"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// Block represents a group of transactions batched together. A block is
// never modified once it is part of a chain.
type Block struct {
	Index        uint64  `json:"index"`         // Position of the block in the chain starting at 1.
	Timestamp    float64 `json:"timestamp"`     // Seconds since epoch the block was forged.
	Transactions []Tx    `json:"transactions"`  // Transactions forged into this block.
	Proof        uint64  `json:"proof"`         // Value that solves the POW puzzle for the previous proof.
	PreviousHash string  `json:"previous_hash"` // Hash of the previous block in the chain.
}

// NewBlock constructs a block with a copy of the transactions.
func NewBlock(index uint64, proof uint64, previousHash string, trans []Tx) Block {
	txs := make([]Tx, len(trans))
	copy(txs, trans)

	return Block{
		Index:        index,
		Timestamp:    Now(),
		Transactions: txs,
		Proof:        proof,
		PreviousHash: previousHash,
	}
}

// NewGenesisBlock constructs the first block of a chain from the genesis
// settings.
func NewGenesisBlock(gen genesis.Genesis) Block {
	return NewBlock(1, gen.Proof, gen.PrevHash, nil)
}

// Clone returns a copy of the block that shares no memory with the original.
func (b Block) Clone() Block {
	if b.Transactions != nil {
		txs := make([]Tx, len(b.Transactions))
		copy(txs, b.Transactions)
		b.Transactions = txs
	}

	return b
}

// MarshalJSON implements the json.Marshaler interface. A block with no
// transactions is always written with an empty list, never null.
func (b Block) MarshalJSON() ([]byte, error) {
	type block Block

	if b.Transactions == nil {
		b.Transactions = []Tx{}
	}

	return json.Marshal(block(b))
}

// Hash returns the unique hash for the Block.
func (b Block) Hash() string {
	return signature.Hash(b)
}

// Now returns the current time in fractional seconds since epoch.
func Now() float64 {
	return float64(time.Now().UTC().UnixMicro()) / 1e6
}
