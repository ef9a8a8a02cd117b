package database

import (
	"fmt"
)

// RewardSender is the sender used on the transaction that pays the miner
// for forging a block.
const RewardSender = "0"

// =============================================================================

// Tx is the transactional information between two parties. The ledger
// treats it as an opaque payload.
type Tx struct {
	Sender    string `json:"sender"`    // Who is sending the value, "0" for a mining reward.
	Recipient string `json:"recipient"` // Who is receiving the value.
	Amount    uint64 `json:"amount"`    // Amount of value being transferred.
}

// NewTx constructs a new transaction.
func NewTx(sender string, recipient string, amount uint64) Tx {
	return Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}
}

// NewRewardTx constructs the transaction paying the miner of a block.
func NewRewardTx(recipient string, amount uint64) Tx {
	return NewTx(RewardSender, recipient, amount)
}

// IsReward reports whether the transaction is a mining reward.
func (tx Tx) IsReward() bool {
	return tx.Sender == RewardSender
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%d", tx.Sender, tx.Recipient, tx.Amount)
}
