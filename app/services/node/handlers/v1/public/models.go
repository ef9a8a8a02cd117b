package public

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// newTx is what a client submits to add a transaction. Every field is a
// pointer so an empty or zero value can be told apart from a missing one.
type newTx struct {
	Sender    *string `json:"sender" validate:"required"`
	Recipient *string `json:"recipient" validate:"required"`
	Amount    *uint64 `json:"amount" validate:"required"`
}

// newNodes is what a client submits to register peers.
type newNodes struct {
	Nodes []string `json:"nodes" validate:"required,min=1,dive,required"`
}

type message struct {
	Message string `json:"message"`
}

type minedBlock struct {
	Message      string        `json:"message"`
	Index        uint64        `json:"index"`
	Transactions []database.Tx `json:"transactions"`
	Proof        uint64        `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}

type registered struct {
	Message    string   `json:"message"`
	TotalNodes []string `json:"total_nodes"`
}

type resolved struct {
	Message  string           `json:"message"`
	Replaced bool             `json:"replaced"`
	Chain    []database.Block `json:"chain"`
}
