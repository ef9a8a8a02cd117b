package database_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

func Test_ValidateChain(t *testing.T) {
	type table struct {
		name   string
		mutate func(blocks []database.Block)
	}

	tt := []table{
		{name: "index", mutate: func(b []database.Block) { b[1].Index = 9 }},
		{name: "timestamp", mutate: func(b []database.Block) { b[2].Timestamp++ }},
		{name: "proof", mutate: func(b []database.Block) { b[3].Proof++ }},
		{name: "prevhash", mutate: func(b []database.Block) { b[3].PreviousHash = b[1].Hash() }},
		{name: "amount", mutate: func(b []database.Block) { b[2].Transactions[0].Amount++ }},
		{name: "recipient", mutate: func(b []database.Block) { b[1].Transactions[1].Recipient = "thief" }},
		{name: "droptx", mutate: func(b []database.Block) { b[2].Transactions = b[2].Transactions[:1] }},
	}

	blocks := mineChain(t, 4)

	t.Log("Given the need to validate a chain of blocks.")
	{
		if err := database.ValidateChain(blocks, noEvent); err != nil {
			t.Fatalf("\t%s\tShould be able to validate a mined chain: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to validate a mined chain.", success)

		for i := 0; i <= len(blocks); i++ {
			if !database.IsValidChain(blocks[:i]) {
				t.Fatalf("\t%s\tShould be able to validate a prefix of length %d.", failed, i)
			}
		}
		t.Logf("\t%s\tShould be able to validate every prefix of the chain.", success)

		for testID, tst := range tt {
			f := func(t *testing.T) {
				cpy := make([]database.Block, len(blocks))
				for i, block := range blocks {
					cpy[i] = block.Clone()
				}
				tst.mutate(cpy)

				err := database.ValidateChain(cpy, noEvent)
				if !errors.Is(err, database.ErrInvalidChain) {
					t.Fatalf("\t%s\tTest %d:\tShould not be able to validate a tampered chain: %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould not be able to validate a tampered chain: %v", success, testID, err)

				if !database.IsValidChain(blocks) {
					t.Fatalf("\t%s\tTest %d:\tShould not change the original chain.", failed, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_BlockHash(t *testing.T) {
	blocks := mineChain(t, 2)
	block := blocks[1]

	rebuilt := database.Block{
		PreviousHash: block.PreviousHash,
		Proof:        block.Proof,
		Transactions: block.Transactions,
		Timestamp:    block.Timestamp,
		Index:        block.Index,
	}

	if rebuilt.Hash() != block.Hash() {
		t.Fatalf("Should get the same hash for a block built in a different order.")
	}

	if block.Hash() != block.Clone().Hash() {
		t.Fatalf("Should get the same hash for a cloned block.")
	}

	empty := database.Block{Index: 2, Timestamp: 1.5, Proof: 7, PreviousHash: "x", Transactions: []database.Tx{}}
	none := empty
	none.Transactions = nil

	if none.Hash() != empty.Hash() {
		t.Logf("got: %s", none.Hash())
		t.Logf("exp: %s", empty.Hash())
		t.Fatalf("Should get the same hash for a nil and an empty transaction list.")
	}

	var decoded database.Block
	if err := json.Unmarshal([]byte(`{"index":2,"timestamp":1.5,"transactions":null,"proof":7,"previous_hash":"x"}`), &decoded); err != nil {
		t.Fatalf("Should be able to decode a block: %s", err)
	}

	if decoded.Hash() != empty.Hash() {
		t.Fatalf("Should get the same hash for a block decoded with null transactions.")
	}

	data, err := json.Marshal(none)
	if err != nil {
		t.Fatalf("Should be able to encode a block: %s", err)
	}

	if !strings.Contains(string(data), `"transactions":[]`) {
		t.Fatalf("Should encode a nil transaction list as empty: %s", data)
	}
}
