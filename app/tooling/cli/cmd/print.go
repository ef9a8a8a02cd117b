package cmd

import (
	"fmt"
	"strconv"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
)

// printChain renders the blocks as a table.
func printChain(blocks []database.Block) error {
	data := pterm.TableData{
		{"Index", "Proof", "Trans", "Previous Hash", "Hash"},
	}

	for _, block := range blocks {
		data = append(data, []string{
			strconv.FormatUint(block.Index, 10),
			strconv.FormatUint(block.Proof, 10),
			strconv.Itoa(len(block.Transactions)),
			short(block.PreviousHash),
			short(block.Hash()),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// printTrans renders the transactions as a table.
func printTrans(trans []database.Tx) error {
	if len(trans) == 0 {
		pterm.Info.Println("no transactions")
		return nil
	}

	data := pterm.TableData{
		{"Sender", "Recipient", "Amount"},
	}

	for _, tx := range trans {
		sender := tx.Sender
		if tx.IsReward() {
			sender = pterm.LightYellow("reward")
		}
		data = append(data, []string{sender, tx.Recipient, strconv.FormatUint(tx.Amount, 10)})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// printBlock renders a mined block in a box.
func printBlock(mb minedBlock) error {
	body := pterm.Sprintfln("index:         %d", mb.Index) +
		pterm.Sprintfln("proof:         %d", mb.Proof) +
		pterm.Sprintfln("previous hash: %s", mb.PreviousHash) +
		pterm.Sprintf("transactions:  %d", len(mb.Transactions))

	pterm.DefaultBox.WithTitle(pterm.LightGreen(mb.Message)).WithTitleTopCenter().Println(body)

	return printTrans(mb.Transactions)
}

// short shortens a hash so tables stay readable.
func short(hash string) string {
	const size = 18
	if len(hash) <= size {
		return hash
	}
	return fmt.Sprintf("%s..%s", hash[:size-6], hash[len(hash)-4:])
}
