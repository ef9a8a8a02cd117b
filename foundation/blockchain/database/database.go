// Package database handles all the lower level support for maintaining the
// chain of blocks the ledger is built on.
package database

import (
	"errors"
	"fmt"
	"sync"
)

// ErrEmptyChain is returned when an operation requires at least one block.
var ErrEmptyChain = errors.New("chain has no blocks")

// =============================================================================

// Storage interface represents the behavior required to be implemented by any
// package providing support for storing and reading the chain.
type Storage interface {
	Write(block Block) error
	GetBlock(num uint64) (Block, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by any
// package providing support to iterate over the blocks.
type Iterator interface {
	Next() (Block, error)
	Done() bool
}

// =============================================================================

// Database manages the chain of blocks and keeps the latest block handy.
type Database struct {
	mu          sync.RWMutex
	latestBlock Block
	length      int
	storage     Storage
}

// New constructs a new database on top of the specified storage. If the
// storage has no blocks, the genesis block is written so the chain is never
// empty. Existing blocks are validated before they are accepted.
func New(storage Storage, genesisBlock Block, evHandler func(v string, args ...any)) (*Database, error) {
	db := Database{
		storage: storage,
	}

	var blocks []Block
	iter := storage.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	if len(blocks) == 0 {
		evHandler("database: New: writing genesis block")

		if err := storage.Write(genesisBlock); err != nil {
			return nil, fmt.Errorf("writing genesis block: %w", err)
		}
		blocks = append(blocks, genesisBlock)
	}

	if err := ValidateChain(blocks, evHandler); err != nil {
		return nil, err
	}

	db.latestBlock = blocks[len(blocks)-1]
	db.length = len(blocks)

	return &db, nil
}

// Close closes the underlying storage.
func (db *Database) Close() error {
	return db.storage.Close()
}

// Write adds the block to the end of the chain.
func (db *Database) Write(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.storage.Write(block); err != nil {
		return err
	}

	db.latestBlock = block
	db.length++

	return nil
}

// Replace drops every block in the chain and writes the specified blocks in
// their place. The blocks must be numbered from 1 in order, otherwise the
// chain is left untouched.
func (db *Database) Replace(blocks []Block) error {
	if len(blocks) == 0 {
		return ErrEmptyChain
	}

	for i, block := range blocks {
		if block.Index != uint64(i+1) {
			return fmt.Errorf("blk[%d] is out of order, exp %d", block.Index, i+1)
		}
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.storage.Reset(); err != nil {
		return fmt.Errorf("reset storage: %w", err)
	}

	for _, block := range blocks {
		if err := db.storage.Write(block); err != nil {
			return fmt.Errorf("write blk[%d]: %w", block.Index, err)
		}
	}

	db.latestBlock = blocks[len(blocks)-1]
	db.length = len(blocks)

	return nil
}

// LatestBlock returns the latest block in the chain.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.latestBlock
}

// Length returns the number of blocks in the chain.
func (db *Database) Length() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.length
}

// GetBlock returns the block with the specified index.
func (db *Database) GetBlock(index uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.storage.GetBlock(index)
}

// CopyBlocks returns a copy of every block in the chain in order.
func (db *Database) CopyBlocks() ([]Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, 0, db.length)

	iter := db.storage.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}
