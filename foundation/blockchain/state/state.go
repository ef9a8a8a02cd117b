// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for mining and background consensus.
type Worker interface {
	Shutdown()
	Mine(ctx context.Context) (database.Block, error)
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	MinerAccount string
	Host         string
	Storage      database.Storage
	Genesis      genesis.Genesis
	KnownPeers   *peer.PeerSet
	PeerTimeout  time.Duration
	EvHandler    EventHandler
}

// State manages the ledger: the chain of blocks and the pending transactions.
type State struct {
	mu sync.Mutex

	minerAccount string
	host         string
	peerTimeout  time.Duration
	evHandler    EventHandler

	knownPeers *peer.PeerSet
	genesis    genesis.Genesis
	mempool    *mempool.Mempool
	db         *database.Database

	Worker Worker
}

// New constructs a new ledger holding only the genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	// Access the storage for the ledger. The genesis block is written when
	// the storage is empty.
	db, err := database.New(cfg.Storage, database.NewGenesisBlock(cfg.Genesis), ev)
	if err != nil {
		return nil, err
	}

	state := State{
		minerAccount: cfg.MinerAccount,
		host:         cfg.Host,
		peerTimeout:  cfg.PeerTimeout,
		evHandler:    ev,

		knownPeers: knownPeers,
		genesis:    cfg.Genesis,
		mempool:    mempool.New(),
		db:         db,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {

	// Make sure the storage is properly closed.
	defer func() {
		s.db.Close()
	}()

	// Stop all ledger writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
