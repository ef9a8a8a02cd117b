package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
)

// mineRequest represents a request to mine the next block.
type mineRequest struct {
	ctx    context.Context
	result chan mineResult
}

// mineResult is what the mining G hands back to the requester.
type mineResult struct {
	block database.Block
	err   error
}

// miningOperations handles mining.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case req := <-w.startMining:
			if w.isShutdown() {
				req.result <- mineResult{err: ErrShutdown}
				continue
			}

			block, err := w.runMiningOperation(req.ctx)
			req.result <- mineResult{block: block, err: err}

		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation mines the next block. When the chain is replaced while
// the search is running, the search starts over on the new latest block.
func (w *Worker) runMiningOperation(ctx context.Context) (database.Block, error) {
	w.evHandler("worker: runMiningOperation: MINING: started")
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	for {
		block, err := w.mineOnce(ctx)
		if err == nil {
			return block, nil
		}

		switch {
		case w.isShutdown():
			return database.Block{}, ErrShutdown

		case ctx.Err() != nil:
			w.evHandler("worker: runMiningOperation: MINING: CANCEL: requester gone")
			return database.Block{}, ctx.Err()

		case errors.Is(err, state.ErrStaleTip), errors.Is(err, context.Canceled):
			w.evHandler("worker: runMiningOperation: MINING: chain changed: restarting")
			continue

		default:
			w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
			return database.Block{}, err
		}
	}
}

// mineOnce performs a single search that can be cancelled by a signal.
func (w *Worker) mineOnce(parent context.Context) (database.Block, error) {

	// Drain the cancel mining channel before starting.
	select {
	case <-w.cancelMining:
		w.evHandler("worker: mineOnce: MINING: drained cancel channel")
	default:
	}

	// Create a context so mining can be cancelled.
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Can't return from this function until this G is complete.
	var wg sync.WaitGroup
	wg.Add(1)

	// This G exists to cancel the mining operation.
	go func() {
		defer wg.Done()

		select {
		case <-w.cancelMining:
			w.evHandler("worker: mineOnce: MINING: CANCEL: requested")
			cancel()
		case <-w.shut:
			cancel()
		case <-ctx.Done():
		}
	}()

	t := time.Now()
	block, err := w.state.MineNewBlock(ctx)
	w.evHandler("worker: mineOnce: MINING: mining duration[%v]", time.Since(t))

	cancel()
	wg.Wait()

	return block, err
}
