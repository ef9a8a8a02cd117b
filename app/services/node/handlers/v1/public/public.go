// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ardanlabs/ledger/business/sys/metrics"
	"github.com/ardanlabs/ledger/business/sys/validate"
	v1 "github.com/ardanlabs/ledger/business/web/v1"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/worker"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Mine mines a new block holding the pending transactions and the mining
// reward and returns it.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	block, err := h.State.Worker.Mine(ctx)
	if err != nil {
		if errors.Is(err, worker.ErrShutdown) {
			return v1.NewRequestError(err, http.StatusServiceUnavailable)
		}
		return fmt.Errorf("mining: %w", err)
	}

	metrics.AddBlocksMined(ctx)
	h.Log.Infow("mined block", "traceid", v.TraceID, "index", block.Index, "proof", block.Proof, "trans", len(block.Transactions))

	resp := minedBlock{
		Message:      "New Block forged",
		Index:        block.Index,
		Transactions: block.Transactions,
		Proof:        block.Proof,
		PreviousHash: block.PreviousHash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitTransaction adds a new transaction to the pending transactions.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return v1.NewRequestError(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := validate.Check(ntx); err != nil {
		return err
	}

	tx := database.NewTx(*ntx.Sender, *ntx.Recipient, *ntx.Amount)

	h.Log.Infow("add tran", "traceid", v.TraceID, "sender", tx.Sender, "recipient", tx.Recipient, "amount", tx.Amount)
	index := h.State.SubmitTransaction(tx)

	resp := message{
		Message: fmt.Sprintf("Transaction will be added to block %d", index),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Mempool returns the set of pending transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveMempool(), http.StatusOK)
}

// Chain returns the full chain.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks, err := h.State.RetrieveChain()
	if err != nil {
		return err
	}

	resp := peer.Chain{
		Chain:  blocks,
		Length: len(blocks),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RegisterNodes adds the specified nodes to the known peers.
func (h Handlers) RegisterNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nn newNodes
	if err := web.Decode(r, &nn); err != nil {
		return v1.NewRequestError(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := validate.Check(nn); err != nil {
		return err
	}

	peers := make([]peer.Peer, len(nn.Nodes))
	for i, address := range nn.Nodes {
		pr, err := peer.Parse(address)
		if err != nil {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}
		peers[i] = pr
	}

	for _, pr := range peers {
		if h.State.AddKnownPeer(pr) {
			h.Log.Infow("add peer", "traceid", v.TraceID, "host", pr.Host)
		}
	}

	known := h.State.RetrieveKnownPeers()
	resp := registered{
		Message:    "New nodes have been added",
		TotalNodes: make([]string, len(known)),
	}
	for i, pr := range known {
		resp.TotalNodes[i] = pr.Host
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Resolve replaces the chain with the longest valid chain held by the known
// peers when one is longer than ours.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	replaced, blocks, err := h.State.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}

	resp := resolved{
		Message:  "Our chain is authoritative",
		Replaced: replaced,
		Chain:    blocks,
	}

	if replaced {
		metrics.AddReplacements(ctx)
		resp.Message = "Our chain was replaced"
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
