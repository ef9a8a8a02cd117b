package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// client provides access to the public API of a node.
type client struct {
	url  string
	http http.Client
}

func newNodeClient(url string, timeout time.Duration) *client {
	return &client{
		url:  strings.TrimSuffix(url, "/"),
		http: http.Client{Timeout: timeout},
	}
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

// Chain returns the chain held by the node.
func (c *client) Chain() (peer.Chain, error) {
	var pc peer.Chain
	err := c.send(http.MethodGet, "/v1/chain", nil, &pc)
	return pc, err
}

// Pending returns the pending transactions held by the node.
func (c *client) Pending() ([]database.Tx, error) {
	var trans []database.Tx
	err := c.send(http.MethodGet, "/v1/transactions/pending", nil, &trans)
	return trans, err
}

// Send submits a transaction to the node.
func (c *client) Send(tx database.Tx) (message, error) {
	var msg message
	err := c.send(http.MethodPost, "/v1/transactions/new", tx, &msg)
	return msg, err
}

// Mine asks the node to mine a block.
func (c *client) Mine() (minedBlock, error) {
	var mb minedBlock
	err := c.send(http.MethodGet, "/v1/mine", nil, &mb)
	return mb, err
}

// Register registers the nodes as peers of the node.
func (c *client) Register(nodes []string) (registered, error) {
	req := struct {
		Nodes []string `json:"nodes"`
	}{
		Nodes: nodes,
	}

	var reg registered
	err := c.send(http.MethodPost, "/v1/nodes/register", req, &reg)
	return reg, err
}

// Resolve asks the node to resolve its chain against its peers.
func (c *client) Resolve() (resolved, error) {
	var res resolved
	err := c.send(http.MethodGet, "/v1/nodes/resolve", nil, &res)
	return res, err
}

// =============================================================================

// send is a helper function to send an HTTP request to the node.
func (c *client) send(method string, path string, dataSend any, dataRecv any) error {
	var body io.Reader
	if dataSend != nil {
		data, err := json.Marshal(dataSend)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.url+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var er struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		if len(er.Fields) > 0 {
			return fmt.Errorf("%s: %v", er.Error, er.Fields)
		}
		return errors.New(er.Error)
	}

	if dataRecv != nil {
		if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	}

	return nil
}
