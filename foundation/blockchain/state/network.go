package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

const baseURL = "http://%s/v1/node"

// NetRequestPeerChain asks the peer for its full chain.
func (s *State) NetRequestPeerChain(ctx context.Context, pr peer.Peer) (peer.Chain, error) {
	s.evHandler("state: NetRequestPeerChain: started: %s", pr)
	defer s.evHandler("state: NetRequestPeerChain: completed: %s", pr)

	url := fmt.Sprintf("%s/chain", fmt.Sprintf(baseURL, pr.Host))

	var pc peer.Chain
	if err := send(ctx, http.MethodGet, url, &pc); err != nil {
		return peer.Chain{}, err
	}

	s.evHandler("state: NetRequestPeerChain: peer-node[%s]: length[%d]", pr, pc.Length)

	return pc, nil
}

// =============================================================================

// send is a helper function to send an HTTP request to a node. Responses with
// fields the ledger doesn't know about are rejected.
func send(ctx context.Context, method string, url string, dataRecv any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return err
	}

	var client http.Client
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return errors.New(string(msg))
	}

	if dataRecv != nil {
		decoder := json.NewDecoder(resp.Body)
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(dataRecv); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	}

	return nil
}
