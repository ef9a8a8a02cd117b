package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/app/services/node/handlers"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/storage/memory"
	"github.com/ardanlabs/ledger/foundation/blockchain/worker"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/logger"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// node represents a running node for testing.
type node struct {
	state   *state.State
	public  http.Handler
	private http.Handler
}

func newNode(t *testing.T, log *zap.SugaredLogger, host string) node {
	t.Helper()

	st, err := state.New(state.Config{
		MinerAccount: "0x" + strings.Repeat("ab", 20),
		Host:         host,
		Storage:      memory.New(),
		Genesis:      genesis.Default(),
		KnownPeers:   peer.NewPeerSet(),
	})
	if err != nil {
		t.Fatalf("Should be able to construct the state: %s", err)
	}

	worker.Run(st, 0, nil)
	t.Cleanup(func() { st.Shutdown() })

	cfg := handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      log,
		State:    st,
		Evts:     events.New(),
	}

	return node{
		state:   st,
		public:  handlers.PublicMux(cfg),
		private: handlers.PrivateMux(cfg),
	}
}

func call(t *testing.T, h http.Handler, method string, path string, body string, resp any) int {
	t.Helper()

	r := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if resp != nil {
		if err := json.NewDecoder(w.Body).Decode(resp); err != nil {
			t.Fatalf("Should be able to decode the response for %s %s: %s", method, path, err)
		}
	}

	return w.Code
}

// =============================================================================

func Test_Ledger(t *testing.T) {
	log, err := logger.New("TEST", os.DevNull)
	if err != nil {
		t.Fatalf("Should be able to construct a logger: %s", err)
	}
	defer log.Sync()

	nd := newNode(t, log, "localhost:9080")

	t.Log("Given the need to work with the ledger through the public API.")
	{
		var msg struct {
			Message string `json:"message"`
		}

		status := call(t, nd.public, http.MethodPost, "/v1/transactions/new", `{"sender":"alice","recipient":"bob","amount":0}`, &msg)
		if status != http.StatusCreated || msg.Message != "Transaction will be added to block 2" {
			t.Fatalf("\t%s\tShould accept the transaction: %d %q", failed, status, msg.Message)
		}
		t.Logf("\t%s\tShould accept the transaction for block 2.", success)

		var fields struct {
			Fields map[string]string `json:"fields"`
		}
		status = call(t, nd.public, http.MethodPost, "/v1/transactions/new", `{"sender":"alice","recipient":"bob"}`, &fields)
		if status != http.StatusBadRequest || fields.Fields["amount"] == "" {
			t.Fatalf("\t%s\tShould reject a transaction missing the amount: %d %v", failed, status, fields.Fields)
		}
		t.Logf("\t%s\tShould reject a transaction missing the amount.", success)

		fields.Fields = nil
		status = call(t, nd.public, http.MethodPost, "/v1/transactions/new", `{"sender":"alice","amount":3}`, &fields)
		if status != http.StatusBadRequest || fields.Fields["recipient"] == "" {
			t.Fatalf("\t%s\tShould reject a transaction missing the recipient: %d %v", failed, status, fields.Fields)
		}
		t.Logf("\t%s\tShould reject a transaction missing the recipient.", success)

		status = call(t, nd.public, http.MethodPost, "/v1/transactions/new", `{"sender":"","recipient":"bob","amount":3}`, &msg)
		if status != http.StatusCreated || msg.Message != "Transaction will be added to block 2" {
			t.Fatalf("\t%s\tShould accept a transaction with an empty sender: %d %q", failed, status, msg.Message)
		}
		t.Logf("\t%s\tShould accept a transaction with an empty sender.", success)

		var pending []database.Tx
		call(t, nd.public, http.MethodGet, "/v1/transactions/pending", "", &pending)
		if len(pending) != 2 {
			t.Fatalf("\t%s\tShould have one pending transaction, got %d.", failed, len(pending))
		}

		var mined struct {
			Message      string        `json:"message"`
			Index        uint64        `json:"index"`
			Transactions []database.Tx `json:"transactions"`
			Proof        uint64        `json:"proof"`
			PreviousHash string        `json:"previous_hash"`
		}
		status = call(t, nd.public, http.MethodGet, "/v1/mine", "", &mined)
		if status != http.StatusOK || mined.Message != "New Block forged" {
			t.Fatalf("\t%s\tShould mine a block: %d %q", failed, status, mined.Message)
		}

		if mined.Index != 2 || mined.Proof != 35293 || len(mined.Transactions) != 3 || !mined.Transactions[2].IsReward() {
			t.Fatalf("\t%s\tShould get back the forged block: %+v", failed, mined)
		}
		t.Logf("\t%s\tShould get back the forged block.", success)

		var chain peer.Chain
		call(t, nd.public, http.MethodGet, "/v1/chain", "", &chain)
		if chain.Length != 2 || len(chain.Chain) != 2 || chain.Chain[1].PreviousHash != chain.Chain[0].Hash() {
			t.Fatalf("\t%s\tShould get back a linked chain of 2 blocks: %+v", failed, chain)
		}
		t.Logf("\t%s\tShould get back a linked chain of 2 blocks.", success)
	}
}

func Test_Nodes(t *testing.T) {
	log, err := logger.New("TEST", os.DevNull)
	if err != nil {
		t.Fatalf("Should be able to construct a logger: %s", err)
	}
	defer log.Sync()

	longer := newNode(t, log, "localhost:9180")
	for i := 0; i < 2; i++ {
		if status := call(t, longer.public, http.MethodGet, "/v1/mine", "", nil); status != http.StatusOK {
			t.Fatalf("Should be able to mine on the peer: %d", status)
		}
	}

	srv := httptest.NewServer(longer.private)
	defer srv.Close()

	nd := newNode(t, log, "localhost:9080")

	t.Log("Given the need to resolve the chain against a registered node.")
	{
		status := call(t, nd.public, http.MethodPost, "/v1/nodes/register", `{"nodes":[]}`, nil)
		if status != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould reject an empty list of nodes: %d", failed, status)
		}
		t.Logf("\t%s\tShould reject an empty list of nodes.", success)

		var reg struct {
			Message    string   `json:"message"`
			TotalNodes []string `json:"total_nodes"`
		}
		status = call(t, nd.public, http.MethodPost, "/v1/nodes/register", `{"nodes":["`+srv.URL+`"]}`, &reg)
		if status != http.StatusCreated || len(reg.TotalNodes) != 1 || reg.TotalNodes[0] != strings.TrimPrefix(srv.URL, "http://") {
			t.Fatalf("\t%s\tShould register the node: %d %+v", failed, status, reg)
		}
		t.Logf("\t%s\tShould register the node by host.", success)

		var res struct {
			Message  string           `json:"message"`
			Replaced bool             `json:"replaced"`
			Chain    []database.Block `json:"chain"`
		}
		call(t, nd.public, http.MethodGet, "/v1/nodes/resolve", "", &res)
		if !res.Replaced || res.Message != "Our chain was replaced" || len(res.Chain) != 3 {
			t.Fatalf("\t%s\tShould replace the chain: %+v", failed, res)
		}
		t.Logf("\t%s\tShould replace the chain with the longer one.", success)

		call(t, nd.public, http.MethodGet, "/v1/nodes/resolve", "", &res)
		if res.Replaced || res.Message != "Our chain is authoritative" {
			t.Fatalf("\t%s\tShould keep the chain the second time: %+v", failed, res)
		}
		t.Logf("\t%s\tShould keep the chain the second time.", success)
	}
}
