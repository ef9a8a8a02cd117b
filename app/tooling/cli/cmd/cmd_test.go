package cmd

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/app/services/node/handlers"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/storage/memory"
	"github.com/ardanlabs/ledger/foundation/blockchain/worker"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/logger"
)

func Test_Profile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.toml")

	prf, err := loadProfile(path)
	if err != nil {
		t.Fatalf("Should get the defaults for a missing profile: %s", err)
	}
	if prf != defaultProfile() {
		t.Fatalf("Should get the defaults for a missing profile: %+v", prf)
	}

	exp := profile{URL: "http://node2:8080", Timeout: "5s"}
	if err := saveProfile(path, exp); err != nil {
		t.Fatalf("Should be able to save the profile: %s", err)
	}

	got, err := loadProfile(path)
	if err != nil {
		t.Fatalf("Should be able to load the profile: %s", err)
	}
	if got != exp {
		t.Logf("got: %+v", got)
		t.Logf("exp: %+v", exp)
		t.Fatalf("Should get back the saved profile.")
	}

	if _, err := (profile{URL: exp.URL, Timeout: "soon"}).client(); err == nil {
		t.Fatalf("Should reject a bad timeout.")
	}
}

func Test_Client(t *testing.T) {
	log, err := logger.New("TEST", os.DevNull)
	if err != nil {
		t.Fatalf("Should be able to construct a logger: %s", err)
	}
	defer log.Sync()

	st, err := state.New(state.Config{
		MinerAccount: "miner",
		Host:         "localhost:9080",
		Storage:      memory.New(),
		Genesis:      genesis.Default(),
	})
	if err != nil {
		t.Fatalf("Should be able to construct the state: %s", err)
	}
	worker.Run(st, 0, nil)
	defer st.Shutdown()

	srv := httptest.NewServer(handlers.PublicMux(handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      log,
		State:    st,
		Evts:     events.New(),
	}))
	defer srv.Close()

	c := newNodeClient(srv.URL+"/", 10*time.Second)

	msg, err := c.Send(database.NewTx("alice", "bob", 3))
	if err != nil || msg.Message != "Transaction will be added to block 2" {
		t.Fatalf("Should be able to send a transaction: %v %q", err, msg.Message)
	}

	trans, err := c.Pending()
	if err != nil || len(trans) != 1 {
		t.Fatalf("Should get back the pending transaction: %v %v", err, trans)
	}

	mb, err := c.Mine()
	if err != nil || mb.Index != 2 {
		t.Fatalf("Should be able to mine a block: %v %+v", err, mb)
	}

	pc, err := c.Chain()
	if err != nil || pc.Length != 2 || !database.IsValidChain(pc.Chain) {
		t.Fatalf("Should get back a valid chain of 2 blocks: %v %+v", err, pc)
	}

	if _, err := c.Register([]string{"http://"}); err == nil {
		t.Fatalf("Should get back an error for a bad node address.")
	}

	res, err := c.Resolve()
	if err != nil || res.Replaced {
		t.Fatalf("Should keep the chain without peers: %v %+v", err, res)
	}
}
