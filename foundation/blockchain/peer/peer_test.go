package peer_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

func Test_CRUD(t *testing.T) {
	type table struct {
		name  string
		peers []peer.Peer
	}

	tt := []table{
		{
			name:  "basic",
			peers: []peer.Peer{{Host: "host3"}, {Host: "host1"}, {Host: "host2"}},
		},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			ps := peer.NewPeerSet()

			for _, peer := range tst.peers {
				if !ps.Add(peer) {
					t.Fatalf("Test %s:\tShould be able to add peer %s.", tst.name, peer)
				}
			}

			if ps.Add(tst.peers[0]) {
				t.Fatalf("Test %s:\tShould not add the same peer twice.", tst.name)
			}

			peers := ps.Copy("")
			if len(peers) != len(tst.peers) {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.peers))
				t.Fatalf("Test %s:\tShould get back the right peers.", tst.name)
			}

			if peers[0].Host != "host1" || peers[2].Host != "host3" {
				t.Fatalf("Test %s:\tShould get back the peers sorted by host: %v", tst.name, peers)
			}

			peers = ps.Copy("host2")
			if len(peers) != len(tst.peers)-1 {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.peers)-1)
				t.Fatalf("Test %s:\tShould get back the right peers.", tst.name)
			}

			ps.Remove(peer.New("host1"))
			if peers := ps.Copy(""); len(peers) != len(tst.peers)-1 {
				t.Fatalf("Test %s:\tShould be able to remove a peer.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_Parse(t *testing.T) {
	type table struct {
		address string
		host    string
		fail    bool
	}

	tt := []table{
		{address: "http://192.168.0.5:5000", host: "192.168.0.5:5000"},
		{address: "http://192.168.0.5:5000/v1/node/chain", host: "192.168.0.5:5000"},
		{address: "192.168.0.5:9080", host: "192.168.0.5:9080"},
		{address: " localhost:9180 ", host: "localhost:9180"},
		{address: "", fail: true},
		{address: "http://", fail: true},
	}

	for _, tst := range tt {
		pr, err := peer.Parse(tst.address)
		if tst.fail {
			if err == nil {
				t.Fatalf("Should not be able to parse %q.", tst.address)
			}
			continue
		}

		if err != nil {
			t.Fatalf("Should be able to parse %q: %s", tst.address, err)
		}

		if pr.Host != tst.host {
			t.Logf("got: %s", pr.Host)
			t.Logf("exp: %s", tst.host)
			t.Fatalf("Should get back the right host for %q.", tst.address)
		}
	}
}
