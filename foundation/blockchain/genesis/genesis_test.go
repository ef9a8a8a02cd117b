package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
)

func Test_Load(t *testing.T) {
	type table struct {
		name    string
		content string
		reward  uint64
		proof   uint64
		fail    bool
	}

	tt := []table{
		{name: "override", content: `{"chain_id":2,"mining_reward":5}`, reward: 5, proof: genesis.Proof},
		{name: "proof", content: `{"proof":7}`, reward: genesis.MiningReward, proof: 7},
		{name: "emptyhash", content: `{"prev_hash":""}`, fail: true},
		{name: "badjson", content: `{"proof":`, fail: true},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "genesis.json")
			if err := os.WriteFile(path, []byte(tst.content), 0600); err != nil {
				t.Fatalf("Test %s:\tShould be able to write the genesis file: %s", tst.name, err)
			}

			gen, err := genesis.Load(path)
			if tst.fail {
				if err == nil {
					t.Fatalf("Test %s:\tShould fail to load the genesis file.", tst.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("Test %s:\tShould be able to load the genesis file: %s", tst.name, err)
			}

			if gen.MiningReward != tst.reward {
				t.Logf("Test %s:\tgot: %d", tst.name, gen.MiningReward)
				t.Logf("Test %s:\texp: %d", tst.name, tst.reward)
				t.Fatalf("Test %s:\tShould get back the right mining reward.", tst.name)
			}

			if gen.Proof != tst.proof {
				t.Logf("Test %s:\tgot: %d", tst.name, gen.Proof)
				t.Logf("Test %s:\texp: %d", tst.name, tst.proof)
				t.Fatalf("Test %s:\tShould get back the right seed proof.", tst.name)
			}

			if gen.PrevHash != genesis.PrevHash {
				t.Fatalf("Test %s:\tShould keep the default sentinel: %q", tst.name, gen.PrevHash)
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_LoadDefault(t *testing.T) {
	gen, err := genesis.Load("")
	if err != nil {
		t.Fatalf("Should be able to load the default genesis: %s", err)
	}

	if gen != genesis.Default() {
		t.Fatalf("Should get back the default genesis: %+v", gen)
	}
}
