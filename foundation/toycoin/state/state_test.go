package state_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ardanlabs/toycoin/foundation/toycoin/ledger"
	"github.com/ardanlabs/toycoin/foundation/toycoin/state"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_ConcurrentAccess(t *testing.T) {
	t.Log("Given the need to serialize concurrent ledger operations.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen many miners guess and wire at once.", testID)
		{
			const miners = 16

			st := state.New(state.Config{GrantAmount: 4})

			var wg sync.WaitGroup
			wg.Add(miners)
			for i := 0; i < miners; i++ {
				go func(i int) {
					defer wg.Done()
					miner := fmt.Sprintf("miner%d", i)

					// Exactly one of these guesses matches the genesis proof.
					for v := 0; v <= 255; v++ {
						st.Guess(byte(v), miner)
					}
					st.Wire(miner, "pool", 1)
					st.Balances()
				}(i)
			}
			wg.Wait()

			balances := st.Balances()
			if balances["pool"] != miners {
				t.Fatalf("\t%s\tTest %d:\tShould have pooled %d coins, got %d.", failed, testID, miners, balances["pool"])
			}
			for i := 0; i < miners; i++ {
				if got := balances[fmt.Sprintf("miner%d", i)]; got != 3 {
					t.Fatalf("\t%s\tTest %d:\tShould leave miner%d with 3 coins, got %d.", failed, testID, i, got)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould apply every operation exactly once.", success, testID)

			if err := st.Commit(); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to commit: %v", failed, testID, err)
			}

			status := st.Status()
			if status.CommittedLength != 1 || status.Pending != 0 || len(st.Chain()) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould have committed one block: %+v", failed, testID, status)
			}
			t.Logf("\t%s\tTest %d:\tShould have committed one block.", success, testID)

			if err := st.Verify(); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould verify the chain: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould verify the chain.", success, testID)
		}
	}
}

func Test_Events(t *testing.T) {
	t.Log("Given the need to report ledger activity.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a commit is rejected and then accepted.", testID)
		{
			var events []string
			ev := func(v string, args ...any) {
				events = append(events, fmt.Sprintf(v, args...))
			}

			st := state.New(state.Config{EvHandler: ev})

			if err := st.Wire("alice", "bob", -3); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould reject a negative wire.", failed, testID)
			}
			st.Wire("alice", "bob", 3)

			var nbe *ledger.NegativeBalancesError
			if err := st.Commit(); !errors.As(err, &nbe) {
				t.Fatalf("\t%s\tTest %d:\tShould reject the commit, got %v.", failed, testID, err)
			}

			st.Guess(ledger.GenesisProof, "alice")
			if err := st.Commit(); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to commit: %v", failed, testID, err)
			}

			exp := []string{
				"state: Wire: from[alice]: to[bob]: amount[-3]: REJECTED",
				"state: Wire: from[alice]: to[bob]: amount[3]: accepted",
				"state: Commit: REJECTED: account[alice]: balance[-3]",
				fmt.Sprintf("state: Guess: miner[alice]: guess[%d]: CORRECT", ledger.GenesisProof),
				"state: Commit: blk[0]: sealed",
			}
			if len(events) != len(exp) {
				t.Fatalf("\t%s\tTest %d:\tShould emit %d events, got %d: %v", failed, testID, len(exp), len(events), events)
			}
			for i := range exp {
				if !strings.HasPrefix(events[i], exp[i]) {
					t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, events[i])
					t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, exp[i])
					t.Fatalf("\t%s\tTest %d:\tShould emit the expected event.", failed, testID)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould emit one event per operation.", success, testID)

			if got := st.Balance("alice"); got != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould leave alice with 1 coin, got %d.", failed, testID, got)
			}
			t.Logf("\t%s\tTest %d:\tShould leave alice with 1 coin.", success, testID)
		}
	}
}
