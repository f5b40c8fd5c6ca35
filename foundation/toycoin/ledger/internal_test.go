package ledger

import "testing"

func Test_ProofRotation(t *testing.T) {
	l := New(DefaultGrantAmount)

	for i := 0; i < 20; i++ {
		proof := l.current().Proof

		if !l.Guess(proof, "miner") {
			t.Fatalf("block %d: should accept the current proof %d", l.CommittedLength(), proof)
		}
		if l.Guess(proof+1, "miner") {
			t.Fatalf("block %d: should reject %d", l.CommittedLength(), proof+1)
		}

		if err := l.Commit(); err != nil {
			t.Fatalf("block %d: should commit: %v", l.CommittedLength(), err)
		}
	}

	if got, exp := l.Balance()["miner"], int64(20*DefaultGrantAmount); got != exp {
		t.Fatalf("got %d, exp %d", got, exp)
	}

	if err := l.Verify(); err != nil {
		t.Fatalf("should verify: %v", err)
	}

	l.blocks[1].Proof++
	if err := l.Verify(); err == nil {
		t.Fatal("should detect a modified committed block")
	}
}
