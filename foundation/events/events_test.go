package events_test

import (
	"testing"

	"github.com/ardanlabs/toycoin/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan out ledger events.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen two subscribers are registered.", testID)
		{
			evts := events.New()
			a := evts.Acquire("a")
			b := evts.Acquire("b")

			if evts.Acquire("a") != a {
				t.Fatalf("\t%s\tTest %d:\tShould return the same channel for the same id.", failed, testID)
			}

			evts.Send("state: Commit: blk[0]: sealed")

			for name, ch := range map[string]<-chan string{"a": a, "b": b} {
				if msg := <-ch; msg != "state: Commit: blk[0]: sealed" {
					t.Fatalf("\t%s\tTest %d:\tShould deliver the event to %s, got %q.", failed, testID, name, msg)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould deliver the event to every subscriber.", success, testID)

			if err := evts.Release("a"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to release a: %v", failed, testID, err)
			}
			if _, open := <-a; open {
				t.Fatalf("\t%s\tTest %d:\tShould close a released channel.", failed, testID)
			}
			if err := evts.Release("a"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould fail to release a twice.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould release subscribers.", success, testID)

			evts.Shutdown()
			if _, open := <-b; open || evts.Subscribers() != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould close every channel on shutdown.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould close every channel on shutdown.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen a subscriber falls behind.", testID)
		{
			evts := events.New()
			ch := evts.Acquire("slow")

			for i := 0; i < 500; i++ {
				evts.Send("event")
			}

			if len(ch) != cap(ch) {
				t.Fatalf("\t%s\tTest %d:\tShould fill the buffer without blocking.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould drop events instead of blocking.", success, testID)
		}
	}
}
