package handlers_test

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/toycoin/app/services/toycoin/handlers"
	"github.com/ardanlabs/toycoin/business/web/errs"
	"github.com/ardanlabs/toycoin/foundation/events"
	"github.com/ardanlabs/toycoin/foundation/toycoin/ledger"
	"github.com/ardanlabs/toycoin/foundation/toycoin/state"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// LedgerTests holds methods for each ledger subtest. This type allows
// passing dependencies for tests while still providing a convenient syntax
// when subtests are registered.
type LedgerTests struct {
	app   http.Handler
	state *state.State
	evts  *events.Events
}

func (lt *LedgerTests) do(method string, path string, body string) *httptest.ResponseRecorder {
	var r *http.Request
	switch body {
	case "":
		r = httptest.NewRequest(method, path, nil)
	default:
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}

	w := httptest.NewRecorder()
	lt.app.ServeHTTP(w, r)

	return w
}

func Test_Ledger(t *testing.T) {
	log := zaptest.NewLogger(t).Sugar()
	evts := events.New()

	st := state.New(state.Config{
		GrantAmount: ledger.DefaultGrantAmount,
		EvHandler: func(v string, args ...any) {
			evts.Send(fmt.Sprintf(v, args...))
		},
		Options: []func(l *ledger.Ledger){
			ledger.WithProofSource(func() (byte, error) { return 200, nil }),
		},
	})

	lt := LedgerTests{
		app: handlers.APIMux(handlers.APIMuxConfig{
			Shutdown: make(chan os.Signal, 1),
			Log:      log,
			State:    st,
			Evts:     evts,
		}),
		state: st,
		evts:  evts,
	}

	t.Run("emptyLedger", lt.emptyLedger)
	t.Run("mineFirstPayLater", lt.mineFirstPayLater)
	t.Run("negativeWire", lt.negativeWire)
	t.Run("badRequests", lt.badRequests)
	t.Run("overflowWire", lt.overflowWire)
	t.Run("eventStream", lt.eventStream)
}

func (lt *LedgerTests) emptyLedger(t *testing.T) {
	t.Log("Given the need to read a fresh ledger.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen nothing has happened yet.", testID)
		{
			for path, exp := range map[string]string{"/pending": "[]", "/chain": "[]", "/balances": "{}"} {
				w := lt.do(http.MethodGet, path, "")
				if w.Code != http.StatusOK {
					t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 200 for %s: %d", failed, testID, path, w.Code)
				}

				if got := strings.TrimSpace(w.Body.String()); got != exp {
					t.Fatalf("\t%s\tTest %d:\tShould get %s for %s, got %s.", failed, testID, exp, path, got)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould get empty collections.", success, testID)
		}
	}
}

func (lt *LedgerTests) mineFirstPayLater(t *testing.T) {
	t.Log("Given the need to wire coins before mining them.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen alice wires 10 to bob.", testID)
		{
			w := lt.do(http.MethodPost, "/wire", `{"from":"alice","to":"bob","amount":10}`)
			if w.Code != http.StatusAccepted {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 202 for the wire: %d", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould receive a status code of 202 for the wire.", success, testID)

			w = lt.do(http.MethodPost, "/commit", "")
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 422 for the commit: %d", failed, testID, w.Code)
			}

			var er errs.Response
			if err := json.NewDecoder(w.Body).Decode(&er); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal the response: %v", failed, testID, err)
			}
			if !strings.Contains(er.Error, "- alice would be left with -10 Toycoins") || strings.Contains(er.Error, "bob") {
				t.Fatalf("\t%s\tTest %d:\tShould only list alice: %s", failed, testID, er.Error)
			}
			t.Logf("\t%s\tTest %d:\tShould refuse the commit listing alice.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen alice mines until she is solvent.", testID)
		{
			w := lt.do(http.MethodPost, "/guess", fmt.Sprintf(`{"miner":"alice","guess":%d}`, ledger.GenesisProof+1))
			if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "false" {
				t.Fatalf("\t%s\tTest %d:\tShould reject a wrong guess: %d %s", failed, testID, w.Code, w.Body)
			}
			t.Logf("\t%s\tTest %d:\tShould reject a wrong guess.", success, testID)

			for i := 0; i < 3; i++ {
				w := lt.do(http.MethodPost, "/guess", fmt.Sprintf(`{"miner":"alice","guess":%d}`, ledger.GenesisProof))
				if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "true" {
					t.Fatalf("\t%s\tTest %d:\tShould accept the correct guess: %d %s", failed, testID, w.Code, w.Body)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould accept the correct guess.", success, testID)

			var pending []ledger.Transaction
			w = lt.do(http.MethodGet, "/pending", "")
			if err := json.NewDecoder(w.Body).Decode(&pending); err != nil || len(pending) != 4 {
				t.Fatalf("\t%s\tTest %d:\tShould have four pending transactions: %v %v", failed, testID, pending, err)
			}
			t.Logf("\t%s\tTest %d:\tShould have four pending transactions.", success, testID)

			w = lt.do(http.MethodPost, "/commit", "")
			if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "null" {
				t.Fatalf("\t%s\tTest %d:\tShould commit: %d %s", failed, testID, w.Code, w.Body)
			}
			t.Logf("\t%s\tTest %d:\tShould commit.", success, testID)

			var chain []ledger.Block
			w = lt.do(http.MethodGet, "/chain", "")
			if err := json.NewDecoder(w.Body).Decode(&chain); err != nil || len(chain) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould have one committed block: %v %v", failed, testID, chain, err)
			}
			if len(chain[0].Transactions) != 4 || chain[0].Proof != ledger.GenesisProof {
				t.Fatalf("\t%s\tTest %d:\tShould return the genesis block with its transactions.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould have one committed block.", success, testID)

			var balances map[string]int64
			w = lt.do(http.MethodGet, "/balances", "")
			if err := json.NewDecoder(w.Body).Decode(&balances); err != nil || balances["alice"] != 2 || balances["bob"] != 10 {
				t.Fatalf("\t%s\tTest %d:\tShould have the expected balances: %v %v", failed, testID, balances, err)
			}
			t.Logf("\t%s\tTest %d:\tShould have the expected balances.", success, testID)

			w = lt.do(http.MethodGet, "/balances/bob", "")
			if got := strings.TrimSpace(w.Body.String()); got != `{"account":"bob","balance":10}` {
				t.Fatalf("\t%s\tTest %d:\tShould return bob's balance, got %s.", failed, testID, got)
			}
			t.Logf("\t%s\tTest %d:\tShould return a single balance.", success, testID)

			w = lt.do(http.MethodPost, "/guess", `{"miner":"carol","guess":200}`)
			if strings.TrimSpace(w.Body.String()) != "true" {
				t.Fatalf("\t%s\tTest %d:\tShould accept the new proof after the commit.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould accept the new proof after the commit.", success, testID)
		}
	}
}

func (lt *LedgerTests) negativeWire(t *testing.T) {
	t.Log("Given the need to stop negative transfers.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen mallory wires -5 from alice.", testID)
		{
			before := lt.do(http.MethodGet, "/pending", "").Body.String()

			w := lt.do(http.MethodPost, "/wire", `{"from":"mallory","to":"alice","amount":-5}`)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 422: %d", failed, testID, w.Code)
			}

			var er errs.Response
			if err := json.NewDecoder(w.Body).Decode(&er); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal the response: %v", failed, testID, err)
			}

			exp := "mallory attempted to steal -5 Toycoins from alice!"
			if er.Error != exp {
				t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, er.Error)
				t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, exp)
				t.Fatalf("\t%s\tTest %d:\tShould report the theft.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould report the theft.", success, testID)

			if after := lt.do(http.MethodGet, "/pending", "").Body.String(); after != before {
				t.Fatalf("\t%s\tTest %d:\tShould leave pending unchanged.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould leave pending unchanged.", success, testID)
		}
	}
}

func (lt *LedgerTests) badRequests(t *testing.T) {
	tt := []struct {
		name string
		path string
		body string
	}{
		{"malformed", "/wire", `{"from":`},
		{"unknownField", "/wire", `{"from":"a","to":"b","amount":1,"memo":"x"}`},
		{"missingTo", "/wire", `{"from":"a","amount":1}`},
		{"missingMiner", "/guess", `{"guess":1}`},
		{"outOfRange", "/guess", `{"miner":"a","guess":256}`},
	}

	t.Log("Given the need to reject malformed requests.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen posting %s to %s.", testID, tst.name, tst.path)
			{
				w := lt.do(http.MethodPost, tst.path, tst.body)
				if w.Code != http.StatusBadRequest {
					t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 400: %d", failed, testID, w.Code)
				}
				t.Logf("\t%s\tTest %d:\tShould receive a status code of 400.", success, testID)
			}
		}
	}
}

func (lt *LedgerTests) overflowWire(t *testing.T) {
	t.Log("Given the need to stop balances from wrapping around.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen mallory wires the maximum amount twice.", testID)
		{
			body := fmt.Sprintf(`{"from":"mallory","to":"a","amount":%d}`, int64(math.MaxInt64))
			if w := lt.do(http.MethodPost, "/wire", body); w.Code != http.StatusAccepted {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 202 for the first wire: %d", failed, testID, w.Code)
			}

			body = fmt.Sprintf(`{"from":"mallory","to":"b","amount":%d}`, int64(math.MaxInt64))
			w := lt.do(http.MethodPost, "/wire", body)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 422 for the second wire: %d", failed, testID, w.Code)
			}

			var er errs.Response
			if err := json.NewDecoder(w.Body).Decode(&er); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal the response: %v", failed, testID, err)
			}
			if er.Error != "the balance of mallory would overflow" {
				t.Fatalf("\t%s\tTest %d:\tShould report the overflow, got %s.", failed, testID, er.Error)
			}
			t.Logf("\t%s\tTest %d:\tShould refuse the second wire.", success, testID)

			if w := lt.do(http.MethodPost, "/commit", ""); w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("\t%s\tTest %d:\tShould refuse the commit: %d", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould refuse the commit.", success, testID)
		}
	}
}

func (lt *LedgerTests) eventStream(t *testing.T) {
	// The websocket handler outlives the subtest, so this server logs nowhere.
	srv := httptest.NewServer(handlers.APIMux(handlers.APIMuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      zap.NewNop().Sugar(),
		State:    lt.state,
		Evts:     lt.evts,
	}))
	defer srv.Close()

	t.Log("Given the need to stream ledger events over a websocket.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a client subscribes and a guess is made.", testID)
		{
			url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to connect: %v", failed, testID, err)
			}
			defer conn.Close()
			t.Logf("\t%s\tTest %d:\tShould be able to connect.", success, testID)

			for i := 0; lt.evts.Subscribers() == 0; i++ {
				if i == 100 {
					t.Fatalf("\t%s\tTest %d:\tShould register the subscriber.", failed, testID)
				}
				time.Sleep(10 * time.Millisecond)
			}

			lt.do(http.MethodPost, "/guess", `{"miner":"dave","guess":1}`)

			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould receive an event: %v", failed, testID, err)
			}

			exp := "state: Guess: miner[dave]: guess[1]: wrong"
			if string(msg) != exp {
				t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, msg)
				t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, exp)
				t.Fatalf("\t%s\tTest %d:\tShould receive the guess event.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould receive the guess event.", success, testID)
		}
	}
}
