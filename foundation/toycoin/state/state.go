// Package state is the core API for the toycoin ledger. It owns the single
// ledger value and serializes every operation against it.
package state

import (
	"errors"
	"sync"

	"github.com/ardanlabs/toycoin/foundation/toycoin/ledger"
)

// EventHandler defines a function that is called when events
// occur in the processing of ledger operations.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the ledger.
type Config struct {
	GrantAmount int64
	EvHandler   EventHandler

	// Options are passed through to the ledger, mostly for tests.
	Options []func(l *ledger.Ledger)
}

// Status represents a summary of the ledger.
type Status struct {
	CommittedLength uint64 `json:"committed_length"`
	GrantAmount     int64  `json:"grant_amount"`
	Pending         int    `json:"pending"`
}

// State manages the ledger. Every method holds the lock for the whole
// ledger operation so reads observe a consistent snapshot and commits never
// interleave with writes to the current block.
type State struct {
	evHandler EventHandler

	mu     sync.Mutex
	ledger *ledger.Ledger
}

// New constructs the state with a fresh ledger holding the genesis block.
func New(cfg Config) *State {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	grantAmount := cfg.GrantAmount
	if grantAmount == 0 {
		grantAmount = ledger.DefaultGrantAmount
	}

	return &State{
		evHandler: ev,
		ledger:    ledger.New(grantAmount, cfg.Options...),
	}
}

// Guess submits a proof guess on behalf of the miner.
func (s *State) Guess(value byte, miner string) bool {
	s.mu.Lock()
	correct := s.ledger.Guess(value, miner)
	s.mu.Unlock()

	if correct {
		s.evHandler("state: Guess: miner[%s]: guess[%d]: CORRECT", miner, value)
		return true
	}

	s.evHandler("state: Guess: miner[%s]: guess[%d]: wrong", miner, value)
	return false
}

// Wire submits a transfer between two accounts.
func (s *State) Wire(from string, to string, amount int64) error {
	s.mu.Lock()
	err := s.ledger.Wire(from, to, amount)
	s.mu.Unlock()

	if err != nil {
		s.evHandler("state: Wire: from[%s]: to[%s]: amount[%d]: REJECTED: %s", from, to, amount, err)
		return err
	}

	s.evHandler("state: Wire: from[%s]: to[%s]: amount[%d]: accepted", from, to, amount)
	return nil
}

// Commit seals the current block.
func (s *State) Commit() error {
	s.mu.Lock()
	err := s.ledger.Commit()
	length := s.ledger.CommittedLength()
	s.mu.Unlock()

	if err != nil {
		var nbe *ledger.NegativeBalancesError
		if errors.As(err, &nbe) {
			for _, ab := range nbe.Balances {
				s.evHandler("state: Commit: REJECTED: account[%s]: balance[%d]", ab.Account, ab.Balance)
			}
			return err
		}

		var oe *ledger.OverflowError
		if errors.As(err, &oe) {
			s.evHandler("state: Commit: REJECTED: account[%s]: overflow", oe.Account)
			return err
		}

		s.evHandler("state: Commit: ERROR: %s", err)
		return err
	}

	s.evHandler("state: Commit: blk[%d]: sealed", length-1)
	return nil
}

// Pending returns a copy of the transactions in the current block.
func (s *State) Pending() []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Pending()
}

// Balances returns the balance of every account.
func (s *State) Balances() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Balance()
}

// Balance returns the balance of a single account.
func (s *State) Balance(account string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.AccountBalance(account)
}

// Chain returns a copy of the committed blocks.
func (s *State) Chain() []ledger.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Chain()
}

// Status returns a summary of the ledger.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Status{
		CommittedLength: s.ledger.CommittedLength(),
		GrantAmount:     s.ledger.GrantAmount(),
		Pending:         len(s.ledger.Pending()),
	}
}

// Verify checks the integrity of the chain.
func (s *State) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Verify()
}
