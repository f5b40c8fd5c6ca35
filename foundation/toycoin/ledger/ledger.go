// Package ledger implements the Toycoin chain engine. Miners earn coins by
// guessing a single byte proof for the current block and coins can be wired
// between accounts. Balances are only validated when a block is committed.
//
// A Ledger is not safe for concurrent use. Access must be serialized by the
// caller, see the state package.
package ledger

import (
	"crypto/rand"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultGrantAmount is the number of Toycoins minted for a correct guess.
const DefaultGrantAmount = 4

// GenesisProof is the proof of the genesis block. Every later proof is
// drawn at random when the previous block is committed.
const GenesisProof byte = 42

// ProofSource produces the proof for a newly opened block.
type ProofSource func() (byte, error)

// Ledger maintains the chain of blocks. The last block in the chain is the
// current block and is the only block that accepts new transactions.
type Ledger struct {
	committed   uint64
	grantAmount int64
	blocks      []Block

	proof ProofSource
	now   func() time.Time
}

// WithProofSource replaces the default crypto/rand proof source.
func WithProofSource(proof ProofSource) func(l *Ledger) {
	return func(l *Ledger) {
		l.proof = proof
	}
}

// WithClock replaces the clock used to timestamp new blocks.
func WithClock(now func() time.Time) func(l *Ledger) {
	return func(l *Ledger) {
		l.now = now
	}
}

// New constructs a ledger holding only the genesis block.
func New(grantAmount int64, options ...func(l *Ledger)) *Ledger {
	l := Ledger{
		grantAmount: grantAmount,
		proof:       randomProof,
		now:         func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(&l)
	}

	genesis := Block{
		Index:        0,
		TimeStamp:    l.now(),
		Transactions: []Transaction{},
		PreviousHash: common.Hash{},
		Proof:        GenesisProof,
	}
	l.blocks = []Block{genesis}

	return &l
}

// Guess compares the value against the proof of the current block. On a
// match the miner is granted coins and true is returned.
func (l *Ledger) Guess(value byte, miner string) bool {
	current := l.current()
	if value != current.Proof {
		return false
	}

	current.Transactions = append(current.Transactions, NewGrant(miner, l.grantAmount))
	return true
}

// Wire records a transfer in the current block. Overdrafts are allowed here
// and caught by Commit, but a transfer that would overflow either balance
// is refused.
func (l *Ledger) Wire(from string, to string, amount int64) error {
	if amount < 0 {
		return &NegativeTransferError{From: from, To: to, Amount: amount}
	}

	tx := NewWire(from, to, amount)

	balances, err := l.fold()
	if err != nil {
		return err
	}
	if err := tx.apply(balances); err != nil {
		return err
	}

	current := l.current()
	current.Transactions = append(current.Transactions, tx)

	return nil
}

// Commit seals the current block and opens a new one. If any account would
// be left with a negative balance the ledger is left untouched.
func (l *Ledger) Commit() error {
	if err := l.validateState(); err != nil {
		return err
	}

	hash, err := l.current().Hash()
	if err != nil {
		return fmt.Errorf("hashing block %d: %w", l.committed, err)
	}

	proof, err := l.proof()
	if err != nil {
		return fmt.Errorf("generating proof: %w", err)
	}

	next := Block{
		Index:        l.committed + 1,
		TimeStamp:    l.now(),
		Transactions: []Transaction{},
		PreviousHash: hash,
		Proof:        proof,
	}

	l.blocks = append(l.blocks, next)
	l.committed++

	return nil
}

// Pending returns a copy of the transactions in the current block.
func (l *Ledger) Pending() []Transaction {
	return l.current().clone().Transactions
}

// Chain returns a copy of the committed blocks. The current block is
// not included.
func (l *Ledger) Chain() []Block {
	blocks := make([]Block, l.committed)
	for i := range blocks {
		blocks[i] = l.blocks[i].clone()
	}

	return blocks
}

// CommittedLength returns the number of committed blocks.
func (l *Ledger) CommittedLength() uint64 {
	return l.committed
}

// GrantAmount returns the number of coins minted by a correct guess.
func (l *Ledger) GrantAmount() int64 {
	return l.grantAmount
}

// Verify walks the committed chain and checks every block is linked to the
// hash of its parent.
func (l *Ledger) Verify() error {
	var parent common.Hash
	for i, block := range l.blocks {
		if block.Index != uint64(i) {
			return fmt.Errorf("block at position %d has index %d", i, block.Index)
		}

		if block.PreviousHash != parent {
			return fmt.Errorf("block %d parent hash mismatch, got %s, exp %s", block.Index, block.PreviousHash, parent)
		}

		hash, err := block.Hash()
		if err != nil {
			return fmt.Errorf("hashing block %d: %w", block.Index, err)
		}
		parent = hash
	}

	return nil
}

// =============================================================================

// current returns the open block.
func (l *Ledger) current() *Block {
	return &l.blocks[len(l.blocks)-1]
}

// validateState checks no account has a negative or overflowing balance,
// including the transactions that are still pending.
func (l *Ledger) validateState() error {
	balances, err := l.fold()
	if err != nil {
		return err
	}

	var negative []AccountBalance
	for account, balance := range balances {
		if balance < 0 {
			negative = append(negative, AccountBalance{Account: account, Balance: balance})
		}
	}

	if len(negative) == 0 {
		return nil
	}

	sort.Slice(negative, func(i, j int) bool {
		return negative[i].Account < negative[j].Account
	})

	return &NegativeBalancesError{Balances: negative}
}

// randomProof draws a proof uniformly from the full byte range.
func randomProof() (byte, error) {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}

	return b[0], nil
}
