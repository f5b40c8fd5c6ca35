package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Grant mints new Toycoins into an account. Grants are only created by the
// ledger when a miner guesses the proof of the current block.
type Grant struct {
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

// Wire moves Toycoins from one account to another.
type Wire struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

// Transaction represents a single entry in a block. Exactly one of the
// variants is set, and the JSON form carries the variant name as its only
// key so the tag survives serialization.
type Transaction struct {
	Grant *Grant `json:"Grant,omitempty"`
	Wire  *Wire  `json:"Wire,omitempty"`
}

// NewGrant constructs a grant transaction.
func NewGrant(to string, amount int64) Transaction {
	return Transaction{
		Grant: &Grant{
			To:     to,
			Amount: amount,
		},
	}
}

// NewWire constructs a wire transaction.
func NewWire(from string, to string, amount int64) Transaction {
	return Transaction{
		Wire: &Wire{
			From:   from,
			To:     to,
			Amount: amount,
		},
	}
}

// IsGrant tests if the transaction mints coins.
func (tx Transaction) IsGrant() bool {
	return tx.Grant != nil
}

// IsWire tests if the transaction moves coins between accounts.
func (tx Transaction) IsWire() bool {
	return tx.Wire != nil
}

// String implements the fmt.Stringer interface for logging.
func (tx Transaction) String() string {
	switch {
	case tx.IsGrant():
		return fmt.Sprintf("grant[%s:%d]", tx.Grant.To, tx.Grant.Amount)
	case tx.IsWire():
		return fmt.Sprintf("wire[%s->%s:%d]", tx.Wire.From, tx.Wire.To, tx.Wire.Amount)
	}
	return "invalid"
}

// UnmarshalJSON implements the json.Unmarshaler interface and rejects values
// that don't carry exactly one variant.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	type transaction Transaction

	var t transaction
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}

	if (t.Grant == nil) == (t.Wire == nil) {
		return errors.New("transaction must be exactly one of Grant or Wire")
	}

	*tx = Transaction(t)
	return nil
}

// clone makes a copy that shares no memory with the original.
func (tx Transaction) clone() Transaction {
	switch {
	case tx.IsGrant():
		g := *tx.Grant
		return Transaction{Grant: &g}
	case tx.IsWire():
		w := *tx.Wire
		return Transaction{Wire: &w}
	}
	return Transaction{}
}

// apply performs the accounting for the transaction against the
// specified balance sheet, adding new accounts as they are found. The sheet
// is left untouched when a balance would leave the int64 range.
func (tx Transaction) apply(balances map[string]int64) error {
	switch {
	case tx.IsGrant():
		to, ok := credit(balances[tx.Grant.To], tx.Grant.Amount)
		if !ok {
			return &OverflowError{Account: tx.Grant.To}
		}
		balances[tx.Grant.To] = to

	case tx.IsWire():
		from, ok := debit(balances[tx.Wire.From], tx.Wire.Amount)
		if !ok {
			return &OverflowError{Account: tx.Wire.From}
		}

		start := balances[tx.Wire.To]
		if tx.Wire.To == tx.Wire.From {
			start = from
		}

		to, ok := credit(start, tx.Wire.Amount)
		if !ok {
			return &OverflowError{Account: tx.Wire.To}
		}

		balances[tx.Wire.From] = from
		balances[tx.Wire.To] = to
	}

	return nil
}

// credit adds amount to balance, reporting false on overflow.
func credit(balance int64, amount int64) (int64, bool) {
	sum := balance + amount
	if (amount > 0 && sum < balance) || (amount < 0 && sum > balance) {
		return 0, false
	}
	return sum, true
}

// debit subtracts amount from balance, reporting false on overflow.
func debit(balance int64, amount int64) (int64, bool) {
	diff := balance - amount
	if (amount > 0 && diff > balance) || (amount < 0 && diff < balance) {
		return 0, false
	}
	return diff, true
}
