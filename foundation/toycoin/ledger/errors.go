package ledger

import (
	"fmt"
	"strings"
)

// AccountBalance pairs an account with its balance.
type AccountBalance struct {
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}

// NegativeBalancesError is returned by Commit when the current state would
// leave accounts with a negative balance. Balances is sorted by account.
type NegativeBalancesError struct {
	Balances []AccountBalance
}

// Error implements the error interface.
func (nbe *NegativeBalancesError) Error() string {
	var sb strings.Builder
	sb.WriteString("In the current state, the following accounts would have negative balances:")
	for _, ab := range nbe.Balances {
		sb.WriteString(fmt.Sprintf("\n- %s would be left with %d Toycoins", ab.Account, ab.Balance))
	}

	return sb.String()
}

// NegativeTransferError is returned by Wire when the amount is negative,
// which would invert the direction of the transfer.
type NegativeTransferError struct {
	From   string
	To     string
	Amount int64
}

// Error implements the error interface.
func (nte *NegativeTransferError) Error() string {
	return fmt.Sprintf("%s attempted to steal %d Toycoins from %s!", nte.From, nte.Amount, nte.To)
}

// OverflowError is returned when a transaction would push the balance of an
// account outside the range of an int64.
type OverflowError struct {
	Account string
}

// Error implements the error interface.
func (oe *OverflowError) Error() string {
	return fmt.Sprintf("the balance of %s would overflow", oe.Account)
}
