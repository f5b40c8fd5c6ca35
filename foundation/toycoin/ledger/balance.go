package ledger

// Balance replays every transaction in the chain, including the current
// block, and returns the balance of every account that has transacted.
// Accounts that net to zero are still reported.
func (l *Ledger) Balance() map[string]int64 {
	balances, _ := l.fold()
	return balances
}

// AccountBalance returns the balance for the specified account. An account
// that never transacted has a zero balance.
func (l *Ledger) AccountBalance(account string) int64 {
	return l.Balance()[account]
}

// fold replays the chain into a balance sheet. It stops at the first
// transaction that would overflow a balance and returns the sheet as it
// stood before that transaction.
func (l *Ledger) fold() (map[string]int64, error) {
	balances := make(map[string]int64)

	for _, block := range l.blocks {
		for _, tx := range block.Transactions {
			if err := tx.apply(balances); err != nil {
				return balances, err
			}
		}
	}

	return balances, nil
}
