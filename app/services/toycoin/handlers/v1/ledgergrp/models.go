package ledgergrp

// guessRequest is the body of a proof guess. Any byte is a valid guess.
type guessRequest struct {
	Miner string `json:"miner" validate:"required"`
	Guess uint8  `json:"guess"`
}

// wireRequest is the body of a transfer. The amount is checked by the
// ledger so a negative value reaches it and is reported as theft.
type wireRequest struct {
	From   string `json:"from" validate:"required"`
	To     string `json:"to" validate:"required"`
	Amount int64  `json:"amount"`
}

type accountBalance struct {
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}
