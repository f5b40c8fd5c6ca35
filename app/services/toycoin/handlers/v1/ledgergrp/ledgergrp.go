// Package ledgergrp maintains the group of handlers for ledger access.
package ledgergrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ardanlabs/toycoin/business/sys/metrics"
	"github.com/ardanlabs/toycoin/business/web/errs"
	"github.com/ardanlabs/toycoin/foundation/toycoin/ledger"
	"github.com/ardanlabs/toycoin/foundation/toycoin/state"
	"github.com/ardanlabs/toycoin/foundation/validate"
	"github.com/ardanlabs/toycoin/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Pending returns the transactions of the block that is still open.
func (h Handlers) Pending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Pending(), http.StatusOK)
}

// Balances returns the current balance of every account.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Balances(), http.StatusOK)
}

// Balance returns the current balance of a single account.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")

	resp := accountBalance{
		Account: account,
		Balance: h.State.Balance(account),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Chain returns every committed block.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Chain(), http.StatusOK)
}

// Commit seals the current block. The request is refused when the pending
// transactions would leave any account with a negative or overflowing
// balance.
func (h Handlers) Commit(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := h.State.Commit(); err != nil {
		var nbe *ledger.NegativeBalancesError
		var oe *ledger.OverflowError
		if errors.As(err, &nbe) || errors.As(err, &oe) {
			metrics.AddRejectedCommits()
			return errs.Unprocessable(err)
		}

		return fmt.Errorf("commit: %w", err)
	}

	metrics.AddCommits()
	return web.Respond(ctx, w, nil, http.StatusOK)
}

// Guess submits a proof guess for the current block and reports whether the
// miner was rewarded.
func (h Handlers) Guess(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req guessRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
	}

	if err := validate.Check(req); err != nil {
		return fmt.Errorf("validating guess: %w", err)
	}

	correct := h.State.Guess(req.Guess, req.Miner)
	if correct {
		metrics.AddGrants()
		h.Log.Infow("guess", "traceid", v.TraceID, "miner", req.Miner, "status", "granted")
	}

	return web.Respond(ctx, w, correct, http.StatusOK)
}

// Wire submits a transfer between two accounts. Balances are only checked
// when the block is committed.
func (h Handlers) Wire(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req wireRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
	}

	if err := validate.Check(req); err != nil {
		return fmt.Errorf("validating wire: %w", err)
	}

	h.Log.Infow("wire", "traceid", v.TraceID, "from", req.From, "to", req.To, "amount", req.Amount)

	if err := h.State.Wire(req.From, req.To, req.Amount); err != nil {
		var nte *ledger.NegativeTransferError
		var oe *ledger.OverflowError
		if errors.As(err, &nte) || errors.As(err, &oe) {
			return errs.Unprocessable(err)
		}

		return fmt.Errorf("wire: %w", err)
	}

	metrics.AddWires()
	return web.Respond(ctx, w, nil, http.StatusAccepted)
}
