// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/toycoin/app/services/toycoin/handlers/v1/eventgrp"
	"github.com/ardanlabs/toycoin/app/services/toycoin/handlers/v1/ledgergrp"
	"github.com/ardanlabs/toycoin/foundation/events"
	"github.com/ardanlabs/toycoin/foundation/toycoin/state"
	"github.com/ardanlabs/toycoin/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// Routes binds all the version 1 routes. They are served at the root
// without a version prefix.
func Routes(app *web.App, cfg Config) {
	const version = ""

	lgh := ledgergrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodGet, version, "/pending", lgh.Pending)
	app.Handle(http.MethodGet, version, "/balances", lgh.Balances)
	app.Handle(http.MethodGet, version, "/balances/:account", lgh.Balance)
	app.Handle(http.MethodGet, version, "/chain", lgh.Chain)
	app.Handle(http.MethodPost, version, "/commit", lgh.Commit)
	app.Handle(http.MethodPost, version, "/guess", lgh.Guess)
	app.Handle(http.MethodPost, version, "/wire", lgh.Wire)

	egh := eventgrp.Handlers{
		Log:  cfg.Log,
		WS:   websocket.Upgrader{},
		Evts: cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", egh.Events)
}
