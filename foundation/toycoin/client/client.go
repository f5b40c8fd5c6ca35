// Package client provides access to a toycoin service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ardanlabs/toycoin/foundation/toycoin/ledger"
)

// ResponseError is returned when the service answers with a failure status.
type ResponseError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (re *ResponseError) Error() string {
	return fmt.Sprintf("status %d: %s", re.StatusCode, re.Message)
}

// IsUnprocessable checks if the service refused the request because of the
// ledger rules, a negative transfer or negative balances at commit.
func IsUnprocessable(err error) bool {
	var re *ResponseError
	return errors.As(err, &re) && re.StatusCode == http.StatusUnprocessableEntity
}

// Client provides typed access to the toycoin endpoints.
type Client struct {
	url  string
	http *http.Client
}

// New constructs a client for the service at the specified base url.
func New(url string) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Pending returns the transactions of the open block.
func (c *Client) Pending(ctx context.Context) ([]ledger.Transaction, error) {
	var trans []ledger.Transaction
	if err := c.do(ctx, http.MethodGet, "/pending", nil, &trans); err != nil {
		return nil, err
	}
	return trans, nil
}

// Balances returns the balance of every account.
func (c *Client) Balances(ctx context.Context) (map[string]int64, error) {
	var balances map[string]int64
	if err := c.do(ctx, http.MethodGet, "/balances", nil, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// Balance returns the balance of a single account.
func (c *Client) Balance(ctx context.Context, account string) (int64, error) {
	var resp struct {
		Balance int64 `json:"balance"`
	}
	if err := c.do(ctx, http.MethodGet, "/balances/"+url.PathEscape(account), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// Chain returns the committed blocks.
func (c *Client) Chain(ctx context.Context) ([]ledger.Block, error) {
	var blocks []ledger.Block
	if err := c.do(ctx, http.MethodGet, "/chain", nil, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// Commit asks the service to seal the open block.
func (c *Client) Commit(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/commit", nil, nil)
}

// Guess submits a proof guess for the miner.
func (c *Client) Guess(ctx context.Context, miner string, value byte) (bool, error) {
	req := struct {
		Miner string `json:"miner"`
		Guess uint8  `json:"guess"`
	}{
		Miner: miner,
		Guess: value,
	}

	var correct bool
	if err := c.do(ctx, http.MethodPost, "/guess", req, &correct); err != nil {
		return false, err
	}
	return correct, nil
}

// Wire submits a transfer between two accounts.
func (c *Client) Wire(ctx context.Context, from string, to string, amount int64) error {
	req := struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Amount int64  `json:"amount"`
	}{
		From:   from,
		To:     to,
		Amount: amount,
	}

	return c.do(ctx, http.MethodPost, "/wire", req, nil)
}

// Mine sweeps every possible proof until the service accepts one. It returns
// the winning byte, or false when no guess was accepted because another
// miner committed the block in the middle of the sweep.
func (c *Client) Mine(ctx context.Context, miner string) (byte, bool, error) {
	for v := 0; v <= 255; v++ {
		correct, err := c.Guess(ctx, miner, byte(v))
		if err != nil {
			return 0, false, err
		}

		if correct {
			return byte(v), true, nil
		}
	}

	return 0, false, nil
}

// =============================================================================

// do performs the request, decoding a successful response into resp when
// provided and a failed response into a ResponseError.
func (c *Client) do(ctx context.Context, method string, path string, body any, resp any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, r)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var er struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&er); err != nil {
			er.Error = http.StatusText(res.StatusCode)
		}
		return &ResponseError{StatusCode: res.StatusCode, Message: er.Error}
	}

	if resp == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
