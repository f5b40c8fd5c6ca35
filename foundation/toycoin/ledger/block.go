package ledger

import (
	"crypto/sha256"
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Block represents a group of transactions batched together. A block can only
// change while it is the current block of the ledger.
type Block struct {
	Index        uint64        `json:"index"`         // Position of the block in the chain.
	TimeStamp    time.Time     `json:"timestamp"`     // Time the block was opened.
	Transactions []Transaction `json:"transactions"`  // Replay order matters.
	PreviousHash common.Hash   `json:"previous_hash"` // Hash of the parent block, zero for genesis.
	Proof        byte          `json:"proof"`         // Value a miner must guess.
}

// Hash returns the unique hash for the block by marshaling the block into
// JSON and performing a sha256 hashing operation.
func (b Block) Hash() (common.Hash, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return common.Hash{}, err
	}

	return common.Hash(sha256.Sum256(data)), nil
}

// clone makes a deep copy of the block.
func (b Block) clone() Block {
	trans := make([]Transaction, len(b.Transactions))
	for i, tx := range b.Transactions {
		trans[i] = tx.clone()
	}

	b.Transactions = trans
	return b
}
