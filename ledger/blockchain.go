package ledger

import (
	"sync"
	"time"
)

// Blockchain holds the append-only chain of blocks together with the pool of
// transactions waiting to be sealed into the next one and the set of known
// peer nodes. A single lock serializes every mutation, so readers always
// observe fully constructed blocks and a pool that is consistent with the
// chain.
type Blockchain struct {
	mu      sync.RWMutex
	blocks  []Block
	pending []Transaction
	peers   map[string]struct{}

	now func() float64
}

// New creates a blockchain with the genesis block already in place. The
// genesis block has index 1, the fixed genesis proof and the sentinel
// previous hash; it carries no transactions.
func New() *Blockchain {
	return NewWithClock(func() float64 {
		return float64(time.Now().UnixNano()) / 1e9
	})
}

// NewWithClock is New with the timestamp source replaced, so tests can pin
// block timestamps to known values.
func NewWithClock(now func() float64) *Blockchain {
	bc := &Blockchain{
		pending: make([]Transaction, 0),
		peers:   make(map[string]struct{}),
		now:     now,
	}
	// Crea genesis block
	bc.blocks = append(bc.blocks, Block{
		Index:        1,
		PreviousHash: GenesisPreviousHash,
		Proof:        GenesisProof,
		Timestamp:    bc.now(),
		Transactions: []Transaction{},
	})
	return bc
}

// NewTransaction queues a transaction for inclusion in the next sealed block
// and returns the index that block will have.
func (bc *Blockchain) NewTransaction(sender, recipient string, amount int64) int64 {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.pending = append(bc.pending, Transaction{
		Amount:    amount,
		Recipient: recipient,
		Sender:    sender,
	})
	return bc.blocks[len(bc.blocks)-1].Index + 1
}

// NewBlock seals every pending transaction into a new block, appends it to
// the chain and returns it. An empty previousHash means "link to the current
// last block" and is resolved under the lock. Draining the pool and appending
// the block happen atomically: a transaction queued after the block is cut
// lands in the next one, never in both.
func (bc *Blockchain) NewBlock(proof int64, previousHash string) Block {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if previousHash == "" {
		previousHash = BlockHash(bc.blocks[len(bc.blocks)-1])
	}
	block := Block{
		Index:        int64(len(bc.blocks)) + 1,
		PreviousHash: previousHash,
		Proof:        proof,
		Timestamp:    bc.now(),
		Transactions: bc.pending,
	}
	bc.pending = make([]Transaction, 0)
	bc.blocks = append(bc.blocks, block)
	return block
}

// NewBlockAt is the miner's commit path: it seals like NewBlock, but only
// when the chain tip still hashes to lastHash, and any extra transactions
// join the pool in the same critical section. When a consensus replacement
// moved the tip while the proof was being mined, it reports false and leaves
// chain and pool untouched, so the stale proof is simply discarded.
func (bc *Blockchain) NewBlockAt(proof int64, lastHash string, extra ...Transaction) (Block, bool) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if BlockHash(bc.blocks[len(bc.blocks)-1]) != lastHash {
		return Block{}, false
	}
	block := Block{
		Index:        int64(len(bc.blocks)) + 1,
		PreviousHash: lastHash,
		Proof:        proof,
		Timestamp:    bc.now(),
		Transactions: append(bc.pending, extra...),
	}
	bc.pending = make([]Transaction, 0)
	bc.blocks = append(bc.blocks, block)
	return block, true
}

// LastBlock returns the most recently appended block. The chain always holds
// at least the genesis block, so there is no empty case.
func (bc *Blockchain) LastBlock() Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.blocks[len(bc.blocks)-1]
}

// Length returns the number of blocks in the chain.
func (bc *Blockchain) Length() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// Chain returns a copy of the whole chain. The copy shares transaction
// slices with the original; blocks are immutable once appended, so the
// aliasing is safe.
func (bc *Blockchain) Chain() []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	chain := make([]Block, len(bc.blocks))
	copy(chain, bc.blocks)
	return chain
}

// Replace swaps the whole chain for one adopted during consensus resolution.
// The swap is a single assignment under the write lock; concurrent readers
// see either the old chain or the new one, never a mix. The pending pool is
// left untouched. Callers must pass a validated, non-empty chain.
func (bc *Blockchain) Replace(chain []Block) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.blocks = chain
}

// Pending returns a copy of the transactions queued for the next block.
func (bc *Blockchain) Pending() []Transaction {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	pending := make([]Transaction, len(bc.pending))
	copy(pending, bc.pending)
	return pending
}

// PendingCount returns the number of transactions queued for the next block.
func (bc *Blockchain) PendingCount() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.pending)
}
