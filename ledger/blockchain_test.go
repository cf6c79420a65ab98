package ledger

import (
	"fmt"
	"runtime"
	"sync"
	"testing"
)

// fixedClock returns a timestamp source that always reports the same instant,
// so block hashes computed in tests are reproducible.
func fixedClock(ts float64) func() float64 {
	return func() float64 { return ts }
}

// TestNewStartsWithGenesis verifies that a new blockchain is initialized with
// exactly one block carrying the genesis sentinels. This ensures every chain
// shares the same anchor block shape.
func TestNewStartsWithGenesis(t *testing.T) {
	bc := New()

	if got := bc.Length(); got != 1 {
		t.Fatalf("expected 1 block (genesis), got %d", got)
	}

	genesis := bc.LastBlock()
	if genesis.Index != 1 {
		t.Fatalf("genesis index should be 1, got %d", genesis.Index)
	}
	if genesis.PreviousHash != GenesisPreviousHash {
		t.Fatalf("genesis previous hash should be %q, got %q", GenesisPreviousHash, genesis.PreviousHash)
	}
	if genesis.Proof != GenesisProof {
		t.Fatalf("genesis proof should be %d, got %d", GenesisProof, genesis.Proof)
	}
	if len(genesis.Transactions) != 0 {
		t.Fatalf("genesis should carry no transactions, got %d", len(genesis.Transactions))
	}
}

// TestNewTransactionReturnsNextIndex verifies that queueing a transaction
// reports the index of the block it will be sealed into, both on a fresh
// chain and after blocks have been added.
func TestNewTransactionReturnsNextIndex(t *testing.T) {
	bc := New()

	if got := bc.NewTransaction("alice", "bob", 5); got != 2 {
		t.Fatalf("expected next index 2 on fresh chain, got %d", got)
	}

	bc.NewBlock(35293, "")
	if got := bc.NewTransaction("bob", "carol", 3); got != 3 {
		t.Fatalf("expected next index 3 after one sealed block, got %d", got)
	}
}

// TestNewBlockDrainsPending verifies that sealing a block moves every queued
// transaction into it and leaves the pool empty, and that transactions queued
// afterwards go to the following block only.
func TestNewBlockDrainsPending(t *testing.T) {
	bc := New()
	bc.NewTransaction("alice", "bob", 1)
	bc.NewTransaction("bob", "carol", 2)
	bc.NewTransaction("carol", "dave", 3)

	block := bc.NewBlock(35293, "")
	if len(block.Transactions) != 3 {
		t.Fatalf("expected 3 transactions in sealed block, got %d", len(block.Transactions))
	}
	if got := bc.PendingCount(); got != 0 {
		t.Fatalf("expected empty pool after sealing, got %d pending", got)
	}

	bc.NewTransaction("dave", "alice", 4)
	next := bc.NewBlock(35089, "")
	if len(next.Transactions) != 1 {
		t.Fatalf("expected 1 transaction in next block, got %d", len(next.Transactions))
	}
	if next.Transactions[0].Amount != 4 {
		t.Fatalf("expected the late transaction in the next block, got amount %d", next.Transactions[0].Amount)
	}
}

// TestNewBlockLinksToLastByDefault verifies that sealing with an empty
// previous hash derives it from the current last block, preserving the chain
// linkage invariant.
func TestNewBlockLinksToLastByDefault(t *testing.T) {
	bc := NewWithClock(fixedClock(1700000000))

	last := bc.LastBlock()
	block := bc.NewBlock(35293, "")
	if block.PreviousHash != BlockHash(last) {
		t.Fatalf("expected previous hash %q, got %q", BlockHash(last), block.PreviousHash)
	}
}

// TestNewBlockHonorsExplicitPreviousHash verifies that a caller-supplied
// previous hash is recorded verbatim, as miners compute it before sealing.
func TestNewBlockHonorsExplicitPreviousHash(t *testing.T) {
	bc := New()

	block := bc.NewBlock(35293, "abc123")
	if block.PreviousHash != "abc123" {
		t.Fatalf("expected previous hash %q, got %q", "abc123", block.PreviousHash)
	}
}

// TestChainLinkage verifies that after sealing several blocks every block
// links to its predecessor by hash and indices increase by exactly one.
func TestChainLinkage(t *testing.T) {
	bc := New()
	for i := 0; i < 5; i++ {
		bc.NewTransaction("alice", "bob", int64(i))
		bc.NewBlock(int64(35000+i), "")
	}

	chain := bc.Chain()
	if len(chain) != 6 {
		t.Fatalf("expected 6 blocks, got %d", len(chain))
	}
	for i := 1; i < len(chain); i++ {
		if chain[i].Index != chain[i-1].Index+1 {
			t.Fatalf("block %d index should be %d, got %d", i, chain[i-1].Index+1, chain[i].Index)
		}
		if chain[i].PreviousHash != BlockHash(chain[i-1]) {
			t.Fatalf("block %d does not link to its predecessor", i)
		}
	}
}

// TestChainReturnsCopy verifies that mutating the slice returned by Chain
// does not affect the blockchain's own view.
func TestChainReturnsCopy(t *testing.T) {
	bc := New()
	bc.NewBlock(35293, "")

	chain := bc.Chain()
	chain[0].Proof = 9999
	chain[1].PreviousHash = "tampered"

	fresh := bc.Chain()
	if fresh[0].Proof != GenesisProof {
		t.Fatalf("genesis proof changed through the copy")
	}
	if fresh[1].PreviousHash == "tampered" {
		t.Fatalf("previous hash changed through the copy")
	}
}

// TestNewBlockAtRefusesMovedTip verifies the miner's commit path: sealing at
// a tip hash the chain no longer has is refused with chain and pool left
// untouched, while sealing at the current tip succeeds and includes the
// extra transactions.
func TestNewBlockAtRefusesMovedTip(t *testing.T) {
	bc := New()
	bc.NewTransaction("alice", "bob", 5)
	minedAgainst := BlockHash(bc.LastBlock())

	// A consensus replacement moves the tip mid-mine.
	other := New()
	other.NewBlock(35293, "")
	bc.Replace(other.Chain())

	if _, ok := bc.NewBlockAt(35089, minedAgainst); ok {
		t.Fatal("expected sealing against the replaced tip to be refused")
	}
	if got := bc.Length(); got != 2 {
		t.Fatalf("expected chain untouched after refusal, got %d blocks", got)
	}
	if got := bc.PendingCount(); got != 1 {
		t.Fatalf("expected pool untouched after refusal, got %d pending", got)
	}

	extra := Transaction{Amount: 1, Recipient: "miner", Sender: "0"}
	block, ok := bc.NewBlockAt(35089, BlockHash(bc.LastBlock()), extra)
	if !ok {
		t.Fatal("expected sealing at the current tip to succeed")
	}
	if len(block.Transactions) != 2 {
		t.Fatalf("expected pool + extra sealed together, got %d transactions", len(block.Transactions))
	}
	if block.Transactions[1] != extra {
		t.Fatalf("expected the extra transaction sealed last, got %+v", block.Transactions[1])
	}
	if got := bc.PendingCount(); got != 0 {
		t.Fatalf("expected empty pool after sealing, got %d pending", got)
	}
}

// TestPendingReturnsCopy verifies that mutating the slice returned by
// Pending does not affect the pool that will be sealed.
func TestPendingReturnsCopy(t *testing.T) {
	bc := New()
	bc.NewTransaction("alice", "bob", 5)

	pending := bc.Pending()
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending transaction, got %d", len(pending))
	}
	pending[0].Amount = 9999

	block := bc.NewBlock(35293, "")
	if block.Transactions[0].Amount != 5 {
		t.Fatalf("pool changed through the copy, sealed amount %d", block.Transactions[0].Amount)
	}
}

// TestReplaceSwapsWholeChain verifies that Replace installs the given chain
// wholesale and leaves the pending pool untouched.
func TestReplaceSwapsWholeChain(t *testing.T) {
	bc := New()
	bc.NewTransaction("alice", "bob", 7)

	other := New()
	other.NewBlock(35293, "")
	other.NewBlock(35089, "")

	bc.Replace(other.Chain())
	if got := bc.Length(); got != 3 {
		t.Fatalf("expected length 3 after replacement, got %d", got)
	}
	if got := bc.PendingCount(); got != 1 {
		t.Fatalf("expected pending pool untouched by replacement, got %d", got)
	}
}

// TestConcurrentSubmissionAndSealing verifies that sealing blocks while other
// goroutines queue transactions neither drops nor duplicates any of them.
func TestConcurrentSubmissionAndSealing(t *testing.T) {
	bc := New()
	const submitters = 4
	const perSubmitter = 50

	var wg sync.WaitGroup
	for g := 0; g < submitters; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perSubmitter; i++ {
				bc.NewTransaction(fmt.Sprintf("sender-%d", g), "recipient", int64(g*perSubmitter+i))
			}
		}(g)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for sealing := true; sealing; {
		select {
		case <-done:
			sealing = false
		default:
			bc.NewBlock(35293, "")
			runtime.Gosched()
		}
	}
	bc.NewBlock(35293, "")

	seen := make(map[int64]int)
	for _, block := range bc.Chain() {
		for _, tx := range block.Transactions {
			seen[tx.Amount]++
		}
	}
	if len(seen) != submitters*perSubmitter {
		t.Fatalf("expected %d distinct transactions, got %d", submitters*perSubmitter, len(seen))
	}
	for amount, n := range seen {
		if n != 1 {
			t.Fatalf("transaction with amount %d sealed %d times", amount, n)
		}
	}
	if got := bc.PendingCount(); got != 0 {
		t.Fatalf("expected empty pool at the end, got %d pending", got)
	}
}
