package consensus

import (
	"context"
	"strings"
	"testing"

	"github.com/luca-patrignani/catena/ledger"
)

// mineChain builds a blockchain with extra blocks sealed on top of the
// genesis block, each carrying one transaction and a freshly mined proof.
// Tests run the puzzle at low difficulty so the searches stay instant.
func mineChain(t *testing.T, pow ProofOfWork, extra int) *ledger.Blockchain {
	t.Helper()
	bc := ledger.New()
	for i := 0; i < extra; i++ {
		bc.NewTransaction("alice", "bob", int64(i+1))
		last := bc.LastBlock()
		proof, err := pow.Mine(context.Background(), last.Proof, ledger.BlockHash(last))
		if err != nil {
			t.Fatalf("mining block %d failed: %v", i+2, err)
		}
		bc.NewBlock(proof, "")
	}
	return bc
}

// TestValidateAcceptsMinedChain verifies that a chain built purely through
// sequential mining and sealing passes validation end to end.
func TestValidateAcceptsMinedChain(t *testing.T) {
	pow := NewProofOfWork(1)
	bc := mineChain(t, pow, 4)

	if err := NewValidator(pow).Validate(bc.Chain()); err != nil {
		t.Fatalf("expected mined chain to validate, got %v", err)
	}
}

// TestValidateAcceptsGenesisOnly verifies that a chain holding only the
// genesis block is valid: the genesis block is trusted as given and never
// checked against a predecessor.
func TestValidateAcceptsGenesisOnly(t *testing.T) {
	pow := NewProofOfWork(1)

	if err := NewValidator(pow).Validate(ledger.New().Chain()); err != nil {
		t.Fatalf("expected genesis-only chain to validate, got %v", err)
	}
}

// TestValidateRejectsEmptyChain verifies that a chain with no blocks at all
// is rejected; every real chain starts from a genesis block.
func TestValidateRejectsEmptyChain(t *testing.T) {
	pow := NewProofOfWork(1)

	if err := NewValidator(pow).Validate(nil); err == nil {
		t.Fatal("expected empty chain to be invalid")
	}
}

// TestValidateRejectsTamperedPreviousHash verifies that rewriting a block's
// link to its predecessor invalidates the chain and that the error names the
// offending position.
func TestValidateRejectsTamperedPreviousHash(t *testing.T) {
	pow := NewProofOfWork(1)
	chain := mineChain(t, pow, 3).Chain()
	chain[2].PreviousHash = strings.Repeat("f", 64)

	err := NewValidator(pow).Validate(chain)
	if err == nil {
		t.Fatal("expected tampered chain to be invalid")
	}
	if !strings.Contains(err.Error(), "block 2") {
		t.Fatalf("expected error to name block 2, got %v", err)
	}
}

// TestValidateRejectsTamperedProof verifies that rewriting a block's proof
// invalidates the chain even when the hash linkage is left intact.
func TestValidateRejectsTamperedProof(t *testing.T) {
	pow := NewProofOfWork(1)
	chain := mineChain(t, pow, 3).Chain()

	// Pick a replacement proof that provably fails the puzzle for this pair.
	lastHash := ledger.BlockHash(chain[0])
	bad := chain[1].Proof + 1
	for pow.Verify(chain[0].Proof, bad, lastHash) {
		bad++
	}
	chain[1].Proof = bad

	// Repair the forward link so only the puzzle check can catch the edit.
	chain[2].PreviousHash = ledger.BlockHash(chain[1])

	if err := NewValidator(pow).Validate(chain); err == nil {
		t.Fatal("expected chain with rewritten proof to be invalid")
	}
}

// TestValidateRejectsRewrittenTransaction verifies that editing a sealed
// transaction breaks the hash chain: the successor's previous hash no longer
// matches the tampered block's recomputed digest.
func TestValidateRejectsRewrittenTransaction(t *testing.T) {
	pow := NewProofOfWork(1)
	chain := mineChain(t, pow, 3).Chain()
	chain[1].Transactions[0].Amount = 1_000_000

	if err := NewValidator(pow).Validate(chain); err == nil {
		t.Fatal("expected chain with rewritten transaction to be invalid")
	}
}
