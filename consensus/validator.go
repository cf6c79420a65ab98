package consensus

import (
	"fmt"

	"github.com/luca-patrignani/catena/ledger"
)

// Validator checks the structural and proof-of-work integrity of candidate
// chains, typically ones fetched from peers during consensus resolution.
type Validator struct {
	pow ProofOfWork
}

// NewValidator returns a validator enforcing the given puzzle. All nodes of
// a network must validate with the same difficulty or they will reject each
// other's chains.
func NewValidator(pow ProofOfWork) Validator {
	return Validator{pow: pow}
}

// Validate walks the chain from the second block onward and verifies each
// block against its predecessor. The genesis block is trusted as given: its
// previous hash is a sentinel, not a digest, and is never re-derived. A
// chain holding only the genesis block is valid; an empty chain is not. The
// first failing block wins and its position is carried in the error.
func (v Validator) Validate(chain []ledger.Block) error {
	if len(chain) == 0 {
		return fmt.Errorf("empty chain")
	}
	for i := 1; i < len(chain); i++ {
		if err := v.validatePair(chain[i], chain[i-1]); err != nil {
			return fmt.Errorf("block %d invalid: %w", i, err)
		}
	}
	return nil
}

// validatePair verifies that current links to previous by hash and that its
// proof solves the puzzle seeded by previous.
func (v Validator) validatePair(current, previous ledger.Block) error {
	lastHash := ledger.BlockHash(previous)

	if current.PreviousHash != lastHash {
		return fmt.Errorf("invalid previous hash: expected %s, got %s", lastHash, current.PreviousHash)
	}

	if !v.pow.Verify(previous.Proof, current.Proof, lastHash) {
		return fmt.Errorf("proof %d does not solve the puzzle", current.Proof)
	}

	return nil
}
