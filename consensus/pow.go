package consensus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// DefaultDifficulty is the number of leading zero hex characters a valid
// proof digest must carry. The historical description of this puzzle spoke
// of four leading zeroes while the enforced check was six; the enforced
// behavior wins.
const DefaultDifficulty = 6

// Mine polls its context every cancelCheckInterval attempts, so a cancelled
// search stops within a bounded number of hash computations.
const cancelCheckInterval = 1 << 12

// ProofOfWork is the computational puzzle gating block creation. Given the
// proof and hash of the last block, a miner must find an integer whose
// combined digest with them starts with the required run of zero hex
// characters.
type ProofOfWork struct {
	difficulty int
	target     string
}

// NewProofOfWork returns a puzzle instance requiring difficulty leading zero
// hex characters. Each additional character multiplies the expected search
// effort by sixteen.
func NewProofOfWork(difficulty int) ProofOfWork {
	return ProofOfWork{
		difficulty: difficulty,
		target:     strings.Repeat("0", difficulty),
	}
}

// Difficulty returns the number of leading zero hex characters this puzzle
// requires.
func (p ProofOfWork) Difficulty() int {
	return p.difficulty
}

// Mine searches for the smallest non-negative proof satisfying the puzzle
// for the given predecessor proof and hash. The search is a single-threaded
// linear scan from zero, so for fixed inputs it always returns the same
// value. It stops early with the context's error when ctx is cancelled.
func (p ProofOfWork) Mine(ctx context.Context, lastProof int64, lastHash string) (int64, error) {
	for proof := int64(0); ; proof++ {
		if proof%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			default:
			}
		}
		if p.Verify(lastProof, proof, lastHash) {
			return proof, nil
		}
	}
}

// Verify reports whether proof solves the puzzle for the given predecessor
// proof and hash. It is the pure predicate every node applies when checking
// a chain, costing one hash computation.
func (p ProofOfWork) Verify(lastProof, proof int64, lastHash string) bool {
	return strings.HasPrefix(guessDigest(lastProof, proof, lastHash), p.target)
}

// guessDigest hashes the decimal renderings of both proofs concatenated with
// the last block's hash, the exact byte string every node must agree on for
// proofs to be portable.
func guessDigest(lastProof, proof int64, lastHash string) string {
	guess := strconv.FormatInt(lastProof, 10) + strconv.FormatInt(proof, 10) + lastHash
	sum := sha256.Sum256([]byte(guess))
	return hex.EncodeToString(sum[:])
}
