// Package consensus implements the proof-of-work gate on block creation and
// the longest-valid-chain rule independent nodes use to converge on one
// history without a central authority.
//
// # Core Components
//
// ProofOfWork: The computational puzzle miners solve to seal a block and the
// predicate every node applies to check a solution.
//
// Validator: End-to-end integrity check of a candidate chain, verifying hash
// linkage and puzzle solutions for every adjacent pair of blocks.
//
// Resolver: The reconciliation pass that fetches peer chains, validates them
// and adopts the longest valid one when it beats the local chain.
//
// # The Puzzle
//
// For a block extending a predecessor with proof p and hash h, a miner must
// find an integer p' such that sha256 of the concatenation "p p' h" renders
// to hex with a required run of leading zero characters. Finding p' takes
// brute-force search; checking it takes one hash. That asymmetry rate-limits
// block creation while keeping chain validation cheap.
//
// # Reconciliation
//
// Divergence between nodes is resolved by length: a node asks every
// registered peer for its chain, validates each answer end to end, and
// replaces its own chain with the longest valid one found, if any is longer.
// Unreachable peers and invalid chains are skipped, never fatal. Under a
// fixed difficulty, length is a faithful proxy for the total work a chain
// embeds.
package consensus
