// Package ledger implements the append-only blockchain a node maintains: the
// chain of sealed blocks, the pool of transactions waiting for the next
// block, and the registry of peer nodes.
//
// # Core Components
//
// Blockchain: An append-only log of transaction blocks with cryptographic
// hash chaining for tamper detection, plus the pending transaction pool and
// the peer set. All of it is guarded by one lock.
//
// Block: A single sealed entry holding transactions, a proof-of-work value,
// a timestamp and the hash of the previous block.
//
// Transaction: A transfer of value between two addresses.
//
// # Integrity
//
// Every block links to its predecessor through BlockHash, the SHA-256 digest
// of the predecessor's canonical JSON encoding. Canonical here means that
// struct fields are declared in lexicographic tag order, so encoding/json
// always emits the same bytes for the same block. Any modification to a
// sealed block breaks the hash chain.
//
// # Usage
//
// Create a blockchain with New; it starts with the genesis block already in
// place. Queue transactions with NewTransaction and seal them with NewBlock
// once a valid proof has been found. Replace swaps the whole chain during
// consensus resolution.
package ledger
