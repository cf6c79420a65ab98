// Package node assembles a complete ledger node: one blockchain, the
// proof-of-work puzzle, the consensus resolver and the node's identity,
// exposed as the small operation set the HTTP layer calls into. The package
// owns the rules the transport must not know about, such as the mining
// reward and the serialization of concurrent mining requests.
package node
