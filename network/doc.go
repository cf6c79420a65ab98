// Package network implements the HTTP side of peer communication: fetching
// the full chain another node serves on GET /chain. That single read-only
// endpoint is the only cross-node protocol surface consensus resolution
// depends on.
//
// # Wire Contract
//
// A node answers GET /chain with a JSON body of the form
//
//	{"chain": [ ...blocks... ], "length": N}
//
// where length must equal the number of blocks served. Client rejects
// payloads where the two disagree, along with transport failures and
// non-OK statuses; the resolver treats every such error as "skip this
// peer".
package network
