package node

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/segmentio/ksuid"

	"github.com/luca-patrignani/catena/consensus"
	"github.com/luca-patrignani/catena/ledger"
)

// Reward transaction constants. The sender "0" marks coins minted by mining
// rather than transferred from an address.
const (
	RewardSender = "0"
	RewardAmount = 1
)

// ErrChainReplaced reports that consensus resolution swapped the chain while
// a proof was being mined, so the mined proof extends a parent that is no
// longer the tip. The caller may simply mine again.
var ErrChainReplaced = errors.New("chain replaced while mining")

// Node ties one ledger to the operations the request-handling layer invokes:
// queueing transactions, mining the next block, serving the chain,
// registering peers and running consensus resolution.
type Node struct {
	identity   Identity
	blockchain *ledger.Blockchain
	pow        consensus.ProofOfWork
	resolver   *consensus.Resolver
	logger     *slog.Logger

	// mineMu serializes the mine-then-seal sequence so concurrent mining
	// requests extend distinct parents instead of racing for the same one.
	mineMu sync.Mutex
}

// New assembles a node from its parts. The blockchain must be the same
// instance the resolver reconciles, or resolution would swap a chain the
// node does not serve.
func New(identity Identity, blockchain *ledger.Blockchain, pow consensus.ProofOfWork, resolver *consensus.Resolver, logger *slog.Logger) *Node {
	logger.Info("node initialized", "identifier", identity.String(), "difficulty", pow.Difficulty())
	return &Node{
		identity:   identity,
		blockchain: blockchain,
		pow:        pow,
		resolver:   resolver,
		logger:     logger,
	}
}

// Identifier returns the address mining rewards of this node are paid to.
func (n *Node) Identifier() string {
	return n.identity.String()
}

// SubmitTransaction queues a transaction and returns the index of the block
// it will be sealed into. Field semantics are not validated here; rejecting
// malformed input is the transport layer's job.
func (n *Node) SubmitTransaction(sender, recipient string, amount int64) int64 {
	index := n.blockchain.NewTransaction(sender, recipient, amount)
	n.logger.Debug("transaction queued", "sender", sender, "recipient", recipient, "amount", amount, "block", index)
	return index
}

// MineNext runs the full mining sequence: solve the puzzle for the current
// last block, award the mining reward to this node's identifier, and seal
// every pending transaction into a new block. It blocks until the search
// finishes or ctx ends. If consensus replaced the chain while the search
// ran, the stale proof is discarded and ErrChainReplaced returned.
func (n *Node) MineNext(ctx context.Context) (ledger.Block, error) {
	n.mineMu.Lock()
	defer n.mineMu.Unlock()

	job := ksuid.New().String()
	last := n.blockchain.LastBlock()
	lastHash := ledger.BlockHash(last)
	n.logger.Info("mining started", "job", job, "index", last.Index+1)

	proof, err := n.pow.Mine(ctx, last.Proof, lastHash)
	if err != nil {
		n.logger.Warn("mining aborted", "job", job, "err", err)
		return ledger.Block{}, fmt.Errorf("mining block %d: %w", last.Index+1, err)
	}

	reward := ledger.Transaction{
		Amount:    RewardAmount,
		Recipient: n.identity.String(),
		Sender:    RewardSender,
	}
	// Consensus may have swapped the chain while the search ran; sealing on
	// a stale parent would break the linkage invariant, so the ledger
	// refuses the commit and the proof is discarded.
	block, ok := n.blockchain.NewBlockAt(proof, lastHash, reward)
	if !ok {
		n.logger.Warn("discarding proof mined against a replaced chain", "job", job)
		return ledger.Block{}, ErrChainReplaced
	}
	n.logger.Info("block forged", "job", job, "index", block.Index, "transactions", len(block.Transactions), "proof", block.Proof)
	return block, nil
}

// Chain returns a snapshot of the chain and its length.
func (n *Node) Chain() ([]ledger.Block, int) {
	chain := n.blockchain.Chain()
	return chain, len(chain)
}

// RegisterPeers registers the given addresses one by one, returning the
// normalized form of each. The first invalid address stops the batch;
// addresses registered before it stay registered.
func (n *Node) RegisterPeers(addresses []string) ([]string, error) {
	registered := make([]string, 0, len(addresses))
	for _, address := range addresses {
		peer, err := n.blockchain.RegisterPeer(address)
		if err != nil {
			return registered, err
		}
		n.logger.Info("peer registered", "peer", peer)
		registered = append(registered, peer)
	}
	return registered, nil
}

// Peers returns all registered peer addresses.
func (n *Node) Peers() []string {
	return n.blockchain.Peers()
}

// ResolveConsensus runs one longest-valid-chain pass against the registered
// peers and returns whether the local chain was replaced, together with the
// chain that is now authoritative.
func (n *Node) ResolveConsensus(ctx context.Context) (bool, []ledger.Block, error) {
	replaced, err := n.resolver.Resolve(ctx)
	if err != nil {
		return false, nil, err
	}
	return replaced, n.blockchain.Chain(), nil
}
