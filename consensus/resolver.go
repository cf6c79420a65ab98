package consensus

import (
	"context"
	"log/slog"
	"time"

	"github.com/luca-patrignani/catena/ledger"
)

// ChainFetcher retrieves the full chain held by a peer node. Implementations
// must return an error for unreachable peers, non-success responses and
// payloads that do not decode to a chain; the resolver treats every fetch
// error as "skip this peer".
type ChainFetcher interface {
	FetchChain(ctx context.Context, peer string) ([]ledger.Block, error)
}

// Resolver reconciles the local chain with the chains of the registered
// peers using the longest-valid-chain rule: among all peer chains that are
// strictly longer than the local one and pass full validation, the longest
// replaces the local chain wholesale.
//
// Chain length stands in for cumulative work here. Under a fixed difficulty
// the longest chain embeds the most puzzle solutions, and comparing lengths
// is a single integer comparison. A peer willing to redo that work can still
// present a competing history; the rule does not defend against that.
type Resolver struct {
	blockchain   *ledger.Blockchain
	fetcher      ChainFetcher
	validator    Validator
	logger       *slog.Logger
	fetchTimeout time.Duration
}

// NewResolver returns a resolver reconciling bc against the peers registered
// on it, fetching their chains through fetcher and accepting only chains
// that validator approves.
func NewResolver(bc *ledger.Blockchain, fetcher ChainFetcher, validator Validator, opts ...resolverOption) *Resolver {
	r := Resolver{
		blockchain:   bc,
		fetcher:      fetcher,
		validator:    validator,
		logger:       slog.Default(),
		fetchTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		r = opt(r)
	}
	return &r
}

type fetchResult struct {
	peer  string
	chain []ledger.Block
	err   error
}

// Resolve fetches every registered peer's chain and applies the
// longest-valid-chain rule. It returns true when the local chain was
// replaced. Peers that are unreachable, respond badly or serve an invalid
// chain are skipped; they never abort resolution for the others. When
// several peers tie for the longest chain, which one wins depends on fetch
// completion order. The returned error is non-nil only when ctx ends before
// every peer has been accounted for.
func (r *Resolver) Resolve(ctx context.Context) (bool, error) {
	peers := r.blockchain.Peers()

	// Fetches are independent per peer, so issue them all at once. The
	// channel is buffered so late responses after a cancelled resolution
	// do not leak their goroutines.
	results := make(chan fetchResult, len(peers))
	for _, peer := range peers {
		go func(peer string) {
			fctx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
			defer cancel()
			chain, err := r.fetcher.FetchChain(fctx, peer)
			results <- fetchResult{peer: peer, chain: chain, err: err}
		}(peer)
	}

	maxLength := r.blockchain.Length()
	var winning []ledger.Block
	for range peers {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case res := <-results:
			if res.err != nil {
				r.logger.Warn("skipping unreachable peer", "peer", res.peer, "err", res.err)
				continue
			}
			if len(res.chain) <= maxLength {
				continue
			}
			if err := r.validator.Validate(res.chain); err != nil {
				r.logger.Warn("skipping peer with invalid chain", "peer", res.peer, "err", err)
				continue
			}
			maxLength = len(res.chain)
			winning = res.chain
		}
	}

	if winning == nil {
		return false, nil
	}
	r.blockchain.Replace(winning)
	r.logger.Info("chain replaced by consensus", "length", maxLength)
	return true, nil
}
