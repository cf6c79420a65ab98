package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/luca-patrignani/catena/ledger"
)

// chainPayload is the body a node serves on GET /chain, the only protocol
// surface nodes consume from each other.
type chainPayload struct {
	Chain  []ledger.Block `json:"chain"`
	Length int            `json:"length"`
}

// Client fetches chains from peer nodes over plain HTTP. Peers are plain
// host:port addresses as kept by the ledger's registry; the scheme and the
// /chain path are fixed by the protocol.
type Client struct {
	client *http.Client
}

// NewClient returns a chain client ready for use. Timeouts are expected to
// come from the caller's context rather than the HTTP client.
func NewClient(opts ...clientOption) *Client {
	c := Client{
		client: &http.Client{},
	}
	for _, opt := range opts {
		c = opt(c)
	}
	return &c
}

// FetchChain requests the full chain held by the peer and decodes it. Any
// transport failure, non-OK status, undecodable body or a reported length
// disagreeing with the number of blocks actually served is an error; callers
// treat all of them the same way, as "this peer has no usable chain".
func (c *Client) FetchChain(ctx context.Context, peer string) ([]ledger.Block, error) {
	url := fmt.Sprintf("http://%s/chain", peer)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building chain request for %s: %w", peer, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching chain from %s: %w", peer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching chain from %s: unexpected status %d", peer, resp.StatusCode)
	}

	var payload chainPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding chain from %s: %w", peer, err)
	}
	if payload.Length != len(payload.Chain) {
		return nil, fmt.Errorf("peer %s reported length %d for %d blocks", peer, payload.Length, len(payload.Chain))
	}
	return payload.Chain, nil
}
