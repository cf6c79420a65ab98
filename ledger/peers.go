package ledger

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
)

// ErrInvalidAddress reports a peer address in no recognizable form.
var ErrInvalidAddress = errors.New("invalid peer address")

// RegisterPeer normalizes address and adds it to the peer set, returning the
// normalized form. Accepted forms are full URLs, of which only the host part
// is kept, and bare "host:port" strings; "http://192.168.0.1:5000" and
// "192.168.0.1:5000" register the same entry. Registration is idempotent.
func (bc *Blockchain) RegisterPeer(address string) (string, error) {
	peer, err := normalizePeerAddress(address)
	if err != nil {
		return "", err
	}
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.peers[peer] = struct{}{}
	return peer, nil
}

// Peers returns the registered peer addresses in sorted order. The set itself
// is unordered; sorting only keeps the output stable.
func (bc *Blockchain) Peers() []string {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	peers := make([]string, 0, len(bc.peers))
	for peer := range bc.peers {
		peers = append(peers, peer)
	}
	sort.Strings(peers)
	return peers
}

func normalizePeerAddress(address string) (string, error) {
	if u, err := url.Parse(address); err == nil && u.Host != "" {
		return u.Host, nil
	}
	// Bare "host:port" does not parse as a URL: the host reads as a scheme
	// or the parse fails outright on addresses like "192.168.0.1:5000".
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return net.JoinHostPort(host, port), nil
}
